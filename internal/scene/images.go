package scene

import (
	"strings"

	json "github.com/goccy/go-json"
)

// imageFieldNames are the field names, compared case-insensitively, whose
// string values are treated as image links.
var imageFieldNames = map[string]struct{}{
	"imageurl":     {},
	"thumbnailurl": {},
	"url":          {},
}

// CollectImageURLs walks a JSON document of arbitrary shape and depth and
// returns every http(s) URL held by an image-link field. A matching node's
// children and siblings are still visited, arrays are iterated element-wise,
// and duplicates are kept; callers dedupe when sampling.
func CollectImageURLs(raw []byte) []string {
	if isNullDocument(raw) {
		return nil
	}

	var root any
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil
	}

	var urls []string
	collectImages(root, &urls)
	return urls
}

func collectImages(node any, urls *[]string) {
	switch v := node.(type) {
	case map[string]any:
		for name, child := range v {
			if _, ok := imageFieldNames[strings.ToLower(name)]; ok {
				if s, ok := child.(string); ok && isHTTPURL(s) {
					*urls = append(*urls, s)
				}
			}
			collectImages(child, urls)
		}
	case []any:
		for _, child := range v {
			collectImages(child, urls)
		}
	}
}

// CountScenesWithImage counts object nodes carrying an imageUrl field, which
// is the cheapest proxy for "is a scene leaf" over an irregular tree.
func CountScenesWithImage(raw []byte) int {
	if isNullDocument(raw) {
		return 0
	}

	var root any
	if err := json.Unmarshal(raw, &root); err != nil {
		return 0
	}
	return countImageNodes(root)
}

func countImageNodes(node any) int {
	count := 0
	switch v := node.(type) {
	case map[string]any:
		for name := range v {
			if strings.EqualFold(name, "imageUrl") {
				count++
				break
			}
		}
		for _, child := range v {
			count += countImageNodes(child)
		}
	case []any:
		for _, child := range v {
			count += countImageNodes(child)
		}
	}
	return count
}

func isHTTPURL(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
