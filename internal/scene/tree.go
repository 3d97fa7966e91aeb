package scene

import (
	"strings"

	json "github.com/goccy/go-json"
)

// LoadAll flattens a raw Scenes subtree into scene records.
//
// The expected shape is building → level → sceneId → leaf. Anything that
// does not match is skipped at the smallest possible granularity: one bad
// leaf does not drop its siblings, one bad level does not drop its building.
// Building, level and sceneId are back-filled from tree position; whatever
// the leaf itself claims for them is ignored.
func LoadAll(raw []byte) []Scene {
	all := []Scene{}

	if isNullDocument(raw) {
		return all
	}

	var root any
	if err := json.Unmarshal(raw, &root); err != nil {
		return all
	}

	buildings, ok := root.(map[string]any)
	if !ok {
		return all
	}

	for buildingName, buildingNode := range buildings {
		levels, ok := buildingNode.(map[string]any)
		if !ok {
			continue
		}

		for levelName, levelNode := range levels {
			leaves, ok := levelNode.(map[string]any)
			if !ok {
				continue
			}

			for sceneID, leaf := range leaves {
				node, ok := leaf.(map[string]any)
				if !ok {
					continue
				}

				s, ok := parseLeaf(node)
				if !ok {
					continue
				}

				s.SceneID = sceneID
				s.Building = buildingName
				s.Level = levelName
				all = append(all, s)
			}
		}
	}

	return all
}

// parseLeaf converts a generic object node into a Scene. A leaf whose fields
// do not fit the Scene shape (an object where a string belongs, say) is
// rejected rather than half-parsed.
func parseLeaf(node map[string]any) (Scene, bool) {
	encoded, err := json.Marshal(node)
	if err != nil {
		return Scene{}, false
	}

	var s Scene
	if err := json.Unmarshal(encoded, &s); err != nil {
		return Scene{}, false
	}
	return s, true
}

// isNullDocument reports whether a store response denotes an absent subtree.
func isNullDocument(raw []byte) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || strings.EqualFold(s, "null")
}
