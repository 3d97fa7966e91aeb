package scene

import (
	"sort"
	"testing"
)

func TestCollectImageURLs(t *testing.T) {
	doc := `{
	  "a": {
	    "imageUrl": "https://cdn.example.com/a.jpg",
	    "nested": {
	      "ThumbnailUrl": "http://cdn.example.com/a-thumb.jpg",
	      "url": "HTTPS://cdn.example.com/a-alt.jpg"
	    }
	  },
	  "list": [
	    {"imageUrl": "https://cdn.example.com/b.jpg"},
	    {"imageUrl": "https://cdn.example.com/b.jpg"}
	  ],
	  "rejects": {
	    "imageUrl": "ftp://cdn.example.com/nope.jpg",
	    "thumbnailUrl": "",
	    "url": 42,
	    "caption": "https://cdn.example.com/not-an-image-field.jpg"
	  }
	}`

	urls := CollectImageURLs([]byte(doc))
	if len(urls) != 5 {
		t.Fatalf("Expected 5 URLs (duplicates kept), got %d: %v", len(urls), urls)
	}

	sort.Strings(urls)
	expected := []string{
		"HTTPS://cdn.example.com/a-alt.jpg",
		"http://cdn.example.com/a-thumb.jpg",
		"https://cdn.example.com/a.jpg",
		"https://cdn.example.com/b.jpg",
		"https://cdn.example.com/b.jpg",
	}
	for i, u := range expected {
		if urls[i] != u {
			t.Errorf("Expected %q at %d, got %q", u, i, urls[i])
		}
	}
}

func TestCollectImageURLsMatchedNodeStillRecursed(t *testing.T) {
	// A field named like an image link whose value is an object must still
	// have its children visited.
	doc := `{"url": {"imageUrl": "https://cdn.example.com/deep.jpg"}}`

	urls := CollectImageURLs([]byte(doc))
	if len(urls) != 1 || urls[0] != "https://cdn.example.com/deep.jpg" {
		t.Errorf("Expected the nested URL, got %v", urls)
	}
}

func TestCollectImageURLsEmpty(t *testing.T) {
	for _, raw := range []string{"", "null", "{}", "[]", "not json"} {
		if urls := CollectImageURLs([]byte(raw)); len(urls) != 0 {
			t.Errorf("Input %q: expected no URLs, got %v", raw, urls)
		}
	}
}

func TestCountScenesWithImage(t *testing.T) {
	doc := `{
	  "Campus": {
	    "L1": {
	      "s-100": {"imageUrl": "https://cdn.example.com/a.jpg"},
	      "s-101": {"ImageUrl": "https://cdn.example.com/b.jpg"},
	      "s-102": {"title": "no image"}
	    }
	  }
	}`

	if n := CountScenesWithImage([]byte(doc)); n != 2 {
		t.Errorf("Expected 2, got %d", n)
	}
	if n := CountScenesWithImage([]byte("null")); n != 0 {
		t.Errorf("Expected 0 for null, got %d", n)
	}
}
