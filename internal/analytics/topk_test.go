package analytics

import (
	"testing"
)

func TestTopScenes(t *testing.T) {
	doc := `{
	  "s-1": {"title": "A", "views": 10},
	  "s-2": {"title": "B", "views": 70},
	  "s-3": {"title": "C", "views": 30},
	  "s-4": {"title": "D", "views": 50},
	  "s-5": {"title": "E", "views": 20},
	  "s-6": {"title": "F", "views": 60},
	  "s-7": {"title": "G", "views": 40}
	}`

	labels, counts := TopScenes([]byte(doc), 5)
	if len(labels) != 5 || len(counts) != 5 {
		t.Fatalf("Expected 5 entries, got %d/%d", len(labels), len(counts))
	}

	expectedLabels := []string{"B", "F", "D", "G", "C"}
	expectedCounts := []int{70, 60, 50, 40, 30}
	for i := range expectedLabels {
		if labels[i] != expectedLabels[i] || counts[i] != expectedCounts[i] {
			t.Errorf("Position %d: expected %s/%d, got %s/%d",
				i, expectedLabels[i], expectedCounts[i], labels[i], counts[i])
		}
	}
}

func TestTopScenesFewerThanK(t *testing.T) {
	doc := `{"s-1": {"title": "A", "views": 1}, "s-2": {"title": "B", "views": 2}}`

	labels, counts := TopScenes([]byte(doc), 5)
	if len(labels) != 2 || len(counts) != 2 {
		t.Fatalf("Expected 2 entries, got %d/%d", len(labels), len(counts))
	}
	if labels[0] != "B" || labels[1] != "A" {
		t.Errorf("Expected descending order, got %v", labels)
	}
}

func TestTopScenesTiesKeepDocumentOrder(t *testing.T) {
	doc := `{
	  "z-first": {"title": "First", "views": 10},
	  "a-second": {"title": "Second", "views": 10},
	  "m-third": {"title": "Third", "views": 10}
	}`

	labels, _ := TopScenes([]byte(doc), 3)
	expected := []string{"First", "Second", "Third"}
	for i := range expected {
		if labels[i] != expected[i] {
			t.Errorf("Tie order broken at %d: expected %s, got %s", i, expected[i], labels[i])
		}
	}
}

func TestTopScenesDefaults(t *testing.T) {
	doc := `{
	  "s-1": {"views": 5},
	  "s-2": {"title": "Named", "views": "7"},
	  "s-3": "scalar entry skipped"
	}`

	labels, counts := TopScenes([]byte(doc), 5)
	if len(labels) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(labels))
	}
	if labels[0] != "Named" || counts[0] != 7 {
		t.Errorf("String views not coerced: %s/%d", labels[0], counts[0])
	}
	if labels[1] != "Unknown" || counts[1] != 5 {
		t.Errorf("Missing title not defaulted: %s/%d", labels[1], counts[1])
	}
}

func TestTopScenesEmpty(t *testing.T) {
	for _, raw := range []string{"", "null", "{}", "not json", "[1,2]"} {
		labels, counts := TopScenes([]byte(raw), 5)
		if labels == nil || counts == nil {
			t.Errorf("Input %q: expected empty non-nil slices", raw)
		}
		if len(labels) != 0 || len(counts) != 0 {
			t.Errorf("Input %q: expected empty result, got %v/%v", raw, labels, counts)
		}
	}
}
