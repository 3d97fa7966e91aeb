package scene

import (
	"errors"
	"testing"
)

func TestResolvePathNested(t *testing.T) {
	cases := []struct {
		name     string
		building string
		level    string
		sceneID  string
		expected string
	}{
		{"plain", "Campus", "L2", "s-200", "Scenes/Campus/L2/s-200"},
		{"surrounding whitespace", " Campus ", " L2 ", " s-200 ", "Scenes/Campus/L2/s-200"},
		{"stray slashes", "/Campus/", "/L2/", "s-200", "Scenes/Campus/L2/s-200"},
		{"level resembling NA", "Campus", "NAB", "s-200", "Scenes/Campus/NAB/s-200"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path, err := ResolvePath(tc.building, tc.level, tc.sceneID)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if path != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, path)
			}
		})
	}
}

func TestResolvePathFlat(t *testing.T) {
	// Every no-level spelling must land on the same flat path.
	for _, level := range []string{"", "   ", "\t", "NA", "na", "nA", " NA "} {
		path, err := ResolvePath("Campus", level, "s-100")
		if err != nil {
			t.Fatalf("Level %q: unexpected error: %v", level, err)
		}
		if path != "Scenes/Campus/s-100" {
			t.Errorf("Level %q: expected flat path, got %q", level, path)
		}
	}
}

func TestResolvePathInvalid(t *testing.T) {
	cases := []struct {
		name     string
		building string
		sceneID  string
	}{
		{"empty building", "", "s-100"},
		{"whitespace building", "   ", "s-100"},
		{"slashes-only building", "//", "s-100"},
		{"empty sceneId", "Campus", ""},
		{"whitespace sceneId", "Campus", "  "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ResolvePath(tc.building, "L1", tc.sceneID)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}
