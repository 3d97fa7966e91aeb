package scene

import (
	"errors"
	"strings"
)

// ErrInvalidArgument is returned when a required identifier is empty after trimming.
var ErrInvalidArgument = errors.New("building and sceneId are required")

// pathCutset strips surrounding whitespace and path separators so callers
// cannot shift a node up or down the hierarchy with stray slashes.
const pathCutset = " \t\r\n/"

// ResolvePath maps (building, level, sceneID) to the canonical document path.
//
// A scene with no meaningful level (empty, whitespace, or "NA" in any case)
// is placed flat:
//
//	Scenes/{building}/{sceneId}
//
// otherwise nested:
//
//	Scenes/{building}/{level}/{sceneId}
func ResolvePath(building, level, sceneID string) (string, error) {
	b := strings.Trim(building, pathCutset)
	l := strings.Trim(level, pathCutset)
	id := strings.TrimSpace(sceneID)

	if b == "" || id == "" {
		return "", ErrInvalidArgument
	}

	if l == "" || strings.EqualFold(l, "NA") {
		return "Scenes/" + b + "/" + id, nil
	}
	return "Scenes/" + b + "/" + l + "/" + id, nil
}
