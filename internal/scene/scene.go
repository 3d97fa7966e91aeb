package scene

import "time"

// Scene is a single documented point-of-interest record located within a
// Building/Level hierarchy. SceneID is assigned at upload time and immutable
// thereafter; Building is required; an absent or "NA" Level means the scene
// sits flat under its building.
type Scene struct {
	SceneID        string `json:"sceneId,omitempty"`
	Title          string `json:"title,omitempty"`
	ImageURL       string `json:"imageUrl,omitempty"`
	BlobKey        string `json:"blobKey,omitempty"`
	LastUpdate     string `json:"lastUpdate,omitempty"`
	PersonInCharge string `json:"personInCharge,omitempty"`
	Level          string `json:"level,omitempty"`
	Building       string `json:"building,omitempty"`
}

// timestampLayout is the wire format for lastUpdate stamps.
const timestampLayout = "2006-01-02T15:04:05Z"

// Timestamp formats t as a lastUpdate stamp in UTC.
func Timestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
