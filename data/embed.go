package data

import (
	_ "embed"
)

//go:embed fallback_images.json
var FallbackImages []byte
