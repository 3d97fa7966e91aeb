// service.go
//
// A scalable, high performance scene directory and analytics service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of scenedir.
// scenedir is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// scenedir is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with scenedir.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package scene

import (
	"context"
	"log"
	"math/rand/v2"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/localnerve/scenedir/internal/store"
)

// Service reads and patches scene nodes through the document store.
// The session credential is always an explicit parameter; the service holds
// no per-request state.
type Service struct {
	store *store.Client
}

// NewService creates a scene service over the given store client.
func NewService(c *store.Client) *Service {
	return &Service{store: c}
}

// titlePersonPatch carries exactly the fields a metadata edit is allowed to
// touch. Fields absent here are never written, which is what keeps a partial
// merge from clobbering imageUrl/blobKey on the node.
type titlePersonPatch struct {
	Title          string `json:"title"`
	PersonInCharge string `json:"personInCharge"`
	LastUpdate     string `json:"lastUpdate"`
}

// imageReplacePatch is the metadata patch issued after a blob replace.
type imageReplacePatch struct {
	ImageURL       string `json:"imageUrl"`
	BlobKey        string `json:"blobKey"`
	Title          string `json:"title"`
	PersonInCharge string `json:"personInCharge"`
	LastUpdate     string `json:"lastUpdate"`
}

// ListAll fetches the whole Scenes subtree and flattens it. An unreachable
// upstream degrades to an empty list so directory views keep rendering.
func (s *Service) ListAll(ctx context.Context, token string) []Scene {
	raw, err := s.store.Get(ctx, token, "Scenes")
	if err != nil {
		log.Printf("scene list degraded to empty: %v", err)
		return []Scene{}
	}
	return LoadAll(raw)
}

// Get fetches a single scene node at its canonical path. A missing node
// returns (nil, nil); only invalid identifiers or an unreachable upstream
// produce an error.
func (s *Service) Get(ctx context.Context, token, sceneID, building, level string) (*Scene, error) {
	path, err := ResolvePath(building, level, sceneID)
	if err != nil {
		return nil, err
	}

	raw, err := s.store.Get(ctx, token, path)
	if err != nil {
		return nil, err
	}
	if isNullDocument(raw) {
		return nil, nil
	}

	var sc Scene
	if err := json.Unmarshal(raw, &sc); err != nil {
		return nil, err
	}
	if sc.SceneID == "" {
		sc.SceneID = strings.Trim(sceneID, " \t\r\n")
	}
	sc.Building = strings.Trim(building, pathCutset)
	sc.Level = strings.Trim(level, pathCutset)
	return &sc, nil
}

// Counts summarizes one building's scene population per level.
type Counts struct {
	Total      int            `json:"total"`
	WithImages int            `json:"withImages"`
	Levels     map[string]int `json:"levels"`
}

// CountByLevel tallies scenes under one building, grouped by level.
// Flat placements under the building count toward a single "NA" group.
func (s *Service) CountByLevel(ctx context.Context, token, building string) Counts {
	counts := Counts{Levels: map[string]int{}}

	b := strings.Trim(building, pathCutset)
	if b == "" {
		return counts
	}

	raw, err := s.store.Get(ctx, token, "Scenes/"+b)
	if err != nil {
		log.Printf("scene counts degraded to zero: %v", err)
		return counts
	}
	if isNullDocument(raw) {
		return counts
	}

	var root any
	if err := json.Unmarshal(raw, &root); err != nil {
		return counts
	}
	levels, ok := root.(map[string]any)
	if !ok {
		return counts
	}
	counts.WithImages = CountScenesWithImage(raw)

	for levelName, levelNode := range levels {
		group, ok := levelNode.(map[string]any)
		if !ok {
			continue
		}

		// A level group holds scene objects; a flat-placed scene holds
		// scalar fields. Object-valued children tell the two apart.
		n := 0
		for _, child := range group {
			if _, ok := child.(map[string]any); ok {
				n++
			}
		}
		if n == 0 && len(group) > 0 {
			counts.Levels["NA"]++
			counts.Total++
			continue
		}
		counts.Levels[levelName] += n
		counts.Total += n
	}
	return counts
}

// RandomPictures samples up to count distinct image URLs from the Scenes
// tree. An empty result means the caller should fall back to bundled samples.
func (s *Service) RandomPictures(ctx context.Context, token string, count int) []string {
	if count < 1 {
		count = 1
	}

	raw, err := s.store.Get(ctx, token, "Scenes")
	if err != nil {
		log.Printf("random pictures degraded to fallback: %v", err)
		return nil
	}

	seen := map[string]struct{}{}
	distinct := []string{}
	for _, u := range CollectImageURLs(raw) {
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		distinct = append(distinct, u)
	}

	rand.Shuffle(len(distinct), func(i, j int) {
		distinct[i], distinct[j] = distinct[j], distinct[i]
	})
	if len(distinct) > count {
		distinct = distinct[:count]
	}
	return distinct
}

// UpdateTitleAndPerson patches title, personInCharge and a fresh lastUpdate
// at the scene's canonical path. The returned error is non-nil only for
// invalid identifiers; an upstream failure is reported as ok=false. A patch
// against a path that does not exist is the caller's mistake, not ours.
func (s *Service) UpdateTitleAndPerson(ctx context.Context, token, sceneID, building, level, title, person string) (bool, error) {
	path, err := ResolvePath(building, level, sceneID)
	if err != nil {
		return false, err
	}

	patch := titlePersonPatch{
		Title:          title,
		PersonInCharge: person,
		LastUpdate:     Timestamp(time.Now()),
	}
	if err := s.store.Patch(ctx, token, path, patch); err != nil {
		log.Printf("metadata patch failed at %s: %v", path, err)
		return false, nil
	}
	return true, nil
}

// UpdateAfterImageReplace patches the image fields plus metadata after a new
// blob has been uploaded. The caller owns the blob lifecycle: the new object
// must already exist and deleting the superseded one is the caller's
// best-effort follow-up.
func (s *Service) UpdateAfterImageReplace(ctx context.Context, token string, sc Scene) (bool, error) {
	path, err := ResolvePath(sc.Building, sc.Level, sc.SceneID)
	if err != nil {
		return false, err
	}

	patch := imageReplacePatch{
		ImageURL:       sc.ImageURL,
		BlobKey:        sc.BlobKey,
		Title:          sc.Title,
		PersonInCharge: sc.PersonInCharge,
		LastUpdate:     Timestamp(time.Now()),
	}
	if err := s.store.Patch(ctx, token, path, patch); err != nil {
		log.Printf("image replace patch failed at %s: %v", path, err)
		return false, nil
	}
	return true, nil
}
