// scenes.go
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

package handlers

import (
	"errors"
	"log"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/localnerve/scenedir/internal/blob"
	"github.com/localnerve/scenedir/internal/scene"
	"github.com/localnerve/scenedir/internal/utils"
)

// SceneHandler handles scene directory routes
type SceneHandler struct {
	Scenes       *scene.Service
	Blobs        *blob.Store
	MainBuilding string
}

// ListScenes handles GET /api/scenes
// @Summary List all scenes
// @Description Flatten the whole scene directory into a list
// @Tags Scenes
// @Produce json
// @Success 200 {array} scene.Scene
// @Router /scenes [get]
func (h *SceneHandler) ListScenes(c *fiber.Ctx) error {
	scenes := h.Scenes.ListAll(c.Context(), sessionToken(c))
	return c.Status(fiber.StatusOK).JSON(scenes)
}

// SceneCounts handles GET /api/scenes/counts
// @Summary Count scenes per level
// @Description Count scenes under a building, grouped by level
// @Tags Scenes
// @Produce json
// @Param building query string false "Building name, defaults to the main building"
// @Success 200 {object} scene.Counts
// @Router /scenes/counts [get]
func (h *SceneHandler) SceneCounts(c *fiber.Ctx) error {
	building := c.Query("building", h.MainBuilding)
	counts := h.Scenes.CountByLevel(c.Context(), sessionToken(c), building)
	return c.Status(fiber.StatusOK).JSON(counts)
}

// UpdateMetadata handles POST /api/scenes/metadata
// @Summary Update scene metadata
// @Description Patch title and person-in-charge on a scene node
// @Tags Scenes
// @Accept json
// @Produce json
// @Param body body object true "Scene identifiers plus title and personInCharge"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 502 {object} utils.ErrorResponseStruct
// @Router /scenes/metadata [post]
func (h *SceneHandler) UpdateMetadata(c *fiber.Ctx) error {
	var body struct {
		SceneID        string `json:"sceneId"`
		Building       string `json:"building"`
		Level          string `json:"level"`
		Title          string `json:"title"`
		PersonInCharge string `json:"personInCharge"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "scene.validation.input")
	}

	ok, err := h.Scenes.UpdateTitleAndPerson(c.Context(), sessionToken(c),
		body.SceneID, body.Building, body.Level, body.Title, body.PersonInCharge)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "scene.validation.input")
	}
	if !ok {
		return utils.ErrorResponse(c, "Scene update failed", fiber.StatusBadGateway, "scene.update")
	}
	return utils.MutationSuccessResponse(c, "Scene updated")
}

// ReplaceImage handles POST /api/scenes/image
// @Summary Replace a scene image
// @Description Upload a new image blob and patch the scene to point at it
// @Tags Scenes
// @Accept mpfd
// @Produce json
// @Param sceneId formData string true "Scene ID"
// @Param building formData string true "Building"
// @Param level formData string false "Level"
// @Param title formData string false "Title"
// @Param personInCharge formData string false "Person in charge"
// @Param image formData file false "Image file, omit to update metadata only"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 502 {object} utils.ErrorResponseStruct
// @Router /scenes/image [post]
func (h *SceneHandler) ReplaceImage(c *fiber.Ctx) error {
	sceneID := c.FormValue("sceneId")
	building := c.FormValue("building")
	level := c.FormValue("level")

	fileHeader, err := c.FormFile("image")
	if err != nil {
		// No file attached, treat the submission as a metadata edit.
		ok, err := h.Scenes.UpdateTitleAndPerson(c.Context(), sessionToken(c),
			sceneID, building, level, c.FormValue("title"), c.FormValue("personInCharge"))
		if err != nil {
			return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "scene.validation.input")
		}
		if !ok {
			return utils.ErrorResponse(c, "Scene update failed", fiber.StatusBadGateway, "scene.update")
		}
		return utils.MutationSuccessResponse(c, "Scene updated")
	}

	// Validate identifiers before touching the bucket.
	if _, err := scene.ResolvePath(building, level, sceneID); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "scene.validation.input")
	}

	// Remember the superseded blob so it can be cleaned up after the patch.
	var oldKey string
	if current, err := h.Scenes.Get(c.Context(), sessionToken(c), sceneID, building, level); err == nil && current != nil {
		oldKey = current.BlobKey
		if oldKey == "" {
			if key, ok := h.Blobs.TryParseKey(current.ImageURL); ok {
				oldKey = key
			}
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(c, "Unreadable upload", fiber.StatusBadRequest, "scene.validation.input")
	}
	defer file.Close()

	key := blob.BuildKey(building, level, fileHeader.Filename)
	publicURL, err := h.Blobs.Upload(c.Context(), key, file, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return utils.ErrorResponse(c, "Image upload failed", fiber.StatusBadGateway, "scene.blob.upload")
	}

	ok, err := h.Scenes.UpdateAfterImageReplace(c.Context(), sessionToken(c), scene.Scene{
		SceneID:        sceneID,
		Building:       building,
		Level:          level,
		Title:          c.FormValue("title"),
		PersonInCharge: c.FormValue("personInCharge"),
		ImageURL:       publicURL,
		BlobKey:        key,
	})
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "scene.validation.input")
	}
	if !ok {
		// The scene still points at the old blob, remove the orphaned upload.
		if res := h.Blobs.Delete(c.Context(), key); !res.OK() {
			log.Printf("orphaned upload %s not cleaned up: %v", key, res.Err)
		}
		return utils.ErrorResponse(c, "Scene update failed", fiber.StatusBadGateway, "scene.update")
	}

	// Superseded blob removal is tolerated on failure.
	if oldKey != "" && oldKey != key {
		if res := h.Blobs.Delete(c.Context(), oldKey); res.NonFatal() {
			log.Printf("superseded blob %s not deleted: %v", oldKey, res.Err)
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ok":       true,
		"imageUrl": publicURL,
		"blobKey":  key,
	})
}

// DownloadURL handles GET /api/scenes/download-url
// @Summary Presign an image download
// @Description Issue a time-limited download URL for a scene's image blob
// @Tags Scenes
// @Produce json
// @Param sceneId query string true "Scene ID"
// @Param building query string true "Building"
// @Param level query string false "Level"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /scenes/download-url [get]
func (h *SceneHandler) DownloadURL(c *fiber.Ctx) error {
	sceneID := c.Query("sceneId")
	building := c.Query("building")
	level := c.Query("level")

	sc, err := h.Scenes.Get(c.Context(), sessionToken(c), sceneID, building, level)
	if err != nil {
		if errors.Is(err, scene.ErrInvalidArgument) {
			return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "scene.validation.input")
		}
		return utils.ErrorResponse(c, "Scene lookup failed", fiber.StatusBadGateway, "scene.lookup")
	}
	if sc == nil {
		return utils.NotFoundResponse(c, "Scene not found")
	}

	key := sc.BlobKey
	if key == "" {
		if parsed, ok := h.Blobs.TryParseKey(sc.ImageURL); ok {
			key = parsed
		}
	}
	if key == "" {
		return utils.NotFoundResponse(c, "Scene has no image blob")
	}

	filename := sc.Title
	if filename == "" {
		filename = sc.SceneID
	}
	filename += filepath.Ext(key)

	url, err := h.Blobs.PresignDownload(c.Context(), key, filename)
	if err != nil {
		return utils.ErrorResponse(c, "Presign failed", fiber.StatusBadGateway, "scene.blob.presign")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "downloadUrl": url})
}
