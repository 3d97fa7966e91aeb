package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	json "github.com/goccy/go-json"

	"github.com/localnerve/scenedir/data"
	"github.com/localnerve/scenedir/internal/analytics"
	"github.com/localnerve/scenedir/internal/scene"
)

// AnalyticsHandler handles dashboard analytics routes
type AnalyticsHandler struct {
	Analytics *analytics.Service
	Scenes    *scene.Service
}

// Performance handles GET /api/analytics/performance
// @Summary Monthly view counts
// @Description Monthly view totals over the trailing window
// @Tags Analytics
// @Produce json
// @Success 200 {array} analytics.MonthlyBucket
// @Router /analytics/performance [get]
func (h *AnalyticsHandler) Performance(c *fiber.Ctx) error {
	history := h.Analytics.History(c.Context(), sessionToken(c))
	return c.Status(fiber.StatusOK).JSON(history)
}

// Forecast handles GET /api/analytics/forecast
// @Summary Monthly view counts with projection
// @Description Monthly history plus a least-squares projection of the next months
// @Tags Analytics
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /analytics/forecast [get]
func (h *AnalyticsHandler) Forecast(c *fiber.Ctx) error {
	history, forecast := h.Analytics.HistoryWithForecast(c.Context(), sessionToken(c))
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"history":  history,
		"forecast": forecast,
	})
}

// TopScenes handles GET /api/analytics/top-scenes
// @Summary Most viewed scenes
// @Description Scene titles and view totals, most viewed first
// @Tags Analytics
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /analytics/top-scenes [get]
func (h *AnalyticsHandler) TopScenes(c *fiber.Ctx) error {
	labels, counts := h.Analytics.TopScenesDistribution(c.Context(), sessionToken(c))
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"labels": labels,
		"counts": counts,
	})
}

// RandomPictures handles GET /api/analytics/random-pictures
// @Summary Random scene images
// @Description Sample distinct scene image URLs, falling back to bundled samples
// @Tags Analytics
// @Produce json
// @Param count query int false "Number of images, default 3"
// @Success 200 {array} string
// @Router /analytics/random-pictures [get]
func (h *AnalyticsHandler) RandomPictures(c *fiber.Ctx) error {
	count := parseCount(c, "count", 3)

	pictures := h.Scenes.RandomPictures(c.Context(), sessionToken(c), count)
	if len(pictures) == 0 {
		pictures = fallbackPictures(count)
	}
	return c.Status(fiber.StatusOK).JSON(pictures)
}

func fallbackPictures(count int) []string {
	var samples []string
	if err := json.Unmarshal(data.FallbackImages, &samples); err != nil {
		log.Printf("bundled fallback images unreadable: %v", err)
		return []string{}
	}
	if len(samples) > count {
		samples = samples[:count]
	}
	return samples
}
