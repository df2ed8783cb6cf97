package handlers

import (
	"errors"
	"log"

	"etalase/internal/repositories"
	"etalase/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SettingHandler handles HTTP requests for settings.
type SettingHandler struct {
	service *services.SettingService
}

// NewSettingHandler creates a new SettingHandler.
func NewSettingHandler(service *services.SettingService) *SettingHandler {
	return &SettingHandler{service: service}
}

// RegisterRoutes registers the settings routes with the Fiber app.
func (h *SettingHandler) RegisterRoutes(router fiber.Router) {
	settingRoutes := router.Group("/settings")
	settingRoutes.Get("/", h.HandleGetSettings)
	settingRoutes.Get("/:key", h.HandleGetSetting)
}

// HandleGetSettings lists every setting.
func (h *SettingHandler) HandleGetSettings(c *fiber.Ctx) error {
	settings, err := h.service.GetAllSettings(c.UserContext())
	if err != nil {
		log.Printf("Error getting settings: %v", err)
		return errorResponse(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(settings)
}

// HandleGetSetting retrieves one setting by key.
func (h *SettingHandler) HandleGetSetting(c *fiber.Ctx) error {
	key := c.Params("key")
	setting, err := h.service.GetSetting(c.UserContext(), key)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errorResponse(c, fiber.StatusNotFound, err.Error())
		}
		log.Printf("Error getting setting %s: %v", key, err)
		return errorResponse(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(setting)
}
