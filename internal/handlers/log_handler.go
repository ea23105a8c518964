package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"stash/internal/services"
)

// LogHandler serves the read-only log query endpoint.
type LogHandler struct {
	service *services.LogService
}

func NewLogHandler(service *services.LogService) *LogHandler {
	return &LogHandler{service: service}
}

func (h *LogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/logs", h.HandleQuery)
}

// HandleQuery filters logs by comma-separated users and levels query
// parameters; OR within a field, AND across fields, empty means unrestricted.
func (h *LogHandler) HandleQuery(c *fiber.Ctx) error {
	users := splitParam(c.Query("users"))
	levels := splitParam(c.Query("levels"))
	logs, err := h.service.Query(users, levels)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"logs": logs})
}

func splitParam(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
