package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stash/internal/services"
)

// TaggedHandler serves the cross-category tag search endpoint.
type TaggedHandler struct {
	service *services.TaggedService
}

func NewTaggedHandler(service *services.TaggedService) *TaggedHandler {
	return &TaggedHandler{service: service}
}

func (h *TaggedHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/tagged/:tagName", h.HandleTagged)
}

func (h *TaggedHandler) HandleTagged(c *fiber.Ctx) error {
	result, err := h.service.Tagged(c.Params("tagName"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}
