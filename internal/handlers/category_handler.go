package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stash/internal/httperr"
	"stash/internal/middleware"
	"stash/internal/models"
	"stash/internal/services"
)

// CategoryHandler wires the generic CRUD orchestrator for one category onto
// its routes. Every category shares this handler; only the service differs.
type CategoryHandler struct {
	service *services.CategoryService
}

func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// respondError is the single point mapping typed failures onto responses.
// The error kind and message are left in the context for the request logger.
func respondError(c *fiber.Ctx, err *httperr.Error) error {
	c.Locals("error_kind", err.Kind())
	c.Locals("error_message", err.Message)
	return c.Status(err.Code).JSON(fiber.Map{"error": err.Message})
}

// parseBody decodes a JSON object body. Missing and malformed bodies read as
// absent; the orchestrator decides whether that is acceptable.
func parseBody(c *fiber.Ctx) map[string]any {
	var body map[string]any
	if err := c.BodyParser(&body); err != nil {
		return nil
	}
	return body
}

// RegisterRoutes registers the CRUD routes for this handler's category. The
// dates category additionally gets the day/month special query, registered
// before the id route so "today" is not read as an id.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	cat := h.service.Category()
	routes := router.Group("/" + cat.Plural)
	if cat.Plural == models.DateCategory.Plural {
		routes.Get("/today", h.HandleToday)
	}
	routes.Get("/", h.HandleList)
	routes.Post("/", h.HandleCreate)
	routes.Get("/:id", h.HandleGet)
	routes.Put("/:id", h.HandleUpdate)
	routes.Delete("/:id", h.HandleDelete)
}

func (h *CategoryHandler) HandleList(c *fiber.Ctx) error {
	noLimit := c.QueryBool("all", false)
	result, err := h.service.List(c.Query("page"), c.Query("count"), noLimit)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *CategoryHandler) HandleCreate(c *fiber.Ctx) error {
	id, err := h.service.Create(parseBody(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (h *CategoryHandler) HandleGet(c *fiber.Ctx) error {
	result, err := h.service.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *CategoryHandler) HandleUpdate(c *fiber.Ctx) error {
	user := middleware.ActingUser(c)
	result, err := h.service.Update(user, c.Params("id"), parseBody(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *CategoryHandler) HandleDelete(c *fiber.Ctx) error {
	user := middleware.ActingUser(c)
	if err := h.service.Delete(user, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusNoContent).Send(nil)
}

func (h *CategoryHandler) HandleToday(c *fiber.Ctx) error {
	result, err := h.service.Today()
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}
