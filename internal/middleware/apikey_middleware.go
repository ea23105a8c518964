package middleware

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"stash/internal/config"
	"stash/internal/httperr"
	"stash/internal/models"
	"stash/internal/repositories"
	"stash/internal/services"
)

// ApiKeyRequired resolves the x-api-key header against stored API keys and
// stashes the acting user in the request context. Test contexts skip the
// lookup and act as the sentinel test identity. Rejections leave the error
// kind and message in the context so the request logger records them; it
// must be registered outside this middleware.
func ApiKeyRequired(keys repositories.ApiKeyRepository, cfg config.Config) fiber.Handler {
	reject := func(c *fiber.Ctx, herr *httperr.Error) error {
		c.Locals("error_kind", herr.Kind())
		c.Locals("error_message", herr.Message)
		return c.Status(herr.Code).JSON(fiber.Map{"error": herr.Message})
	}
	return func(c *fiber.Ctx) error {
		if cfg.Testing {
			c.Locals("user", models.TestUser)
			return c.Next()
		}

		key := c.Get("x-api-key")
		if key == "" {
			return reject(c, httperr.Unauthorized())
		}

		apiKey, err := keys.FindByKey(key)
		if err != nil {
			log.Printf("API key lookup failed: %v", err)
			return reject(c, httperr.Internal("Failed to verify API key"))
		}
		if apiKey == nil {
			return reject(c, httperr.Unauthorized())
		}

		c.Locals("user", apiKey.User)
		return c.Next()
	}
}

// ActingUser returns the identity set by ApiKeyRequired, or the sentinel
// test identity when none was resolved.
func ActingUser(c *fiber.Ctx) string {
	if user, ok := c.Locals("user").(string); ok && user != "" {
		return user
	}
	return models.TestUser
}

// RequestLogger appends one structured log entry per handled request,
// success and error alike.
func RequestLogger(logs *services.LogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		user := ActingUser(c)
		status := c.Response().StatusCode()
		details := map[string]any{
			"status": status,
			"path":   c.Path(),
		}
		outcome := "OK"
		if kind, ok := c.Locals("error_kind").(string); ok {
			details["error_class"] = kind
		}
		if message, ok := c.Locals("error_message").(string); ok {
			outcome = message
		}
		message := fmt.Sprintf("%s %s -- %s", c.Method(), c.Route().Path, outcome)
		if status < 400 {
			logs.Info(user, message, details)
		} else {
			logs.Error(user, message, details)
		}
		return err
	}
}
