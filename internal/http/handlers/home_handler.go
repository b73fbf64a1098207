package handlers

import (
	"github.com/gofiber/fiber/v2"

	"health42/internal/services"
)

type HomeHandler struct {
	Catalog *services.CatalogService
}

func (h *HomeHandler) Home(c *fiber.Ctx) error {
	return render(c, "home", fiber.Map{
		"Featured":    h.Catalog.Featured(3),
		"LatestPosts": h.Catalog.LatestPosts(3),
	})
}
