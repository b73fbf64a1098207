package handlers

import (
	"github.com/gofiber/fiber/v2"

	"health42/internal/services"
	"health42/internal/validate"
)

type BlogHandler struct {
	Catalog *services.CatalogService
	PerPage int
}

func (h *BlogHandler) List(c *fiber.Ctx) error {
	page := h.Catalog.BlogPage(validate.Page(c.Query("page")), h.PerPage)
	return render(c, "blog", fiber.Map{
		"Posts": page.Items,
		"Page":  page.Number,
		"Pages": pages(page.TotalPages),
	})
}
