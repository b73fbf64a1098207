package handlers

import (
	"html/template"

	"github.com/gofiber/fiber/v2"

	applog "health42/internal/log"
	"health42/internal/services"
	"health42/internal/validate"
)

type PostHandler struct {
	Catalog *services.CatalogService
}

func (h *PostHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "post"})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Post not found"})
	}
	p, found := h.Catalog.Post(id)
	if !found {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "The requested post could not be found"})
	}
	return render(c, "post", fiber.Map{"P": p, "Body": template.HTML(p.BodyHTML)})
}
