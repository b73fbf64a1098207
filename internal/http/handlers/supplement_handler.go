package handlers

import (
	"html/template"

	"github.com/gofiber/fiber/v2"

	applog "health42/internal/log"
	"health42/internal/services"
	"health42/internal/validate"
)

type SupplementHandler struct {
	Catalog   *services.CatalogService
	Analytics *services.AnalyticsService
}

func (h *SupplementHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "supplement"})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Supplement not found"})
	}
	s, found := h.Catalog.Supplement(id)
	if !found {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "The requested supplement could not be found"})
	}
	// descriptionHtml is authored markup from the seed or the admin form
	return render(c, "supplement", fiber.Map{
		"S":           s,
		"Hoplink":     s.Hoplink(),
		"Description": template.HTML(s.DescriptionHTML),
	})
}

// Go records an affiliate-link click and forwards to the hoplink. Kept
// as a redirect so every outbound click passes through the event log.
func (h *SupplementHandler) Go(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Supplement not found"})
	}
	s, found := h.Catalog.Supplement(id)
	if !found || s.Hoplink() == "" {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "The requested supplement could not be found"})
	}
	h.Analytics.RecordClick(s.ID, s.Hoplink())
	applog.Info(c, "affiliate.click", map[string]any{"supplement": s.ID})
	return c.Redirect(s.Hoplink(), fiber.StatusFound)
}
