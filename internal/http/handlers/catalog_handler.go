package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"health42/internal/catalog"
	applog "health42/internal/log"
	"health42/internal/services"
	"health42/internal/validate"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
	PerPage int
}

// List renders the filtered, sorted, paginated storefront grid. Filter
// criteria ride on query params so every page link regenerates the full
// view.
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	crit := catalog.Criteria{}

	if rawQ := strings.TrimSpace(c.Query("q")); rawQ != "" {
		q, ok := validate.Q(rawQ)
		if !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "q", "value": rawQ})
			return c.Status(fiber.StatusBadRequest).Render("catalog", fiber.Map{
				"Categories": h.Catalog.Categories(),
				"Err":        "Enter a valid keyword (letters/numbers only)",
			})
		}
		crit.SearchTerm = q
	}

	cat, ok := validate.Category(c.Query("category"), h.Catalog.Categories())
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "category"})
		return c.Status(fiber.StatusBadRequest).Render("catalog", fiber.Map{
			"Categories": h.Catalog.Categories(),
			"Err":        "Invalid category",
		})
	}
	crit.Category = cat

	sortKey, ok := validate.Sort(c.Query("sort"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "sort"})
		return c.Status(fiber.StatusBadRequest).Render("catalog", fiber.Map{
			"Categories": h.Catalog.Categories(),
			"Err":        "Invalid sort",
		})
	}
	crit.Sort = sortKey

	pageNum := validate.Page(c.Query("page"))
	page := h.Catalog.CatalogPage(crit, pageNum, h.PerPage)

	return render(c, "catalog", fiber.Map{
		"Supplements": page.Items,
		"Count":       page.Total,
		"Page":        page.Number,
		"Pages":       pages(page.TotalPages),
		"Q":           crit.SearchTerm,
		"Category":    crit.Category,
		"Sort":        crit.Sort,
		"Categories":  h.Catalog.Categories(),
	})
}
