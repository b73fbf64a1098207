package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"health42/internal/admin"
	"health42/internal/export"
	applog "health42/internal/log"
	"health42/internal/services"
)

type AdminHandler struct {
	Admin     *services.AdminService
	Catalog   *services.CatalogService
	Analytics *services.AnalyticsService
}

// GET /admin/supplement
func (h *AdminHandler) SupplementForm(c *fiber.Ctx) error {
	return render(c, "admin_supplement", fiber.Map{"Categories": h.Catalog.Categories()})
}

// POST /admin/supplement
func (h *AdminHandler) CreateSupplement(c *fiber.Ctx) error {
	sp, err := h.Admin.StageSupplement(formFields(c))
	if err != nil {
		return h.renderFormError(c, "admin_supplement", err)
	}
	applog.Audit(c, "admin.supplement.stage", map[string]any{"id": sp.ID})
	return render(c, "admin_supplement", fiber.Map{
		"Categories": h.Catalog.Categories(),
		"Msg":        "Supplement saved locally. Export to update the live data.",
	})
}

// GET /admin/post
func (h *AdminHandler) PostForm(c *fiber.Ctx) error {
	return render(c, "admin_post", fiber.Map{"Categories": h.Catalog.Categories()})
}

// POST /admin/post
func (h *AdminHandler) CreatePost(c *fiber.Ctx) error {
	p, err := h.Admin.StagePost(formFields(c))
	if err != nil {
		return h.renderFormError(c, "admin_post", err)
	}
	applog.Audit(c, "admin.post.stage", map[string]any{"id": p.ID})
	return render(c, "admin_post", fiber.Map{
		"Categories": h.Catalog.Categories(),
		"Msg":        "Post saved locally. Export to update the live data.",
	})
}

// GET /admin/export/supplements.json
func (h *AdminHandler) ExportSupplements(c *fiber.Ctx) error {
	return h.exportJSON(c, "supplements.json", h.Catalog.Supplements())
}

// GET /admin/export/posts.json
func (h *AdminHandler) ExportPosts(c *fiber.Ctx) error {
	return h.exportJSON(c, "posts.json", h.Catalog.Posts())
}

// GET /admin/export/analytics.csv
func (h *AdminHandler) ExportAnalytics(c *fiber.Ctx) error {
	events := h.Analytics.Events()
	if len(events) == 0 {
		return c.Status(404).Render("denied", fiber.Map{"Message": "No analytics data to export."})
	}
	b, err := export.AnalyticsCSV(events)
	if err != nil {
		applog.Error(c, "admin.export.analytics.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Export failed"})
	}
	applog.Audit(c, "admin.export.analytics", map[string]any{"events": len(events)})
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="analytics_export.csv"`)
	return c.Type("csv").Send(b)
}

func (h *AdminHandler) exportJSON(c *fiber.Ctx, name string, v any) error {
	b, err := export.JSON(v)
	if err != nil {
		applog.Error(c, "admin.export.fail", err, map[string]any{"file": name})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Export failed"})
	}
	applog.Audit(c, "admin.export", map[string]any{"file": name})
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Type("json").Send(b)
}

func (h *AdminHandler) renderFormError(c *fiber.Ctx, tmpl string, err error) error {
	var verr *admin.ValidationError
	msg := "Could not save. Please check the form and try again."
	if errors.As(err, &verr) {
		msg = "Invalid " + verr.Field + ": " + verr.Reason
	}
	applog.Security(c, "admin.validation.fail", map[string]any{"err": err.Error()})
	return c.Status(fiber.StatusBadRequest).Render(tmpl, fiber.Map{
		"Categories": h.Catalog.Categories(),
		"Err":        msg,
	})
}

// formFields flattens the posted form into the field map the record
// builder consumes. Only the first value of each key matters.
func formFields(c *fiber.Ctx) map[string]string {
	out := map[string]string{}
	c.Request().PostArgs().VisitAll(func(k, v []byte) {
		key := string(k)
		if _, seen := out[key]; !seen {
			out[key] = string(v)
		}
	})
	return out
}
