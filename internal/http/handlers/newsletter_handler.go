package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "health42/internal/log"
	"health42/internal/validate"
	"health42/internal/webhook"
)

type NewsletterHandler struct {
	Hook *webhook.Client
}

// Signup handles the footer newsletter form, present on every page; it
// renders the home page with the outcome.
func (h *NewsletterHandler) Signup(c *fiber.Ctx) error {
	if c.FormValue("website") != "" {
		applog.Security(c, "newsletter.honeypot", nil)
		return render(c, "home", fiber.Map{"Msg": "Thanks for subscribing! Please check your inbox."})
	}

	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).Render("home", fiber.Map{"Err": "Enter a valid email address"})
	}
	name := strings.TrimSpace(c.FormValue("name"))

	if err := h.Hook.NewsletterSignup(c.Context(), email, name); err != nil {
		applog.Error(c, "newsletter.webhook.fail", err, nil)
		return render(c, "home", fiber.Map{"Err": "Could not subscribe. Please try again."})
	}
	applog.Info(c, "newsletter.signup", nil)
	return render(c, "home", fiber.Map{"Msg": "Thanks for subscribing! Please check your inbox."})
}
