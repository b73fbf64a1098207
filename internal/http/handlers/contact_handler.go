package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "health42/internal/log"
	"health42/internal/validate"
	"health42/internal/webhook"
)

type ContactHandler struct {
	Hook *webhook.Client
}

func (h *ContactHandler) Form(c *fiber.Ctx) error {
	return render(c, "contact", fiber.Map{})
}

func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	// Honeypot: bots fill the hidden field; drop silently.
	if c.FormValue("website") != "" {
		applog.Security(c, "contact.honeypot", nil)
		return render(c, "contact", fiber.Map{"Msg": "Thank you for your message! We will get back to you soon."})
	}

	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).Render("contact", fiber.Map{"Err": "Enter a valid email address"})
	}
	name := strings.TrimSpace(c.FormValue("name"))
	subject := strings.TrimSpace(c.FormValue("subject"))
	message := strings.TrimSpace(c.FormValue("message"))
	if name == "" || message == "" {
		return c.Status(fiber.StatusBadRequest).Render("contact", fiber.Map{"Err": "Name and message are required"})
	}

	if err := h.Hook.ContactMessage(c.Context(), name, email, subject, message); err != nil {
		applog.Error(c, "contact.webhook.fail", err, nil)
		return render(c, "contact", fiber.Map{"Err": "Something went wrong. Please try again."})
	}
	applog.Info(c, "contact.sent", nil)
	return render(c, "contact", fiber.Map{"Msg": "Thank you for your message! We will get back to you soon."})
}
