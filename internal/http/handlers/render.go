package handlers

import "github.com/gofiber/fiber/v2"

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	// Pick up the token the CSRF middleware put into Locals
	if tok, _ := c.Locals("CSRFToken").(string); tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

// pages expands a page count into the numbers the pagination template
// ranges over; nil when there is nothing to paginate.
func pages(totalPages int) []int {
	if totalPages <= 1 {
		return nil
	}
	out := make([]int, totalPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
