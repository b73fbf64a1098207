package handlers

import (
	"crypto/subtle"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"health42/internal/config"
	applog "health42/internal/log"
)

// Gate is the shared-secret admin gate: a ?key= query param checked
// against a static secret. It is not real authentication, anyone with
// the link is in, but a matching key is exchanged for a session cookie
// so form POSTs do not need to carry the secret around.
type Gate struct {
	key  string
	hash string

	mu       sync.Mutex
	sessions map[string]bool
}

func NewGate(cfg config.Config) *Gate {
	return &Gate{key: cfg.AdminKey, hash: cfg.AdminKeyHash, sessions: map[string]bool{}}
}

func (g *Gate) keyOK(key string) bool {
	if key == "" {
		return false
	}
	if g.hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(g.hash), []byte(key)) == nil
	}
	if g.key == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(g.key), []byte(key)) == 1
}

func (g *Gate) hasSession(tok string) bool {
	if tok == "" {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sessions[tok]
}

func (g *Gate) newSession() string {
	tok := uuid.NewString()
	g.mu.Lock()
	g.sessions[tok] = true
	g.mu.Unlock()
	return tok
}

// Require admits requests carrying a valid gate cookie or the correct
// ?key=. A mismatch renders a denied page that redirects home after a
// brief delay.
func (g *Gate) Require() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if g.hasSession(c.Cookies("gate")) {
			return c.Next()
		}
		if g.keyOK(c.Query("key")) {
			c.Cookie(&fiber.Cookie{
				Name:     "gate",
				Value:    g.newSession(),
				Path:     "/admin",
				HTTPOnly: true,
				SameSite: "Lax",
			})
			return c.Next()
		}
		applog.Security(c, "access.denied.admin", nil)
		return c.Status(fiber.StatusForbidden).Render("denied", fiber.Map{
			"Message": "Invalid admin key.",
		})
	}
}
