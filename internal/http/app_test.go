package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"health42/internal/config"
	"health42/internal/http/handlers"
	"health42/internal/store"
)

const seedSupplements = `[
  {"id":"collagen-01","name":"Marine Collagen Peptides","brand":"GlowLabs","category":"Beauty",
   "tags":["Collagen","Skin"],"shortDescription":"Peptides.","price":29.99,"compareAtPrice":39.99,
   "rating":4.7,"reviewsCount":812,"images":["/static/img/collagen-01.jpg"],
   "clickbankHoplink":"https://hop.example.net/?tid={{utm}}","lastUpdated":"2024-05-12T09:30:00Z"},
  {"id":"zinc-boost-01","name":"Zinc Boost Gummies","brand":"VitaCore","category":"Remedies",
   "tags":["Zinc-Boost"],"shortDescription":"Gummies.","price":18.5,
   "rating":4.4,"reviewsCount":233,"images":["/static/img/zinc.jpg"],
   "clickbankHoplink":"https://hop.example.net/?tid={{utm}}","lastUpdated":"2024-04-02T14:00:00Z"},
  {"id":"white-strips-01","name":"Whitening Strips","brand":"BrightSmile","category":"Dental Health",
   "tags":["Whitening"],"shortDescription":"Strips.","price":24,
   "rating":4.1,"reviewsCount":157,"images":["/static/img/strips.jpg"],
   "clickbankHoplink":"","lastUpdated":"2024-03-20T08:15:00Z"}
]`

const seedPosts = `[
  {"id":"collagen-explained","title":"Collagen, explained","excerpt":"Research digest.",
   "bodyHtml":"<p>Body</p>","author":"J. Reyes","category":"Beauty",
   "publishedAt":"2024-03-15T00:00:00Z","updatedAt":"2024-03-15T00:00:00Z"}
]`

// newTestApp wires the app the way main does, minus rate limiting.
func newTestApp(t *testing.T, mutate func(*config.Config)) (*fiber.App, *handlers.Deps, *store.LocalStore) {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "supplements.json"), []byte(seedSupplements), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "posts.json"), []byte(seedPosts), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Config{
		DBDSN:              ":memory:",
		DataDir:            dir,
		AdminKey:           "testkey",
		SourceTag:          "health42_site",
		SupplementsPerPage: 12,
		PostsPerPage:       9,
	}
	if mutate != nil {
		mutate(&cfg)
	}

	db, err := store.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax", ContextKey: "csrf"}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	deps := handlers.NewDeps(db, cfg)
	app.Get("/", deps.HomeHandler.Home)
	app.Get("/catalog", deps.CatalogHandler.List)
	app.Get("/supplement/:id", deps.SupplementHandler.Detail)
	app.Get("/go/:id", deps.SupplementHandler.Go)
	app.Get("/blog", deps.BlogHandler.List)
	app.Get("/post/:id", deps.PostHandler.Detail)
	app.Get("/contact", deps.ContactHandler.Form)
	app.Post("/contact", deps.ContactHandler.Submit)
	app.Post("/newsletter", deps.NewsletterHandler.Signup)

	gate := handlers.NewGate(cfg)
	adm := app.Group("/admin", gate.Require())
	adm.Get("/supplement", deps.AdminHandler.SupplementForm)
	adm.Post("/supplement", deps.AdminHandler.CreateSupplement)
	adm.Get("/post", deps.AdminHandler.PostForm)
	adm.Post("/post", deps.AdminHandler.CreatePost)
	adm.Get("/export/supplements.json", deps.AdminHandler.ExportSupplements)
	adm.Get("/export/posts.json", deps.AdminHandler.ExportPosts)
	adm.Get("/export/analytics.csv", deps.AdminHandler.ExportAnalytics)

	return app, deps, store.NewLocalStore(db)
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

var csrfField = regexp.MustCompile(`name="csrf" value="([^"]+)"`)

// csrfFor fetches a form page and returns the embedded token plus the
// Cookie header needed to replay it on a POST.
func csrfFor(t *testing.T, app *fiber.App, path string) (token, cookie string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	if err != nil {
		t.Fatal(err)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	m := csrfField.FindSubmatch(b)
	if m == nil {
		t.Fatalf("no csrf field on %s: %s", path, b)
	}
	return string(m[1]), "csrf_=" + extractCookie(resp, "csrf_")
}
