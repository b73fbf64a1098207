package main

import (
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recov "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"health42/internal/config"
	"health42/internal/http/handlers"
	applog "health42/internal/log"
	"health42/internal/store"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := store.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Templates & app
	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(recov.New())
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(string(c.Request().URI().Path()), "/static/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Next: func(c *fiber.Ctx) bool {
			// the affiliate redirect is a plain GET and stays cacheable
			return strings.HasPrefix(c.Path(), "/go/")
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	app.Static("/static", "./web/static")

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg)

	app.Get("/", deps.HomeHandler.Home)
	app.Get("/catalog", limiter.New(limiter.Config{Max: 30, Expiration: time.Minute}), deps.CatalogHandler.List)
	app.Get("/supplement/:id", deps.SupplementHandler.Detail)
	app.Get("/go/:id", deps.SupplementHandler.Go)
	app.Get("/blog", deps.BlogHandler.List)
	app.Get("/post/:id", deps.PostHandler.Detail)

	app.Get("/contact", deps.ContactHandler.Form)
	app.Post("/contact", deps.ContactHandler.Submit)
	app.Post("/newsletter", deps.NewsletterHandler.Signup)

	// Admin (shared-key gate, not real auth)
	gate := handlers.NewGate(cfg)
	adm := app.Group("/admin", gate.Require())
	adm.Get("/supplement", deps.AdminHandler.SupplementForm)
	adm.Post("/supplement", deps.AdminHandler.CreateSupplement)
	adm.Get("/post", deps.AdminHandler.PostForm)
	adm.Post("/post", deps.AdminHandler.CreatePost)
	adm.Get("/export/supplements.json", deps.AdminHandler.ExportSupplements)
	adm.Get("/export/posts.json", deps.AdminHandler.ExportPosts)
	adm.Get("/export/analytics.csv", deps.AdminHandler.ExportAnalytics)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	// Flush buffered analytics before exit
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		deps.Analytics.Close()
		_ = app.Shutdown()
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
	log.Println("[server] stopped")
}
