package handlers

import (
	"time"

	"github.com/jmoiron/sqlx"

	"health42/internal/config"
	"health42/internal/services"
	"health42/internal/store"
	"health42/internal/webhook"
)

type Deps struct {
	HomeHandler       *HomeHandler
	CatalogHandler    *CatalogHandler
	SupplementHandler *SupplementHandler
	BlogHandler       *BlogHandler
	PostHandler       *PostHandler
	ContactHandler    *ContactHandler
	NewsletterHandler *NewsletterHandler
	AdminHandler      *AdminHandler
	Analytics         *services.AnalyticsService
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	localStore := store.NewLocalStore(db)
	baseline := store.NewBaselineSource(cfg.DataDir)

	catalogSvc := services.NewCatalogService(baseline, localStore)
	adminSvc := services.NewAdminService(localStore)
	analyticsSvc := services.NewAnalyticsService(localStore, 300*time.Millisecond)
	hook := webhook.NewClient(cfg.WebhookURL, cfg.SourceTag)

	return &Deps{
		HomeHandler:       &HomeHandler{Catalog: catalogSvc},
		CatalogHandler:    &CatalogHandler{Catalog: catalogSvc, PerPage: cfg.SupplementsPerPage},
		SupplementHandler: &SupplementHandler{Catalog: catalogSvc, Analytics: analyticsSvc},
		BlogHandler:       &BlogHandler{Catalog: catalogSvc, PerPage: cfg.PostsPerPage},
		PostHandler:       &PostHandler{Catalog: catalogSvc},
		ContactHandler:    &ContactHandler{Hook: hook},
		NewsletterHandler: &NewsletterHandler{Hook: hook},
		AdminHandler:      &AdminHandler{Admin: adminSvc, Catalog: catalogSvc, Analytics: analyticsSvc},
		Analytics:         analyticsSvc,
	}
}
