package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port      string `envconfig:"PORT" default:"8080"`
	DBDSN     string `envconfig:"DB_DSN" default:"health42.db"`
	DataDir   string `envconfig:"DATA_DIR" default:"./data"`
	LogFile   string `envconfig:"LOG_FILE" default:"./health42.log"`
	Brand     string `envconfig:"BRAND" default:"health42"`
	SourceTag string `envconfig:"WEBHOOK_SOURCE" default:"health42_site"`

	WebhookURL string `envconfig:"WEBHOOK_URL"`

	// AdminKeyHash (bcrypt) wins over the plain AdminKey when both are
	// set. This is a shared static gate, not real authentication.
	AdminKey     string `envconfig:"ADMIN_KEY"`
	AdminKeyHash string `envconfig:"ADMIN_KEY_HASH"`

	SupplementsPerPage int `envconfig:"SUPPLEMENTS_PER_PAGE" default:"12"`
	PostsPerPage       int `envconfig:"POSTS_PER_PAGE" default:"9"`
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file, using system environment")
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("[config] %v", err)
	}
	log.Printf("[config] PORT=%s DB_DSN=%s DATA_DIR=%s", cfg.Port, cfg.DBDSN, cfg.DataDir)
	return cfg
}
