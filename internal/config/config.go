package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DSN              string
	JWTSecret        string
	AppPort          string
	PolicyTemplates  string
	ResourceTemplate string
	BrokerURL        string
	ArtifactRoot     string
	ChunkSize        int
	UpstreamTimeout  time.Duration
}

func Load() Config {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := Config{
		DSN:              os.Getenv("MYSQL_DSN"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		AppPort:          os.Getenv("APP_PORT"),
		PolicyTemplates:  os.Getenv("POLICY_TEMPLATE_DIR"),
		ResourceTemplate: os.Getenv("RESOURCE_TEMPLATE_PATH"),
		BrokerURL:        os.Getenv("BROKER_URL"),
		ArtifactRoot:     os.Getenv("ARTIFACT_ROOT"),
		ChunkSize:        256 * 1024,
		UpstreamTimeout:  30 * time.Second,
	}

	if cfg.DSN == "" {
		log.Fatal("❌ MYSQL_DSN not set in environment")
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-only"
	}
	if cfg.AppPort == "" {
		cfg.AppPort = "8080"
	}
	if cfg.PolicyTemplates == "" {
		cfg.PolicyTemplates = "templates/policies"
	}
	if cfg.ResourceTemplate == "" {
		cfg.ResourceTemplate = "templates/true_connector_resource.json"
	}
	if cfg.ArtifactRoot == "" {
		cfg.ArtifactRoot = "data/artifacts"
	}
	if v := os.Getenv("CHUNK_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ChunkSize = n
		}
	}
	if v := os.Getenv("UPSTREAM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.UpstreamTimeout = d
		}
	}

	return cfg
}
