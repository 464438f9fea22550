package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	DatabaseURL     string
	Env             string
	DevMode         bool
	AuthVerifyURL   string
	AuthSecret      string
	GeminiAPIKey    string
	GeminiModel     string
	GitHubAPIURL    string
	WorkspaceMode   string
	WorkspaceDir    string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	_ = godotenv.Load(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	devMode := parseBool(getEnv("DEV_MODE", "false"))
	if devMode && env == "production" {
		// The auth bypass must never reach a production deployment.
		log.Printf("DEV_MODE ignored: not allowed when ENV=production")
		devMode = false
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "*")),
		DatabaseURL:     dbURL,
		Env:             env,
		DevMode:         devMode,
		AuthVerifyURL:   getEnv("AUTH_VERIFY_URL", ""),
		AuthSecret:      getEnv("AUTH_SERVER_SECRET", ""),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GitHubAPIURL:    getEnv("GITHUB_API_URL", "https://api.github.com"),
		WorkspaceMode:   normalizeWorkspaceMode(getEnv("WORKSPACE_MODE", "dir")),
		WorkspaceDir:    getEnv("WORKSPACE_DIR", "./data"),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeWorkspaceMode(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "virtual":
		return "virtual"
	default:
		return "dir"
	}
}
