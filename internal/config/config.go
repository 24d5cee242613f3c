package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	CORS    CORSConfig
	Alerts  AlertsConfig
	Export  ExportConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string
}

// AlertsConfig configures the outbound low-stock webhook. An empty URL
// disables alerting.
type AlertsConfig struct {
	WebhookURL string
}

// ExportConfig configures the daily summary export to Google Sheets.
// The export is disabled unless both the credentials path and the
// spreadsheet id are provided.
type ExportConfig struct {
	CronSchedule    string
	CredentialsPath string
	SpreadsheetID   string
	SheetRange      string
}

// Enabled reports whether the sheets export should be wired at startup.
func (e ExportConfig) Enabled() bool {
	return e.CredentialsPath != "" && e.SpreadsheetID != ""
}

// Enabled reports whether low-stock alerting should be wired at startup.
func (a AlertsConfig) Enabled() bool {
	return a.WebhookURL != ""
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "coldstore"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitOrigins(getenvWithDefault("CORS_ORIGINS", "*")),
		},
		Alerts: AlertsConfig{
			WebhookURL: os.Getenv("LOW_STOCK_WEBHOOK_URL"),
		},
		Export: ExportConfig{
			CronSchedule:    getenvWithDefault("EXPORT_CRON_SCHEDULE", "0 20 * * *"),
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_EXPORT_ID"),
			SheetRange:      getenvWithDefault("EXPORT_SHEET_RANGE", "Daily!A:E"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.MongoDB.URI == "" {
		return errors.New("MONGODB_URI must be provided")
	}

	if c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		return errors.New("CORS_ORIGINS must not be empty")
	}

	// Half-configured export is a deployment mistake, not a disabled feature.
	if c.Export.CredentialsPath != "" || c.Export.SpreadsheetID != "" {
		if !c.Export.Enabled() {
			return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_EXPORT_ID must both be provided to enable the export")
		}
		if c.Export.CronSchedule == "" {
			return errors.New("EXPORT_CRON_SCHEDULE must be provided when the export is enabled")
		}
	}

	return nil
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
