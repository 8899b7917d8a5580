package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Files
		Catalog
		Auth
		Log
		Tasks
		OverdueReport
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Files struct {
		DatabasePath string
		AtomicWrites bool // Wrap multi-statement writes in one transaction
	}
	Catalog struct {
		DatabasePath string
		LoanDays     int
	}
	Auth struct {
		SessionSecret   string
		SessionLifetime time.Duration
		BcryptCost      int
		SecureCookies   bool // Set to false for local dev without HTTPS
		CSRFEnabled     bool
	}
	Log struct {
		File       string // Empty means stderr only
		MaxSizeMB  int
		MaxBackups int
		MaxAgeDays int
		Compress   bool
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	OverdueReport struct {
		Enabled  bool
		Schedule string // Cron format: "0 8 * * *" = daily at 08:00
	}
)

// envFiles are loaded, when present, before the environment is read.
var envFiles = []string{".env", ".env.local"}

func loadEnvFiles() {
	for _, f := range envFiles {
		// Missing files are fine
		_ = godotenv.Load(f)
	}
}

func NewConfig() *Config {
	loadEnvFiles()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	v.SetDefault("files_database_path", DefaultFilesDatabasePath)
	v.SetDefault("files_atomic_writes", true)

	v.SetDefault("catalog_database_path", DefaultCatalogDatabasePath)
	v.SetDefault("catalog_loan_days", DefaultLoanDays)

	// Auth defaults
	v.SetDefault("auth_session_secret", "")      // Auto-generated if empty
	v.SetDefault("auth_session_lifetime", "24h") // 24 hours
	v.SetDefault("auth_bcrypt_cost", 12)         // bcrypt cost factor
	v.SetDefault("auth_secure_cookies", false)
	v.SetDefault("auth_csrf_enabled", true)

	// Log file rotation defaults
	v.SetDefault("log_file", "")
	v.SetDefault("log_max_size_mb", 10)
	v.SetDefault("log_max_backups", 3)
	v.SetDefault("log_max_age_days", 28)
	v.SetDefault("log_compress", false)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	v.SetDefault("overdue_report_enabled", true)
	v.SetDefault("overdue_report_schedule", "0 8 * * *")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Files: Files{
			DatabasePath: v.GetString("FILES_DATABASE_PATH"),
			AtomicWrites: v.GetBool("FILES_ATOMIC_WRITES"),
		},
		Catalog: Catalog{
			DatabasePath: v.GetString("CATALOG_DATABASE_PATH"),
			LoanDays:     v.GetInt("CATALOG_LOAN_DAYS"),
		},
		Auth: Auth{
			SessionSecret:   v.GetString("AUTH_SESSION_SECRET"),
			SessionLifetime: v.GetDuration("AUTH_SESSION_LIFETIME"),
			BcryptCost:      v.GetInt("AUTH_BCRYPT_COST"),
			SecureCookies:   v.GetBool("AUTH_SECURE_COOKIES"),
			CSRFEnabled:     v.GetBool("AUTH_CSRF_ENABLED"),
		},
		Log: Log{
			File:       v.GetString("LOG_FILE"),
			MaxSizeMB:  v.GetInt("LOG_MAX_SIZE_MB"),
			MaxBackups: v.GetInt("LOG_MAX_BACKUPS"),
			MaxAgeDays: v.GetInt("LOG_MAX_AGE_DAYS"),
			Compress:   v.GetBool("LOG_COMPRESS"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		OverdueReport: OverdueReport{
			Enabled:  v.GetBool("OVERDUE_REPORT_ENABLED"),
			Schedule: v.GetString("OVERDUE_REPORT_SCHEDULE"),
		},
	}
}
