package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type (
	Config struct {
		HTTP
		Corpus
		Loader
		Log
		CORS
		Metrics
		CorpusWatch
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Corpus struct {
		TranslationsPath string
	}
	Loader struct {
		MaxOpenFiles int
		Timeout      time.Duration // Zero means no limit
	}
	Log struct {
		Level string // zap level name: debug, info, warn, error
		Env   string // "production" selects JSON output
	}
	CORS struct {
		Enabled bool
		Origin  string // "*" or comma-separated origins; empty disables the headers
	}
	Metrics struct {
		Enabled bool
	}
	CorpusWatch struct {
		Enabled  bool
		Schedule string // Cron format: "*/15 * * * *" = every 15 minutes
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

// IsProduction reports whether APP_ENV selects production logging.
func (l Log) IsProduction() bool {
	return l.Env == EnvProduction
}

// ShutdownTimeout returns the graceful shutdown budget as a duration.
func (g Global) ShutdownTimeout() time.Duration {
	return time.Duration(g.ShutdownTimeoutInSeconds) * time.Second
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 3000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("translations_path", DefaultTranslationsPath)

	// Loader defaults
	v.SetDefault("loader_max_open_files", 64)
	v.SetDefault("loader_timeout", "0s")

	v.SetDefault("log_level", "info")
	v.SetDefault("app_env", EnvDevelopment)

	v.SetDefault("cors_enabled", true)
	v.SetDefault("cors_origin", "")
	v.SetDefault("metrics_enabled", true)

	v.SetDefault("corpus_watch_enabled", false)
	v.SetDefault("corpus_watch_schedule", "*/15 * * * *") // Every 15 minutes

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Corpus: Corpus{
			TranslationsPath: v.GetString("TRANSLATIONS_PATH"),
		},
		Loader: Loader{
			MaxOpenFiles: v.GetInt("LOADER_MAX_OPEN_FILES"),
			Timeout:      v.GetDuration("LOADER_TIMEOUT"),
		},
		Log: Log{
			Level: v.GetString("LOG_LEVEL"),
			Env:   v.GetString("APP_ENV"),
		},
		CORS: CORS{
			Enabled: v.GetBool("CORS_ENABLED"),
			Origin:  v.GetString("CORS_ORIGIN"),
		},
		Metrics: Metrics{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
		CorpusWatch: CorpusWatch{
			Enabled:  v.GetBool("CORPUS_WATCH_ENABLED"),
			Schedule: v.GetString("CORPUS_WATCH_SCHEDULE"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
