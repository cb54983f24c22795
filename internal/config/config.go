// Package config loads taskforge settings from defaults, an optional config
// file, an optional .env file and TASKFORGE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "TASKFORGE"

// Config holds all runtime settings.
type Config struct {
	Env             string
	DBDriver        string
	DBDSN           string
	UserID          int64
	LogLevel        string
	LogFormat       string
	Notify          string
	SendGridAPIKey  string
	FromEmail       string
	AppName         string
	MetricsTextfile string
	RollbarToken    string
	UseCaseLog      string
}

// Options controls where Load looks for files. Zero values use the defaults.
type Options struct {
	// ConfigFile is an explicit YAML/TOML/JSON file. When empty, taskforge.*
	// is searched in the working directory and $HOME/.taskforge.
	ConfigFile string
	// DotEnvFile defaults to ".env" in the working directory.
	DotEnvFile string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")
	v.SetDefault("db_driver", "sqlite")
	v.SetDefault("db_dsn", defaultDSN())
	v.SetDefault("user_id", 1)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("notify", "console")
	v.SetDefault("sendgrid_api_key", "")
	v.SetDefault("from_email", "noreply@localhost")
	v.SetDefault("app_name", "Taskforge")
	v.SetDefault("metrics_textfile", "")
	v.SetDefault("rollbar_token", "")
	v.SetDefault("use_case_log", "")
}

// Load builds a Config. Missing files are not an error; malformed ones are.
func Load(opts Options) (*Config, error) {
	dotEnv := opts.DotEnvFile
	if dotEnv == "" {
		dotEnv = ".env"
	}
	// load .env if it exists (ignore if it does not)
	if _, err := os.Stat(dotEnv); err == nil {
		if err := godotenv.Load(dotEnv); err != nil {
			return nil, fmt.Errorf("loading %s: %w", dotEnv, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("checking %s: %w", dotEnv, err)
	}

	v := viper.New()
	v.SetTypeByDefaultValue(true)
	setDefaults(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("taskforge")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".taskforge"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	cfg := &Config{
		Env:             v.GetString("env"),
		DBDriver:        strings.ToLower(v.GetString("db_driver")),
		DBDSN:           v.GetString("db_dsn"),
		UserID:          v.GetInt64("user_id"),
		LogLevel:        v.GetString("log_level"),
		LogFormat:       strings.ToLower(v.GetString("log_format")),
		Notify:          strings.ToLower(v.GetString("notify")),
		SendGridAPIKey:  v.GetString("sendgrid_api_key"),
		FromEmail:       v.GetString("from_email"),
		AppName:         v.GetString("app_name"),
		MetricsTextfile: v.GetString("metrics_textfile"),
		RollbarToken:    v.GetString("rollbar_token"),
		UseCaseLog:      v.GetString("use_case_log"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("db_driver must be sqlite or postgres, got %q", c.DBDriver)
	}
	switch c.Notify {
	case "none", "console", "sendgrid":
	default:
		return fmt.Errorf("notify must be none, console or sendgrid, got %q", c.Notify)
	}
	if c.Notify == "sendgrid" && c.SendGridAPIKey == "" {
		return fmt.Errorf("notify=sendgrid requires sendgrid_api_key")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// NewLogger builds the slog logger described by LogLevel and LogFormat.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(c.LogLevel)
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q", s)
	}
	return level, nil
}

func defaultDSN() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "taskforge.db"
	}
	return filepath.Join(home, ".taskforge", "taskforge.db")
}
