package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type StoreConfig struct {
	Driver          string // "postgres" or "memory"
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
	SeedDemoData    bool
}

type AuthConfig struct {
	AccessSecret string
}

type AgentConfig struct {
	Enabled     bool
	APIKey      string
	BaseURL     string
	Model       string
	MaxToolLoop int
}

type OCRConfig struct {
	Endpoint string
}

type ReportConfig struct {
	FontPath string
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	Store       StoreConfig
	Auth        AuthConfig
	Agent       AgentConfig
	OCR         OCRConfig
	Report      ReportConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		Store: StoreConfig{
			Driver:          strings.ToLower(v.GetString("STORE_DRIVER")),
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
			SeedDemoData:    v.GetBool("SEED_DEMO_DATA"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Agent: AgentConfig{
			Enabled:     v.GetBool("AGENT_ENABLED"),
			APIKey:      v.GetString("OPENAI_API_KEY"),
			BaseURL:     v.GetString("OPENAI_BASE_URL"),
			Model:       v.GetString("OPENAI_MODEL"),
			MaxToolLoop: v.GetInt("AGENT_MAX_TOOL_LOOP"),
		},
		OCR: OCRConfig{
			Endpoint: v.GetString("OCR_ENDPOINT"),
		},
		Report: ReportConfig{
			FontPath: v.GetString("REPORT_FONT_PATH"),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = "postgres"
	}
	if !v.IsSet("AGENT_ENABLED") {
		cfg.Agent.Enabled = true
	}
	if cfg.Agent.Model == "" {
		cfg.Agent.Model = "gpt-4o-mini"
	}
	if cfg.Agent.MaxToolLoop == 0 {
		cfg.Agent.MaxToolLoop = 4
	}
	if cfg.OCR.Endpoint == "" {
		cfg.OCR.Endpoint = "http://localhost:8001"
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.Store.Driver {
	case "postgres":
		if cfg.Store.DSN == "" {
			return fmt.Errorf("DB_DSN is required when STORE_DRIVER=postgres")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.Agent.Enabled && cfg.Agent.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required when AGENT_ENABLED=true")
	}
	return nil
}
