package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type AuthConfig struct {
	AccessSecret string
}

type ReportConfig struct {
	MinStartDate        time.Time
	PageSize            int
	TopLocations        int
	ClusterRadiusMeters float64
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
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
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Report: ReportConfig{
			PageSize:            v.GetInt("REPORT_PAGE_SIZE"),
			TopLocations:        v.GetInt("REPORT_TOP_LOCATIONS"),
			ClusterRadiusMeters: v.GetFloat64("REPORT_CLUSTER_RADIUS_METERS"),
		},
	}

	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8008
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Report.PageSize <= 0 {
		cfg.Report.PageSize = 5
	}
	if cfg.Report.TopLocations <= 0 {
		cfg.Report.TopLocations = 5
	}
	if cfg.Report.ClusterRadiusMeters <= 0 {
		cfg.Report.ClusterRadiusMeters = 100
	}

	minStart := v.GetString("REPORT_MIN_START_DATE")
	if minStart == "" {
		minStart = "2024-01-01"
	}
	parsed, err := time.ParseInLocation("2006-01-02", minStart, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("REPORT_MIN_START_DATE must be YYYY-MM-DD: %w", err)
	}
	cfg.Report.MinStartDate = parsed

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	return nil
}
