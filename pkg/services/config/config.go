package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Scanner struct {
	BaseURL        string `mapstructure:"base_url"`
	APIKey         string `mapstructure:"api_key"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type Email struct {
	BaseURL       string `mapstructure:"base_url"`
	APIKey        string `mapstructure:"api_key"`
	SenderName    string `mapstructure:"sender_name"`
	SenderEmail   string `mapstructure:"sender_email"`
	ReportListID  int64  `mapstructure:"report_list_id"`
	ContactListID int64  `mapstructure:"contact_list_id"`
}

type Config struct {
	Server  Server  `mapstructure:"server"`
	Scanner Scanner `mapstructure:"scanner"`
	Email   Email   `mapstructure:"email"`
}

// Load reads settings from the environment, overlaid by an optional config
// file. API keys are deliberately not validated here: each client checks
// its own key at construction so a missing secret surfaces as a typed
// configuration error in the component that needs it.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("scanner.base_url", "")
	v.SetDefault("scanner.api_key", "")
	v.SetDefault("scanner.timeout_seconds", 45)
	v.SetDefault("email.base_url", "https://api.brevo.com")
	v.SetDefault("email.api_key", "")
	v.SetDefault("email.sender_name", "OuestWeb Audit")
	v.SetDefault("email.sender_email", "audit@ouestweb.fr")
	v.SetDefault("email.report_list_id", 0)
	v.SetDefault("email.contact_list_id", 0)

	bindings := map[string]string{
		"server.host":             "SERVER_HOST",
		"server.port":             "SERVER_PORT",
		"scanner.base_url":        "SCANNER_BASE_URL",
		"scanner.api_key":         "SCANNER_API_KEY",
		"scanner.timeout_seconds": "SCANNER_TIMEOUT_SECONDS",
		"email.base_url":          "EMAIL_BASE_URL",
		"email.api_key":           "EMAIL_API_KEY",
		"email.sender_name":       "EMAIL_SENDER_NAME",
		"email.sender_email":      "EMAIL_SENDER_EMAIL",
		"email.report_list_id":    "EMAIL_REPORT_LIST_ID",
		"email.contact_list_id":   "EMAIL_CONTACT_LIST_ID",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return &cfg, nil
}
