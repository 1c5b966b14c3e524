package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// CoinPackage is a purchasable coin bundle offered through both payment
// providers.
type CoinPackage struct {
	ID       string `yaml:"id"`
	Coins    int64  `yaml:"coins"`
	Amount   int64  `yaml:"amount"` // charge amount in the provider's smallest currency unit
	Currency string `yaml:"currency"`
}

// Config holds the application configuration
type Config struct {
	Database struct {
		Host     string `yaml:"host"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		DBName   string `yaml:"dbname"`
		Port     string `yaml:"port"`
		SSLMode  string `yaml:"sslmode"`
	} `yaml:"database"`
	Auth struct {
		Secret         string `yaml:"secret"`          // signs our session JWTs
		UpstreamSecret string `yaml:"upstream_secret"` // verifies identity-provider JWTs
		ExpHour        int    `yaml:"exp_hour"`
	} `yaml:"auth"`
	Gemini struct {
		APIKey         string `yaml:"api_key"`
		TextModel      string `yaml:"text_model"`
		ImageModel     string `yaml:"image_model"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		MaxRetries     int    `yaml:"max_retries"`
	} `yaml:"gemini"`
	Stripe struct {
		SecretKey     string `yaml:"secret_key"`
		WebhookSecret string `yaml:"webhook_secret"`
		SuccessURL    string `yaml:"success_url"`
		CancelURL     string `yaml:"cancel_url"`
	} `yaml:"stripe"`
	Toss struct {
		SecretKey string `yaml:"secret_key"`
	} `yaml:"toss"`
	Packages []CoinPackage `yaml:"packages"`
	Server   struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
}

// GlobalConfig is the global configuration instance
var GlobalConfig Config

// DSN generates the PostgreSQL DSN from database config
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Database.Host,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.Port,
		c.Database.SSLMode,
	)
}

// Package looks up a coin package by id.
func (c *Config) Package(id string) (CoinPackage, bool) {
	for _, p := range c.Packages {
		if p.ID == id {
			return p, true
		}
	}
	return CoinPackage{}, false
}

// LoadConfig reads and parses the YAML configuration file into GlobalConfig
func LoadConfig(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, &GlobalConfig); err != nil {
		return err
	}

	// Validate required fields
	if GlobalConfig.Database.Host == "" {
		log.Fatal("database.host is required in config.yaml")
	}
	if GlobalConfig.Database.User == "" {
		log.Fatal("database.user is required in config.yaml")
	}
	if GlobalConfig.Database.Password == "" {
		log.Fatal("database.password is required in config.yaml")
	}
	if GlobalConfig.Database.DBName == "" {
		log.Fatal("database.dbname is required in config.yaml")
	}
	if GlobalConfig.Database.Port == "" {
		log.Fatal("database.port is required in config.yaml")
	}
	if GlobalConfig.Database.SSLMode == "" {
		log.Fatal("database.sslmode is required in config.yaml")
	}
	if GlobalConfig.Auth.Secret == "" {
		log.Fatal("auth.secret is required in config.yaml")
	}
	if GlobalConfig.Auth.UpstreamSecret == "" {
		log.Fatal("auth.upstream_secret is required in config.yaml")
	}
	if GlobalConfig.Auth.ExpHour == 0 {
		GlobalConfig.Auth.ExpHour = 24
	}
	if GlobalConfig.Gemini.APIKey == "" {
		log.Fatal("gemini.api_key is required in config.yaml")
	}
	if GlobalConfig.Gemini.TextModel == "" {
		GlobalConfig.Gemini.TextModel = "gemini-2.0-flash"
	}
	if GlobalConfig.Gemini.ImageModel == "" {
		GlobalConfig.Gemini.ImageModel = "gemini-2.0-flash-preview-image-generation"
	}
	if GlobalConfig.Gemini.TimeoutSeconds == 0 {
		GlobalConfig.Gemini.TimeoutSeconds = 30
	}
	if GlobalConfig.Gemini.MaxRetries == 0 {
		GlobalConfig.Gemini.MaxRetries = 3
	}
	if GlobalConfig.Stripe.SecretKey == "" {
		log.Fatal("stripe.secret_key is required in config.yaml")
	}
	if GlobalConfig.Stripe.WebhookSecret == "" {
		log.Fatal("stripe.webhook_secret is required in config.yaml")
	}
	if GlobalConfig.Toss.SecretKey == "" {
		log.Fatal("toss.secret_key is required in config.yaml")
	}
	if len(GlobalConfig.Packages) == 0 {
		log.Fatal("at least one coin package is required in config.yaml")
	}
	if GlobalConfig.Server.Port == 0 {
		log.Fatal("server.port is required in config.yaml")
	}
	if GlobalConfig.Server.Port < 1 || GlobalConfig.Server.Port > 65535 {
		log.Fatal("server.port must be between 1 and 65535")
	}

	return nil
}
