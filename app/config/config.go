package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log       Log       `yaml:"log"`
	Telegram  Telegram  `yaml:"telegram"`
	Predictor Predictor `yaml:"predictor"`
	Dialog    Dialog    `yaml:"dialog"`
}

type Telegram struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789" validate:"required"`
	// Externally reachable base URL; when set, updates arrive via webhook instead of long polling
	WebhookBaseURL string `yaml:"webhook_base_url" example:"https://bot.example.com"`
	// Listen address for the webhook server
	WebhookAddr string `yaml:"webhook_addr" example:":8080"`
}

type Predictor struct {
	// Prediction endpoint URL (TensorFlow Serving style)
	URL string `yaml:"url" example:"http://localhost:8501/v1/models/prices:predict" validate:"required"`
	// Model signature name
	SignatureName string `yaml:"signature_name" example:"serving_default"`
	// Interval rounding policy
	Rounding string `yaml:"rounding" example:"fractional" validate:"oneof=fractional floor"`
	// Additional attempts after the first failed one, 0 disables retries
	MaxRetries *int `yaml:"max_retries" example:"3" validate:"omitempty,min=0"`
	// Per-attempt timeout in seconds
	TimeoutSeconds int `yaml:"timeout_seconds" example:"10"`
	// Initial backoff between attempts in milliseconds
	BackoffMillis int `yaml:"backoff_millis" example:"500"`
}

type Dialog struct {
	// Minutes before an abandoned date selection is swept back to idle, 0 disables the sweep
	IdleTTLMinutes *int `yaml:"idle_ttl_minutes" example:"30" validate:"omitempty,min=0"`
}

type Log struct {
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

func Load() (*Config, error) {
	var result Config

	data, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	if err = yaml.Unmarshal(data, &result); err != nil {
		return nil, oops.Errorf("failed to parse YAML config: %w", err)
	}

	if result.Telegram.WebhookAddr == "" {
		result.Telegram.WebhookAddr = ":8080"
	}
	if result.Predictor.SignatureName == "" {
		result.Predictor.SignatureName = "serving_default"
	}
	if result.Predictor.Rounding == "" {
		result.Predictor.Rounding = "fractional"
	}
	// pointer fields keep an explicit 0 distinct from an absent key
	if result.Predictor.MaxRetries == nil {
		result.Predictor.MaxRetries = lo.ToPtr(3)
	}
	if result.Predictor.TimeoutSeconds == 0 {
		result.Predictor.TimeoutSeconds = 10
	}
	if result.Predictor.BackoffMillis == 0 {
		result.Predictor.BackoffMillis = 500
	}
	if result.Dialog.IdleTTLMinutes == nil {
		result.Dialog.IdleTTLMinutes = lo.ToPtr(30)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}
