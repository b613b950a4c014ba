package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	OpenAI  OpenAIConfig
	SMTP    SMTPConfig
	Twilio  TwilioConfig
}

type ServerConfig struct {
	Port           string
	BaseURL        string
	FrontendOrigin string
	SessionSecret  string
	ClinicName     string
	Environment    string
}

type StorageConfig struct {
	Driver     string // "file", "memory" or "sqlite"
	DataDir    string
	SQLitePath string
}

type OpenAIConfig struct {
	APIKey         string
	Model          string
	MaxTokens      int
	Temperature    float64
	TimeoutSeconds int
}

type SMTPConfig struct {
	Host           string
	Port           int
	User           string
	Pass           string
	From           string
	TimeoutSeconds int
}

type TwilioConfig struct {
	AccountSID   string
	AuthToken    string
	WhatsAppFrom string
	StaffTo      string
}

// Load reads configuration from the environment, after loading a local
// .env file if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	// Set default values
	v.SetDefault("PORT", "3000")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("CLINIC_NAME", "our clinic")
	v.SetDefault("STORE_DRIVER", "file")
	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("SQLITE_PATH", "data/clinic.db")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("OPENAI_MAX_TOKENS", 400)
	v.SetDefault("OPENAI_TEMPERATURE", 0.7)
	v.SetDefault("AI_TIMEOUT_SECONDS", 30)
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("EMAIL_TIMEOUT_SECONDS", 10)

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			BaseURL:        v.GetString("BASE_URL"),
			FrontendOrigin: v.GetString("FRONTEND_ORIGIN"),
			SessionSecret:  v.GetString("SESSION_SECRET"),
			ClinicName:     v.GetString("CLINIC_NAME"),
			Environment:    v.GetString("ENVIRONMENT"),
		},
		Storage: StorageConfig{
			Driver:     v.GetString("STORE_DRIVER"),
			DataDir:    v.GetString("DATA_DIR"),
			SQLitePath: v.GetString("SQLITE_PATH"),
		},
		OpenAI: OpenAIConfig{
			APIKey:         v.GetString("OPENAI_API_KEY"),
			Model:          v.GetString("OPENAI_MODEL"),
			MaxTokens:      v.GetInt("OPENAI_MAX_TOKENS"),
			Temperature:    v.GetFloat64("OPENAI_TEMPERATURE"),
			TimeoutSeconds: v.GetInt("AI_TIMEOUT_SECONDS"),
		},
		SMTP: SMTPConfig{
			Host:           v.GetString("SMTP_HOST"),
			Port:           v.GetInt("SMTP_PORT"),
			User:           v.GetString("SMTP_USER"),
			Pass:           v.GetString("SMTP_PASS"),
			From:           v.GetString("EMAIL_FROM"),
			TimeoutSeconds: v.GetInt("EMAIL_TIMEOUT_SECONDS"),
		},
		Twilio: TwilioConfig{
			AccountSID:   v.GetString("TWILIO_ACCOUNT_SID"),
			AuthToken:    v.GetString("TWILIO_AUTH_TOKEN"),
			WhatsAppFrom: v.GetString("TWILIO_WHATSAPP_FROM"),
			StaffTo:      v.GetString("STAFF_WHATSAPP_TO"),
		},
	}

	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost:" + cfg.Server.Port
	}
	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.User
	}

	return cfg, nil
}

// IsProduction reports whether the server runs with production cookie
// settings (secure, cross-site).
func (c ServerConfig) IsProduction() bool {
	return c.Environment == "production"
}
