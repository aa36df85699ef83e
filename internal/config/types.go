package config

// Config is the top-level passbot configuration, corresponding to .passbot.yml.
type Config struct {
	Server   ServerConfig  `yaml:"server" koanf:"server"`
	Gateway  GatewayConfig `yaml:"gateway" koanf:"gateway"`
	Mail     MailConfig    `yaml:"mail" koanf:"mail"`
	Database string        `yaml:"database" koanf:"database"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all" koanf:"allow_all"` // allow all CORS origins (dev mode)
}

// GatewayConfig holds WhatsApp Cloud API credentials. BaseURL, APIKey and
// PhoneNumberID are required before any webhook message can be processed.
type GatewayConfig struct {
	BaseURL       string `yaml:"base_url" koanf:"base_url"`
	APIKey        string `yaml:"api_key" koanf:"api_key"`
	PhoneNumberID string `yaml:"phone_number_id" koanf:"phone_number_id"`
	VerifyToken   string `yaml:"verify_token" koanf:"verify_token"`
}

// MailConfig holds transactional email provider settings. An empty APIKey
// disables email delivery entirely; the bot still replies over WhatsApp.
type MailConfig struct {
	Endpoint          string `yaml:"endpoint" koanf:"endpoint"`
	APIKey            string `yaml:"api_key" koanf:"api_key"`
	FromEmail         string `yaml:"from_email" koanf:"from_email"`
	FromName          string `yaml:"from_name" koanf:"from_name"`
	ReplyToEmail      string `yaml:"reply_to_email" koanf:"reply_to_email"`
	ReplyToName       string `yaml:"reply_to_name" koanf:"reply_to_name"`
	FallbackFromEmail string `yaml:"fallback_from_email" koanf:"fallback_from_email"`
	FallbackFromName  string `yaml:"fallback_from_name" koanf:"fallback_from_name"`
}

// GatewayConfigured reports whether the required gateway credentials are set.
func (c *Config) GatewayConfigured() bool {
	return c.Gateway.BaseURL != "" && c.Gateway.APIKey != "" && c.Gateway.PhoneNumberID != ""
}
