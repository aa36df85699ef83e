package config

// DefaultConfig returns a Config with sensible defaults. Credentials are
// intentionally left empty; serve refuses webhook traffic until the gateway
// section is filled in.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
		},
		Gateway: GatewayConfig{
			BaseURL: "https://graph.facebook.com/v21.0",
		},
		Mail: MailConfig{
			Endpoint:    "https://smtp.maileroo.com/send",
			FromName:    "Exhibition Tech",
			ReplyToName: "Support",
		},
		Database: "passbot.db",
	}
}
