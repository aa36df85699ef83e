package config

import (
	"fmt"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .passbot.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to passbot! Let's configure your deployment.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Gateway credentials.
	baseURLPrompt := promptui.Prompt{
		Label:   "WhatsApp API base URL",
		Default: cfg.Gateway.BaseURL,
	}
	baseURL, err := baseURLPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("gateway base URL: %w", err)
	}
	cfg.Gateway.BaseURL = baseURL

	apiKeyPrompt := promptui.Prompt{
		Label: "WhatsApp API key",
		Mask:  '*',
	}
	apiKey, err := apiKeyPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("gateway API key: %w", err)
	}
	cfg.Gateway.APIKey = apiKey

	phoneIDPrompt := promptui.Prompt{
		Label: "WhatsApp phone number ID",
	}
	phoneID, err := phoneIDPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("phone number ID: %w", err)
	}
	cfg.Gateway.PhoneNumberID = phoneID

	verifyPrompt := promptui.Prompt{
		Label:   "Webhook verify token (blank to accept any subscribe request)",
		Default: "",
	}
	verifyToken, err := verifyPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}
	cfg.Gateway.VerifyToken = verifyToken

	// 2. Email delivery (optional).
	mailEnabledPrompt := promptui.Select{
		Label: "Send entry passes by email as well",
		Items: []string{"yes", "no"},
	}
	mailIdx, _, err := mailEnabledPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("mail selection: %w", err)
	}

	if mailIdx == 0 {
		mailKeyPrompt := promptui.Prompt{
			Label: "Mail provider API key",
			Mask:  '*',
		}
		mailKey, err := mailKeyPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("mail API key: %w", err)
		}
		cfg.Mail.APIKey = mailKey

		fromPrompt := promptui.Prompt{
			Label: "Sender email address",
		}
		from, err := fromPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("sender email: %w", err)
		}
		cfg.Mail.FromEmail = from

		fallbackPrompt := promptui.Prompt{
			Label:   "Fallback sender email (used when the primary send fails)",
			Default: "",
		}
		fallback, err := fallbackPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("fallback sender: %w", err)
		}
		cfg.Mail.FallbackFromEmail = fallback
	}

	// 3. Database path.
	dbPrompt := promptui.Prompt{
		Label:   "Visitor directory database path",
		Default: cfg.Database,
	}
	dbPath, err := dbPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("database path: %w", err)
	}
	cfg.Database = dbPath

	// Save to .passbot.yml.
	configPath := ".passbot.yml"
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	return cfg, nil
}
