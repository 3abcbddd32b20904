package stripe

import "strings"

// Config holds the Stripe API credentials used by the SDK.
// Keys must be provided explicitly; the SDK never reads them from the
// environment. Use cmd/service or cmd/cli if you want env-based wiring.
type Config struct {
	// SecretKey is the Stripe secret key (sk_test_... or sk_live_...)
	SecretKey string `yaml:"secret_key" json:"secret_key"`
	// PublishableKey is the Stripe publishable key (pk_test_... or pk_live_...)
	PublishableKey string `yaml:"publishable_key" json:"publishable_key"`
}

// Validate checks that both keys are present and carry the expected prefixes.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return NewStripeError("invalid_configuration", "secret key is required", nil)
	}
	if !strings.HasPrefix(c.SecretKey, "sk_") && !strings.HasPrefix(c.SecretKey, "rk_") {
		return NewStripeError("invalid_configuration", "secret key must start with sk_ or rk_", nil)
	}
	if c.PublishableKey == "" {
		return NewStripeError("invalid_configuration", "publishable key is required", nil)
	}
	if !strings.HasPrefix(c.PublishableKey, "pk_") {
		return NewStripeError("invalid_configuration", "publishable key must start with pk_", nil)
	}
	return nil
}
