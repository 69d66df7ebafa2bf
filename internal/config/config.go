// Package config loads folio's settings from defaults, a YAML file and the
// environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides. A double underscore separates
// nested keys: FOLIO_SERVER__ADDR sets server.addr.
const EnvPrefix = "FOLIO_"

// legacyEnv maps the plain variables of earlier deployments to config keys.
var legacyEnv = map[string]string{
	"SMTP_HOST":      "smtp.host",
	"SMTP_PORT":      "smtp.port",
	"SMTP_USER":      "smtp.username",
	"SMTP_PASS":      "smtp.password",
	"TO_EMAIL":       "smtp.to",
	"ADMIN_USERNAME": "admin.username",
	"ADMIN_PASSWORD": "admin.password",
}

// Load reads configuration from the given YAML file, then overlays the
// legacy variables and FOLIO_* overrides, in that order. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.ProviderWithValue("", ".", legacyKey), nil); err != nil {
		return nil, fmt.Errorf("loading legacy env: %w", err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

// legacyKey maps a legacy variable to its key; other variables are skipped.
func legacyKey(name, value string) (string, any) {
	if name == "PORT" {
		return "server.addr", ":" + value
	}
	return legacyEnv[name], value
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive")
	}
	if c.Site.BlogPageSize < 1 {
		return fmt.Errorf("site.blog_page_size must be at least 1")
	}
	if c.Site.PortfolioBatch < 1 {
		return fmt.Errorf("site.portfolio_batch must be at least 1")
	}
	if c.Site.ComponentsURL != "" && c.Site.FetchTimeout <= 0 {
		return fmt.Errorf("site.fetch_timeout must be positive when components_url is set")
	}

	switch c.Contact.Delivery {
	case DeliverySimulated:
	case DeliverySMTP:
		if c.SMTP.Host == "" || c.SMTP.Port == "" {
			return fmt.Errorf("smtp.host and smtp.port are required for smtp delivery")
		}
	default:
		return fmt.Errorf("invalid contact.delivery %q: must be one of simulated, smtp", c.Contact.Delivery)
	}
	if c.Contact.DismissAfter <= 0 {
		return fmt.Errorf("contact.dismiss_after must be positive")
	}
	if c.Contact.SimulatedDelay < 0 {
		return fmt.Errorf("contact.simulated_delay must be non-negative")
	}
	if c.Contact.SessionIdle <= 0 {
		return fmt.Errorf("contact.session_idle must be positive")
	}
	if c.Contact.MaxSessions < 1 {
		return fmt.Errorf("contact.max_sessions must be at least 1")
	}

	if c.Admin.Password != "" && c.Admin.Username == "" {
		return fmt.Errorf("admin.username is required when admin.password is set")
	}

	if c.Analytics.Enabled {
		if c.Analytics.Retention <= 0 {
			return fmt.Errorf("analytics.retention must be positive")
		}
		if c.Analytics.CleanupInterval <= 0 {
			return fmt.Errorf("analytics.cleanup_interval must be positive")
		}
	}
	return nil
}
