package config

import "time"

// DefaultPath is the config file read when none is given.
const DefaultPath = "folio.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Site: SiteConfig{
			BlogPageSize:   5,
			PortfolioBatch: 6,
			FetchTimeout:   5 * time.Second,
		},
		Contact: ContactConfig{
			Delivery:       DeliverySimulated,
			DismissAfter:   5 * time.Second,
			SimulatedDelay: 1500 * time.Millisecond,
			SessionIdle:    30 * time.Minute,
			MaxSessions:    10000,
			Archive:        true,
		},
		SMTP: SMTPConfig{
			Host: "smtp.gmail.com",
			Port: "587",
		},
		Admin: AdminConfig{
			Username: "admin",
		},
		Analytics: AnalyticsConfig{
			Enabled:         true,
			DBPath:          "data/folio.db",
			Retention:       365 * 24 * time.Hour,
			CleanupInterval: 24 * time.Hour,
		},
		Export: ExportConfig{
			OutDir: "dist",
		},
	}
}
