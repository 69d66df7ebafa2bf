package config

import "time"

// Delivery selects how contact messages are sent.
type Delivery string

const (
	DeliverySimulated Delivery = "simulated"
	DeliverySMTP      Delivery = "smtp"
)

// Config is the top-level configuration, corresponding to folio.yml.
type Config struct {
	Server    ServerConfig    `yaml:"server" koanf:"server"`
	Site      SiteConfig      `yaml:"site" koanf:"site"`
	Contact   ContactConfig   `yaml:"contact" koanf:"contact"`
	SMTP      SMTPConfig      `yaml:"smtp" koanf:"smtp"`
	Admin     AdminConfig     `yaml:"admin" koanf:"admin"`
	Analytics AnalyticsConfig `yaml:"analytics" koanf:"analytics"`
	Export    ExportConfig    `yaml:"export" koanf:"export"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr" koanf:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" koanf:"shutdown_timeout"`
}

// SiteConfig holds listing sizes and where shared components come from.
type SiteConfig struct {
	BlogPageSize   int `yaml:"blog_page_size" koanf:"blog_page_size"`
	PortfolioBatch int `yaml:"portfolio_batch" koanf:"portfolio_batch"`
	// ComponentsURL, when set, is the base URL components are fetched from
	// instead of the embedded copies.
	ComponentsURL string        `yaml:"components_url" koanf:"components_url"`
	FetchTimeout  time.Duration `yaml:"fetch_timeout" koanf:"fetch_timeout"`
}

// ContactConfig holds contact form behaviour.
type ContactConfig struct {
	Delivery       Delivery      `yaml:"delivery" koanf:"delivery"`
	DismissAfter   time.Duration `yaml:"dismiss_after" koanf:"dismiss_after"`
	SimulatedDelay time.Duration `yaml:"simulated_delay" koanf:"simulated_delay"`
	SessionIdle    time.Duration `yaml:"session_idle" koanf:"session_idle"`
	// MaxSessions caps how many visitors' forms are kept at once.
	MaxSessions int  `yaml:"max_sessions" koanf:"max_sessions"`
	Archive     bool `yaml:"archive" koanf:"archive"`
}

// SMTPConfig holds the outgoing mail server.
type SMTPConfig struct {
	Host     string `yaml:"host" koanf:"host"`
	Port     string `yaml:"port" koanf:"port"`
	Username string `yaml:"username" koanf:"username"`
	Password string `yaml:"password" koanf:"password"`
	To       string `yaml:"to" koanf:"to"`
}

// AdminConfig holds the admin dashboard credentials. An empty password
// disables the admin routes.
type AdminConfig struct {
	Username string `yaml:"username" koanf:"username"`
	Password string `yaml:"password" koanf:"password"`
}

// AnalyticsConfig holds visitor tracking settings.
type AnalyticsConfig struct {
	Enabled bool `yaml:"enabled" koanf:"enabled"`
	// DBPath is the SQLite file; empty keeps the data in memory.
	DBPath          string        `yaml:"db_path" koanf:"db_path"`
	Salt            string        `yaml:"salt" koanf:"salt"`
	Retention       time.Duration `yaml:"retention" koanf:"retention"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" koanf:"cleanup_interval"`
}

// ExportConfig holds static export settings.
type ExportConfig struct {
	OutDir string `yaml:"out_dir" koanf:"out_dir"`
}
