package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Zachkp/folio/internal/analytics"
	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/contact"
	"github.com/Zachkp/folio/internal/server"
	"github.com/Zachkp/folio/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}
		logger := newLogger()

		st, r, err := buildSite(cfg, logger)
		if err != nil {
			return err
		}

		var store *analytics.Store
		if cfg.Analytics.Enabled {
			store, err = openAnalytics(cfg.Analytics, logger)
			if err != nil {
				return err
			}
			defer store.Close()
		}

		sender := newSender(cfg, logger)
		if store != nil && cfg.Contact.Archive {
			sender = contact.Archive(store, sender, logger)
		}
		sessions := server.NewSessions(func(v contact.View) *contact.Form {
			return contact.NewForm(sender, v,
				contact.WithLogger(logger),
				contact.WithDismissAfter(cfg.Contact.DismissAfter),
			)
		}, cfg.Contact.SessionIdle, server.WithMaxSessions(cfg.Contact.MaxSessions))

		opts := []server.Option{server.WithLogger(logger), server.WithAdmin(cfg.Admin)}
		if store != nil {
			opts = append(opts, server.WithAnalytics(store, cfg.Analytics))
		}
		if cfg.Admin.Password == "" {
			logger.Warn("admin dashboard disabled: set ADMIN_PASSWORD or admin.password to enable it")
		}

		srv, err := server.New(cfg.Server, st, r, sessions, server.Assets{
			Static:     web.Static(),
			Components: web.Components(),
			Templates:  web.Templates(),
		}, opts...)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx)
	},
}

func openAnalytics(cfg config.AnalyticsConfig, logger *slog.Logger) (*analytics.Store, error) {
	opts := []analytics.Option{analytics.WithSalt(cfg.Salt), analytics.WithLogger(logger)}
	if cfg.DBPath == "" {
		return analytics.OpenMemory(opts...)
	}
	store, err := analytics.Open(cfg.DBPath, opts...)
	if err != nil {
		return nil, fmt.Errorf("opening analytics database: %w", err)
	}
	return store, nil
}

func newSender(cfg *config.Config, logger *slog.Logger) contact.Sender {
	if cfg.Contact.Delivery == config.DeliverySMTP {
		if cfg.SMTP.Username == "" || cfg.SMTP.Password == "" {
			logger.Warn("SMTP credentials not configured; contact messages will fail to send")
		}
		return contact.NewSMTPSender(contact.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			To:       cfg.SMTP.To,
		})
	}
	return contact.SimulatedSender{Delay: cfg.Contact.SimulatedDelay}
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}
