package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"
)

// ErrNotConfigured is returned by SMTPSender when credentials are missing.
var ErrNotConfigured = errors.New("contact: SMTP credentials not configured")

// Sender delivers a validated submission.
type Sender interface {
	Send(ctx context.Context, s Submission) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, s Submission) error

func (f SenderFunc) Send(ctx context.Context, s Submission) error { return f(ctx, s) }

// DefaultSimulatedDelay is how long SimulatedSender pretends to work.
const DefaultSimulatedDelay = 1500 * time.Millisecond

// SimulatedSender waits a fixed delay and reports success. Cancelling the
// context ends the wait early with the context's error.
type SimulatedSender struct {
	Delay time.Duration
}

func (s SimulatedSender) Send(ctx context.Context, _ Submission) error {
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SMTPConfig holds the mail relay settings.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	To       string
}

// SMTPSender mails each submission to the site owner.
type SMTPSender struct {
	cfg      SMTPConfig
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender returns a sender using net/smtp.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg, sendMail: smtp.SendMail}
}

func (s *SMTPSender) Send(ctx context.Context, sub Submission) error {
	if s.cfg.Username == "" || s.cfg.Password == "" {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := s.cfg.Host + ":" + s.cfg.Port
	if err := s.sendMail(addr, auth, s.cfg.Username, []string{s.cfg.To}, composeMail(s.cfg, sub)); err != nil {
		return fmt.Errorf("sending mail via %s: %w", addr, err)
	}
	return nil
}

func composeMail(cfg SMTPConfig, sub Submission) []byte {
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Subject: %s
Message:
%s

---
Sent from your portfolio contact form
`, sub.Name, sub.Email, sub.Subject, sub.Message)

	var b strings.Builder
	b.WriteString("To: " + cfg.To + "\r\n")
	b.WriteString("Subject: " + headerSafe("Portfolio Contact: "+sub.Subject) + "\r\n")
	b.WriteString("From: " + cfg.Username + "\r\n")
	b.WriteString("Reply-To: " + headerSafe(sub.Email) + "\r\n")
	b.WriteString("\r\n")
	b.WriteString(body + "\r\n")
	return []byte(b.String())
}

// headerSafe strips line breaks so user input cannot inject headers.
func headerSafe(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}

// Archiver stores a copy of each submission.
type Archiver interface {
	SaveMessage(ctx context.Context, s Submission) error
}

// Archive stores every submission before handing it to next. Storage
// failures are logged and do not block delivery.
func Archive(store Archiver, next Sender, logger *slog.Logger) Sender {
	if logger == nil {
		logger = slog.Default()
	}
	return SenderFunc(func(ctx context.Context, s Submission) error {
		if err := store.SaveMessage(ctx, s); err != nil {
			logger.Error("archiving contact message failed", "error", err)
		}
		return next.Send(ctx, s)
	})
}
