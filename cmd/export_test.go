package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/contact"
)

func TestExportSite(t *testing.T) {
	cfg := config.DefaultConfig()
	st, _, err := buildSite(cfg, newLogger())
	if err != nil {
		t.Fatalf("buildSite: %v", err)
	}

	out := t.TempDir()
	if err := exportSite(context.Background(), st, out); err != nil {
		t.Fatalf("exportSite: %v", err)
	}

	for _, file := range []string{
		"index.html", "about.html", "blog.html", "portfolio.html", "contact.html",
		"blog/post/1.html", "blog/post/6.html",
		"static/site.js", "static/site.css", "components/navbar.html",
	} {
		if _, err := os.Stat(filepath.Join(out, file)); err != nil {
			t.Errorf("missing %s: %v", file, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(out, "blog.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `id="post-1"`) || !strings.Contains(string(data), "nav-menu") {
		t.Error("exported blog page is missing posts or navbar")
	}
}

func TestNewSenderSelectsDelivery(t *testing.T) {
	cfg := config.DefaultConfig()
	if _, ok := newSender(cfg, newLogger()).(contact.SimulatedSender); !ok {
		t.Error("default delivery should be simulated")
	}

	cfg.Contact.Delivery = config.DeliverySMTP
	if _, ok := newSender(cfg, newLogger()).(*contact.SMTPSender); !ok {
		t.Error("smtp delivery should use the SMTP sender")
	}
}
