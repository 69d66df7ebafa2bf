package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Zachkp/folio/internal/contact"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestStore(t *testing.T, c *clock) *Store {
	t.Helper()
	s, err := OpenMemory(WithSalt("test-salt"), WithClock(c.now))
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestHashIPIsStableAndOpaque(t *testing.T) {
	s := newTestStore(t, &clock{t: time.Now()})

	a, b := s.HashIP("203.0.113.7"), s.HashIP("203.0.113.7")
	if a != b {
		t.Errorf("hash not stable: %q vs %q", a, b)
	}
	if len(a) != 16 {
		t.Errorf("hash length = %d, want 16", len(a))
	}
	if a == "203.0.113.7" || a == s.HashIP("203.0.113.8") {
		t.Errorf("hash %q does not hide the address", a)
	}
}

func TestTrackAndStats(t *testing.T) {
	ctx := context.Background()
	c := &clock{t: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)}
	s := newTestStore(t, c)

	// Two weeks ago, then three views today from two clients.
	c.t = time.Date(2024, 2, 25, 9, 0, 0, 0, time.UTC)
	if err := s.Track(ctx, Visit{IP: "10.0.0.1", Path: "/blog"}); err != nil {
		t.Fatal(err)
	}
	c.t = time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	for _, v := range []Visit{
		{IP: "10.0.0.1", Path: "/"},
		{IP: "10.0.0.2", Path: "/"},
		{IP: "10.0.0.2", Path: "/blog"},
	} {
		if err := s.Track(ctx, v); err != nil {
			t.Fatal(err)
		}
	}
	c.t = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalVisitors != 4 {
		t.Errorf("TotalVisitors = %d, want 4", stats.TotalVisitors)
	}
	if stats.UniqueVisitors != 2 {
		t.Errorf("UniqueVisitors = %d, want 2", stats.UniqueVisitors)
	}
	if stats.VisitorsToday != 3 {
		t.Errorf("VisitorsToday = %d, want 3", stats.VisitorsToday)
	}
	if stats.VisitorsThisWeek != 3 {
		t.Errorf("VisitorsThisWeek = %d, want 3", stats.VisitorsThisWeek)
	}
	if len(stats.TopPaths) != 2 || stats.TopPaths[0].Path != "/" || stats.TopPaths[0].Views != 2 {
		// "/" and "/blog" both have two views; ties sort by path.
		t.Errorf("TopPaths = %+v", stats.TopPaths)
	}
	if len(stats.RecentVisitors) != 4 {
		t.Fatalf("RecentVisitors = %d, want 4", len(stats.RecentVisitors))
	}
	if got := stats.RecentVisitors[0]; got.Path != "/blog" || got.HashedIP != s.HashIP("10.0.0.2") {
		t.Errorf("most recent visitor = %+v", got)
	}
}

func TestCleanupRemovesOldVisitors(t *testing.T) {
	ctx := context.Background()
	c := &clock{t: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := newTestStore(t, c)

	if err := s.Track(ctx, Visit{IP: "10.0.0.1", Path: "/old"}); err != nil {
		t.Fatal(err)
	}
	c.t = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := s.Track(ctx, Visit{IP: "10.0.0.1", Path: "/new"}); err != nil {
		t.Fatal(err)
	}

	n, err := s.Cleanup(ctx, DefaultRetention)
	if err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if n != 1 {
		t.Errorf("removed %d, want 1", n)
	}
	left, err := s.Visitors(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(left) != 1 || left[0].Path != "/new" {
		t.Errorf("remaining visitors = %+v", left)
	}
}

func TestMessageArchive(t *testing.T) {
	ctx := context.Background()
	c := &clock{t: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	s := newTestStore(t, c)

	first := contact.Submission{Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "First"}
	if err := s.SaveMessage(ctx, first); err != nil {
		t.Fatal(err)
	}
	c.t = c.t.Add(time.Minute)
	second := contact.Submission{Name: "Bob", Email: "bob@example.com", Subject: "Hey", Message: "Second"}
	if err := s.SaveMessage(ctx, second); err != nil {
		t.Fatal(err)
	}

	msgs, err := s.Messages(ctx, 10)
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Body != "Second" || msgs[1].Name != "Ada" {
		t.Errorf("messages not newest first: %+v", msgs)
	}
	if msgs[0].ID == "" || msgs[0].ID == msgs[1].ID {
		t.Errorf("message ids not unique: %q %q", msgs[0].ID, msgs[1].ID)
	}

	if err := s.DeleteMessage(ctx, msgs[0].ID); err != nil {
		t.Fatalf("DeleteMessage: %v", err)
	}
	if err := s.DeleteMessage(ctx, msgs[0].ID); !errors.Is(err, ErrMessageNotFound) {
		t.Errorf("second delete = %v, want ErrMessageNotFound", err)
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalMessages != 1 {
		t.Errorf("TotalMessages = %d, want 1", stats.TotalMessages)
	}
}

func TestStoreArchivesThroughContactSender(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, &clock{t: time.Now()})

	delivered := false
	sender := contact.Archive(s, contact.SenderFunc(func(context.Context, contact.Submission) error {
		delivered = true
		return nil
	}), nil)
	if err := sender.Send(ctx, contact.Submission{Name: "A", Email: "a@b.co", Subject: "S", Message: "M"}); err != nil {
		t.Fatal(err)
	}
	msgs, err := s.Messages(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !delivered || len(msgs) != 1 {
		t.Errorf("delivered=%v archived=%d", delivered, len(msgs))
	}
}
