package contact

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingView struct {
	mu       sync.Mutex
	disabled bool
	label    string
	enables  int
	disables int
	resets   int
	hidden   int
	kind     MessageKind
	text     string
}

func (v *recordingView) DisableSubmit(label string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.disabled, v.label = true, label
	v.disables++
}

func (v *recordingView) EnableSubmit() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.disabled = false
	v.enables++
}

func (v *recordingView) ShowMessage(kind MessageKind, text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.kind, v.text = kind, text
}

func (v *recordingView) HideMessage() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.hidden++
	v.text = ""
}

func (v *recordingView) ResetFields() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resets++
}

func (v *recordingView) isDisabled() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.disabled
}

// manualTimers captures scheduled callbacks so tests decide when they fire.
type manualTimers struct {
	mu      sync.Mutex
	pending []*manualTimer
}

type manualTimer struct {
	d       time.Duration
	fn      func()
	stopped bool
}

func (m *manualTimer) Stop() bool {
	was := !m.stopped
	m.stopped = true
	return was
}

func (m *manualTimers) after(d time.Duration, fn func()) Stopper {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{d: d, fn: fn}
	m.pending = append(m.pending, t)
	return t
}

func (m *manualTimers) fireAll() {
	m.mu.Lock()
	pending := m.pending
	m.pending = nil
	m.mu.Unlock()
	for _, t := range pending {
		if !t.stopped {
			t.fn()
		}
	}
}

func validSubmission() Submission {
	return Submission{Name: "Ada", Email: "ada@example.com", Subject: "Hello", Message: "Nice site"}
}

func TestEmptyMessageIsRejectedWithoutSending(t *testing.T) {
	sent := 0
	sender := SenderFunc(func(context.Context, Submission) error {
		sent++
		return nil
	})
	view := &recordingView{}
	timers := &manualTimers{}
	f := NewForm(sender, view, WithAfterFunc(timers.after))

	sub := validSubmission()
	sub.Message = "   "
	start := time.Now()
	res, err := f.Submit(context.Background(), sub)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if time.Since(start) > 100*time.Millisecond {
		t.Error("validation failure must not wait for a send")
	}
	if res.Outcome != OutcomeInvalid || res.Text != TextMissing {
		t.Errorf("result = %+v", res)
	}
	if sent != 0 {
		t.Errorf("sender called %d times", sent)
	}
	if view.disables != 0 || view.enables != 0 {
		t.Error("submit control must not change on validation failure")
	}
	if f.State() != StateFailed {
		t.Errorf("state = %v, want failed", f.State())
	}

	var verr *ValidationError
	if !errors.As(res.Err, &verr) || len(verr.Missing) != 1 || verr.Missing[0] != "message" {
		t.Errorf("validation error = %v", res.Err)
	}

	timers.fireAll()
	if f.State() != StateIdle || view.hidden != 1 {
		t.Errorf("after dismissal: state %v, hidden %d", f.State(), view.hidden)
	}
}

func TestInvalidEmail(t *testing.T) {
	view := &recordingView{}
	timers := &manualTimers{}
	f := NewForm(SimulatedSender{}, view, WithAfterFunc(timers.after))

	for _, email := range []string{"ada", "ada@example", "ada @example.com", "@example.com"} {
		sub := validSubmission()
		sub.Email = email
		res, err := f.Submit(context.Background(), sub)
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if res.Outcome != OutcomeInvalid || res.Text != TextInvalidEmail {
			t.Errorf("%q: result = %+v", email, res)
		}
	}
}

func TestSubmitDisablesControlForWholeSend(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	view := &recordingView{}
	sender := SenderFunc(func(context.Context, Submission) error {
		close(entered)
		<-release
		return nil
	})
	timers := &manualTimers{}
	f := NewForm(sender, view, WithAfterFunc(timers.after), WithBusyLabel("Wait"))

	done := make(chan Result)
	go func() {
		res, _ := f.Submit(context.Background(), validSubmission())
		done <- res
	}()

	<-entered
	if !view.isDisabled() || view.label != "Wait" {
		t.Error("submit control should be disabled with the busy label")
	}
	if f.State() != StateSubmitting {
		t.Errorf("state = %v, want submitting", f.State())
	}
	if _, err := f.Submit(context.Background(), validSubmission()); !errors.Is(err, ErrBusy) {
		t.Errorf("second submit err = %v, want ErrBusy", err)
	}

	close(release)
	res := <-done

	if res.Outcome != OutcomeSent || res.Kind != MessageSuccess {
		t.Errorf("result = %+v", res)
	}
	if view.enables != 1 || view.disables != 1 {
		t.Errorf("enables %d disables %d, want 1 each", view.enables, view.disables)
	}
	if view.resets != 1 {
		t.Error("fields should be cleared on success")
	}
	if f.State() != StateSucceeded {
		t.Errorf("state = %v", f.State())
	}
	timers.fireAll()
	if f.State() != StateIdle {
		t.Errorf("state after dismissal = %v", f.State())
	}
}

func TestDeliveryFailureIsDistinct(t *testing.T) {
	view := &recordingView{}
	timers := &manualTimers{}
	f := NewForm(SenderFunc(func(context.Context, Submission) error {
		return errors.New("connection refused")
	}), view, WithAfterFunc(timers.after))

	res, err := f.Submit(context.Background(), validSubmission())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Outcome != OutcomeUndelivered || res.Text != TextUndelivered {
		t.Errorf("result = %+v", res)
	}
	if res.Text == TextMissing || res.Text == TextInvalidEmail {
		t.Error("delivery failure must not reuse validation copy")
	}
	if view.enables != 1 {
		t.Errorf("control re-enabled %d times, want 1", view.enables)
	}
	if view.resets != 0 {
		t.Error("fields must be kept when delivery fails")
	}
	if f.State() != StateFailed {
		t.Errorf("state = %v", f.State())
	}
	timers.fireAll()
}

func TestResubmitCancelsPendingDismissal(t *testing.T) {
	view := &recordingView{}
	timers := &manualTimers{}
	f := NewForm(SimulatedSender{}, view, WithAfterFunc(timers.after))

	bad := validSubmission()
	bad.Name = ""
	f.Submit(context.Background(), bad)
	f.Submit(context.Background(), validSubmission())

	timers.fireAll()
	if view.hidden != 1 {
		t.Errorf("hidden %d times, want 1 (stale dismissal must not fire)", view.hidden)
	}
	if f.State() != StateIdle {
		t.Errorf("state = %v", f.State())
	}
}

func TestRealTimerDismisses(t *testing.T) {
	view := &recordingView{}
	f := NewForm(SimulatedSender{Delay: time.Millisecond}, view, WithDismissAfter(10*time.Millisecond))
	defer f.Close()

	if _, err := f.Submit(context.Background(), validSubmission()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	deadline := time.Now().Add(time.Second)
	for f.State() != StateIdle {
		if time.Now().After(deadline) {
			t.Fatal("form never returned to idle")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSimulatedSenderHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := (SimulatedSender{Delay: time.Hour}).Send(ctx, validSubmission()); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestSMTPSender(t *testing.T) {
	if err := NewSMTPSender(SMTPConfig{}).Send(context.Background(), validSubmission()); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}

	var gotAddr string
	var gotMsg []byte
	s := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Port: "587", Username: "me@example.com", Password: "pw", To: "owner@example.com"})
	s.sendMail = func(addr string, _ smtp.Auth, _ string, _ []string, msg []byte) error {
		gotAddr, gotMsg = addr, msg
		return nil
	}
	sub := validSubmission()
	sub.Subject = "Hi\r\nBcc: victim@example.com"
	if err := s.Send(context.Background(), sub); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotAddr != "smtp.example.com:587" {
		t.Errorf("addr = %q", gotAddr)
	}
	headers, _, _ := strings.Cut(string(gotMsg), "\r\n\r\n")
	if strings.Contains(headers, "\r\nBcc:") {
		t.Error("header injection through the subject")
	}
	if !strings.Contains(string(gotMsg), "Reply-To: ada@example.com") {
		t.Error("missing Reply-To")
	}
}

type memoryArchive struct {
	saved []Submission
	err   error
}

func (m *memoryArchive) SaveMessage(_ context.Context, s Submission) error {
	m.saved = append(m.saved, s)
	return m.err
}

func TestArchiveForwards(t *testing.T) {
	store := &memoryArchive{err: errors.New("disk full")}
	forwarded := 0
	s := Archive(store, SenderFunc(func(context.Context, Submission) error {
		forwarded++
		return nil
	}), nil)

	if err := s.Send(context.Background(), validSubmission()); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(store.saved) != 1 || forwarded != 1 {
		t.Errorf("saved %d forwarded %d", len(store.saved), forwarded)
	}
}
