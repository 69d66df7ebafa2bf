package contact

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrBusy is returned when a submission arrives while another is in flight.
var ErrBusy = errors.New("contact: submission already in progress")

// State is the position of the form in its submit cycle.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Outcome says how a submission ended.
type Outcome int

const (
	OutcomeSent Outcome = iota
	OutcomeInvalid
	OutcomeUndelivered
)

// MessageKind styles the message shown after a submission.
type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

// Default copy and timings.
const (
	DefaultBusyLabel    = "Sending..."
	DefaultDismissAfter = 5 * time.Second

	TextSent         = "Message sent! I'll get back to you as soon as I can."
	TextMissing      = "Please fill in all required fields."
	TextInvalidEmail = "Please enter a valid email address."
	TextUndelivered  = "Your message could not be sent. Please try again later."
)

// View is the part of the page the form drives.
type View interface {
	DisableSubmit(busyLabel string)
	EnableSubmit()
	ShowMessage(kind MessageKind, text string)
	HideMessage()
	ResetFields()
}

// Result describes a finished submission.
type Result struct {
	Outcome Outcome
	Kind    MessageKind
	Text    string
	Err     error
}

// Stopper cancels a scheduled callback.
type Stopper interface {
	Stop() bool
}

// Option configures a Form.
type Option func(*Form)

// WithLogger sets the logger for delivery failures.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithDismissAfter sets how long the result message stays up.
func WithDismissAfter(d time.Duration) Option {
	return func(f *Form) {
		if d > 0 {
			f.dismissAfter = d
		}
	}
}

// WithBusyLabel sets the submit label shown while sending.
func WithBusyLabel(label string) Option {
	return func(f *Form) {
		if label != "" {
			f.busyLabel = label
		}
	}
}

// WithAfterFunc replaces time.AfterFunc for scheduling the dismissal.
func WithAfterFunc(after func(time.Duration, func()) Stopper) Option {
	return func(f *Form) {
		if after != nil {
			f.afterFunc = after
		}
	}
}

// WithValidator shares a validator between forms.
func WithValidator(v *validator.Validate) Option {
	return func(f *Form) {
		if v != nil {
			f.validate = v
		}
	}
}

// Form runs the submit cycle Idle -> Submitting -> Succeeded|Failed -> Idle.
// Invalid input goes straight to Failed without contacting the sender.
type Form struct {
	sender       Sender
	view         View
	validate     *validator.Validate
	logger       *slog.Logger
	busyLabel    string
	dismissAfter time.Duration
	afterFunc    func(time.Duration, func()) Stopper

	mu      sync.Mutex
	state   State
	dismiss Stopper
}

// NewForm returns an idle form that sends through sender and drives view.
func NewForm(sender Sender, view View, opts ...Option) *Form {
	f := &Form{
		sender:       sender,
		view:         view,
		logger:       slog.Default(),
		busyLabel:    DefaultBusyLabel,
		dismissAfter: DefaultDismissAfter,
		afterFunc: func(d time.Duration, fn func()) Stopper {
			return time.AfterFunc(d, fn)
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.validate == nil {
		f.validate = NewValidator()
	}
	return f
}

// State returns the current state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// DismissAfter is how long result messages stay visible.
func (f *Form) DismissAfter() time.Duration {
	return f.dismissAfter
}

// Submit validates s and, if valid, sends it. The submit control stays
// disabled for the whole send and is re-enabled exactly once afterwards.
// Submitting while a send is in flight returns ErrBusy.
func (f *Form) Submit(ctx context.Context, s Submission) (Result, error) {
	f.mu.Lock()
	if f.state == StateSubmitting {
		f.mu.Unlock()
		return Result{}, ErrBusy
	}
	f.stopDismissLocked()

	if err := Validate(f.validate, s); err != nil {
		res := Result{Outcome: OutcomeInvalid, Kind: MessageError, Text: validationText(err), Err: err}
		f.finishLocked(StateFailed, res)
		f.mu.Unlock()
		return res, nil
	}

	f.state = StateSubmitting
	f.view.DisableSubmit(f.busyLabel)
	f.mu.Unlock()

	err := f.sender.Send(ctx, s)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.view.EnableSubmit()

	if err != nil {
		f.logger.Error("sending contact message failed", "error", err)
		res := Result{Outcome: OutcomeUndelivered, Kind: MessageError, Text: TextUndelivered, Err: err}
		f.finishLocked(StateFailed, res)
		return res, nil
	}

	f.view.ResetFields()
	res := Result{Outcome: OutcomeSent, Kind: MessageSuccess, Text: TextSent}
	f.finishLocked(StateSucceeded, res)
	return res, nil
}

func (f *Form) finishLocked(state State, res Result) {
	f.state = state
	f.view.ShowMessage(res.Kind, res.Text)

	var timer Stopper
	timer = f.afterFunc(f.dismissAfter, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.dismiss != timer {
			return
		}
		f.dismiss = nil
		f.view.HideMessage()
		f.state = StateIdle
	})
	f.dismiss = timer
}

func (f *Form) stopDismissLocked() {
	if f.dismiss != nil {
		f.dismiss.Stop()
		f.dismiss = nil
	}
}

// Close cancels a pending dismissal.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopDismissLocked()
}

func validationText(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) && len(verr.Missing) == 0 && verr.InvalidEmail {
		return TextInvalidEmail
	}
	return TextMissing
}
