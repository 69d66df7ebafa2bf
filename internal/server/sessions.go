package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Zachkp/folio/internal/contact"
)

// formView records what a contact form did to its page so the handler can
// reflect it in the response.
type formView struct {
	mu        sync.Mutex
	busy      bool
	busyLabel string
	visible   bool
	kind      contact.MessageKind
	text      string
	reset     bool
}

func (v *formView) DisableSubmit(label string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.busy, v.busyLabel = true, label
}

func (v *formView) EnableSubmit() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.busy = false
}

func (v *formView) ShowMessage(kind contact.MessageKind, text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.visible, v.kind, v.text = true, kind, text
}

func (v *formView) HideMessage() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.visible = false
}

func (v *formView) ResetFields() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.reset = true
}

// takeReset reports whether the fields were reset since the last call.
func (v *formView) takeReset() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	r := v.reset
	v.reset = false
	return r
}

type session struct {
	form     *contact.Form
	view     *formView
	lastSeen time.Time
}

// DefaultMaxSessions bounds the session table unless WithMaxSessions says otherwise.
const DefaultMaxSessions = 10000

// SessionOption configures Sessions.
type SessionOption func(*Sessions)

// WithMaxSessions caps the number of sessions kept at once.
func WithMaxSessions(n int) SessionOption {
	return func(s *Sessions) {
		if n > 0 {
			s.max = n
		}
	}
}

// Sessions keeps one contact form per visitor, keyed by a cookie id.
type Sessions struct {
	newForm func(contact.View) *contact.Form
	idle    time.Duration
	max     int
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// NewSessions returns an empty session table. newForm builds the form for a
// new visitor; sessions unused for idle are dropped by Prune.
func NewSessions(newForm func(contact.View) *contact.Form, idle time.Duration, opts ...SessionOption) *Sessions {
	s := &Sessions{
		newForm:  newForm,
		idle:     idle,
		max:      DefaultMaxSessions,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the session for id, creating one (with a fresh id) when id is
// unknown or malformed.
func (s *Sessions) Get(id string) (string, *session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		sess.lastSeen = s.now()
		return id, sess
	}
	if _, err := uuid.Parse(id); err != nil || id == "" {
		id = uuid.NewString()
	}
	if len(s.sessions) >= s.max {
		s.evictLocked()
	}
	view := &formView{}
	sess := &session{form: s.newForm(view), view: view, lastSeen: s.now()}
	s.sessions[id] = sess
	return id, sess
}

// Prune drops idle sessions that are not mid-send and returns how many were
// removed.
func (s *Sessions) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pruneLocked()
}

func (s *Sessions) pruneLocked() int {
	cutoff := s.now().Add(-s.idle)
	n := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) && sess.form.State() != contact.StateSubmitting {
			s.dropLocked(id, sess)
			n++
		}
	}
	return n
}

// evictLocked makes room for one session: idle sessions go first, then the
// least recently seen one that is not mid-send. Sessions mid-send are never
// evicted, so the table may briefly exceed its cap.
func (s *Sessions) evictLocked() {
	if s.pruneLocked() > 0 && len(s.sessions) < s.max {
		return
	}
	var (
		oldestID string
		oldest   *session
	)
	for id, sess := range s.sessions {
		if sess.form.State() == contact.StateSubmitting {
			continue
		}
		if oldest == nil || sess.lastSeen.Before(oldest.lastSeen) {
			oldestID, oldest = id, sess
		}
	}
	if oldest != nil {
		s.dropLocked(oldestID, oldest)
	}
}

func (s *Sessions) dropLocked(id string, sess *session) {
	sess.form.Close()
	delete(s.sessions, id)
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close cancels every pending dismissal and forgets all sessions.
func (s *Sessions) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		sess.form.Close()
		delete(s.sessions, id)
	}
}
