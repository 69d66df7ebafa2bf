package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Zachkp/folio/internal/contact"
)

// ErrMessageNotFound is returned when deleting an unknown message.
var ErrMessageNotFound = errors.New("analytics: message not found")

// Message is an archived contact submission.
type Message struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	ReceivedAt time.Time `json:"received_at"`
}

// SaveMessage archives a contact submission.
func (s *Store) SaveMessage(ctx context.Context, sub contact.Submission) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (id, name, email, subject, body, received_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), sub.Name, sub.Email, sub.Subject, sub.Message, s.timestamp())
	if err != nil {
		return fmt.Errorf("saving message: %w", err)
	}
	return nil
}

// Messages returns the most recent archived messages, newest first.
func (s *Store) Messages(ctx context.Context, limit int) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, subject, body, received_at
		FROM messages
		ORDER BY received_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.ReceivedAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// DeleteMessage removes an archived message.
func (s *Store) DeleteMessage(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting message %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMessageNotFound
	}
	return nil
}

var _ contact.Archiver = (*Store)(nil)
