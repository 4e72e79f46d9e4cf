// Package sessions keeps booking wizard state between requests.
package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/md-rashed-zaman/clinicdesk/services/dashboard-service/internal/wizard"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrExists   = errors.New("session already exists")
	// ErrContention is returned when an update kept losing optimistic
	// transaction races.
	ErrContention = errors.New("session update contention")
)

// Session is one wizard in progress.
type Session struct {
	ID        string       `json:"id"`
	State     wizard.State `json:"state"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// UpdateFunc mutates s in place. Returning an error aborts the update and
// nothing is written.
type UpdateFunc func(s *Session) error

// Store persists sessions with a sliding TTL: every write extends it.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (Session, error)
	// Update runs fn against the current session and saves the result
	// atomically with respect to other Update calls on the same id.
	Update(ctx context.Context, id string, fn UpdateFunc) (Session, error)
	Delete(ctx context.Context, id string) error
}
