// Package booking runs wizard sessions: it applies user actions to stored
// wizard state and drives the confirm flow through a Submitter.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	otelx "github.com/md-rashed-zaman/clinicdesk/libs/otel"
	"github.com/md-rashed-zaman/clinicdesk/services/dashboard-service/internal/metrics"
	"github.com/md-rashed-zaman/clinicdesk/services/dashboard-service/internal/sessions"
	"github.com/md-rashed-zaman/clinicdesk/services/dashboard-service/internal/wizard"
)

const DefaultSuccessPath = "/dashboard/patient?success=true"

// ErrSubmitFailed marks a Confirm error raised by the Submitter, as opposed
// to a session store failure before anything was submitted.
var ErrSubmitFailed = errors.New("booking submission failed")

// errInert aborts a store update when the wizard refuses a transition.
var errInert = errors.New("inert wizard action")

type Options struct {
	// Location is the clinic time zone that decides what "today" is.
	Location    *time.Location
	SuccessPath string
	Metrics     *metrics.Dashboard
	Logger      *slog.Logger
	Now         func() time.Time
	NewID       func() string
}

type Service struct {
	store       sessions.Store
	submitter   Submitter
	loc         *time.Location
	successPath string
	metrics     *metrics.Dashboard
	logger      *slog.Logger
	now         func() time.Time
	newID       func() string
}

func NewService(store sessions.Store, submitter Submitter, opts Options) *Service {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if strings.TrimSpace(opts.SuccessPath) == "" {
		opts.SuccessPath = DefaultSuccessPath
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &Service{
		store:       store,
		submitter:   submitter,
		loc:         opts.Location,
		successPath: opts.SuccessPath,
		metrics:     opts.Metrics,
		logger:      opts.Logger,
		now:         opts.Now,
		newID:       opts.NewID,
	}
}

// Now returns the current time in the clinic time zone.
func (s *Service) Now() time.Time {
	return s.now().In(s.loc)
}

func (s *Service) Start(ctx context.Context) (sessions.Session, error) {
	now := s.Now()
	sess := sessions.Session{
		ID:        s.newID(),
		State:     wizard.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, sess); err != nil {
		return sessions.Session{}, fmt.Errorf("create session: %w", err)
	}
	s.metrics.SessionStarted()
	return sess, nil
}

func (s *Service) Get(ctx context.Context, id string) (sessions.Session, error) {
	return s.store.Get(ctx, id)
}

// Discard abandons a session and its draft.
func (s *Service) Discard(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Dispatch applies a to the session and reports whether it changed anything.
// An inert action returns the stored session untouched and is not an error.
func (s *Service) Dispatch(ctx context.Context, id string, a wizard.Action) (sessions.Session, bool, error) {
	var current sessions.Session
	now := s.Now()
	updated, err := s.store.Update(ctx, id, func(sess *sessions.Session) error {
		next, ok := wizard.Apply(sess.State, a, now)
		if !ok {
			current = *sess
			return errInert
		}
		sess.State = next
		sess.UpdatedAt = now
		return nil
	})
	switch {
	case err == nil:
		s.metrics.ObserveWizardAction(string(a.Type), true)
		return updated, true, nil
	case errors.Is(err, errInert):
		s.metrics.ObserveWizardAction(string(a.Type), false)
		return current, false, nil
	default:
		return sessions.Session{}, false, err
	}
}

// Outcome is the result of Confirm. When Applied is false the confirm
// action was disabled and Session holds the unchanged state.
type Outcome struct {
	Applied  bool
	Session  sessions.Session
	Redirect string
	Receipt  Receipt
}

// Confirm submits a complete draft. Setting the in-flight flag is atomic so
// that only one of several concurrent confirms reaches the Submitter; the
// others are inert. On success the session is removed and the caller is sent
// to the success path. On failure the flag is cleared so the user can retry.
func (s *Service) Confirm(ctx context.Context, id string) (Outcome, error) {
	ctx, span := otelx.Tracer().Start(ctx, "booking.confirm")
	defer span.End()
	span.SetAttributes(attribute.String("booking.session_id", id))

	var current sessions.Session
	now := s.Now()
	sess, err := s.store.Update(ctx, id, func(sess *sessions.Session) error {
		next, ok := wizard.BeginSubmit(sess.State)
		if !ok {
			current = *sess
			return errInert
		}
		sess.State = next
		sess.UpdatedAt = now
		return nil
	})
	if errors.Is(err, errInert) {
		s.metrics.ObserveConfirmation("inert")
		return Outcome{Session: current}, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "begin submit")
		return Outcome{}, err
	}

	sub := Submission{SessionID: id, Draft: sess.State.Draft}
	if t, ok := wizard.AppointmentTypeByID(sess.State.Draft.AppointmentTypeID); ok {
		sub.AppointmentTypeName = t.Name
	}

	started := time.Now()
	receipt, err := s.submitter.Submit(ctx, sub)
	s.metrics.ObserveSubmit(time.Since(started).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "submit")
		s.metrics.ObserveConfirmation("failed")
		s.release(ctx, id)
		return Outcome{}, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}

	// The booking is accepted; a leftover session only lingers until its TTL.
	if err := s.store.Delete(context.WithoutCancel(ctx), id); err != nil && !errors.Is(err, sessions.ErrNotFound) {
		s.logger.Warn("booking session cleanup failed", "session_id", id, "err", err)
	}
	s.metrics.ObserveConfirmation("success")
	s.logger.Info("booking submitted",
		"session_id", id,
		"receipt_id", receipt.ID,
		"date", sess.State.Draft.Date.String(),
		"time_slot", sess.State.Draft.TimeSlot,
		"appointment_type_id", sess.State.Draft.AppointmentTypeID,
	)
	span.SetAttributes(attribute.String("booking.receipt_id", receipt.ID))
	return Outcome{Applied: true, Session: sess, Redirect: s.successPath, Receipt: receipt}, nil
}

// release clears the in-flight flag after a failed submission. It must run
// even when the request context is already cancelled.
func (s *Service) release(ctx context.Context, id string) {
	ctx = context.WithoutCancel(ctx)
	_, err := s.store.Update(ctx, id, func(sess *sessions.Session) error {
		sess.State = wizard.EndSubmit(sess.State)
		sess.UpdatedAt = s.Now()
		return nil
	})
	if err != nil && !errors.Is(err, sessions.ErrNotFound) {
		s.logger.Error("booking session release failed", "session_id", id, "err", err)
	}
}
