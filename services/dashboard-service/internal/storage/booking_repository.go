package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/md-rashed-zaman/clinicdesk/libs/db"
	"github.com/md-rashed-zaman/clinicdesk/services/dashboard-service/internal/booking"
	"github.com/md-rashed-zaman/clinicdesk/services/dashboard-service/internal/outbox"
)

const aggregateBookingRequest = "booking_request"

// BookingRepository is the Postgres booking.Submitter. A confirmed draft
// becomes a booking_requests row plus a booking.appointment.requested.v1
// outbox event written in the same transaction.
type BookingRepository struct {
	pool   db.TxBeginner
	outbox *outbox.Repository
}

func NewBookingRepository(pool db.TxBeginner, outboxRepo *outbox.Repository) *BookingRepository {
	return &BookingRepository{pool: pool, outbox: outboxRepo}
}

var _ booking.Submitter = (*BookingRepository)(nil)

type bookingRequestedPayload struct {
	RequestID           string    `json:"request_id"`
	SessionID           string    `json:"session_id"`
	Date                string    `json:"date"`
	TimeSlot            string    `json:"time_slot"`
	AppointmentTypeID   string    `json:"appointment_type_id"`
	AppointmentTypeName string    `json:"appointment_type_name"`
	Notes               string    `json:"notes,omitempty"`
	RequestedAt         time.Time `json:"requested_at"`
}

func (r *BookingRepository) Submit(ctx context.Context, sub booking.Submission) (booking.Receipt, error) {
	if !sub.Draft.Complete() {
		return booking.Receipt{}, errors.New("booking draft is incomplete")
	}
	date := sub.Draft.Date.String()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return booking.Receipt{}, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		id        string
		createdAt time.Time
	)
	err = tx.QueryRow(ctx, `
		INSERT INTO booking_requests
			(session_id, appointment_date, time_slot, appointment_type_id, appointment_type_name, notes)
		VALUES ($1, $2::date, $3, $4, $5, $6)
		RETURNING id, created_at
	`, sub.SessionID, date, sub.Draft.TimeSlot, sub.Draft.AppointmentTypeID, sub.AppointmentTypeName, sub.Draft.Notes).
		Scan(&id, &createdAt)
	if err != nil {
		return booking.Receipt{}, fmt.Errorf("insert booking request: %w", err)
	}

	payload, err := json.Marshal(bookingRequestedPayload{
		RequestID:           id,
		SessionID:           sub.SessionID,
		Date:                date,
		TimeSlot:            sub.Draft.TimeSlot,
		AppointmentTypeID:   sub.Draft.AppointmentTypeID,
		AppointmentTypeName: sub.AppointmentTypeName,
		Notes:               sub.Draft.Notes,
		RequestedAt:         createdAt.UTC(),
	})
	if err != nil {
		return booking.Receipt{}, err
	}
	if err := r.outbox.Insert(ctx, tx, outbox.Event{
		AggregateType: aggregateBookingRequest,
		AggregateID:   id,
		EventType:     outbox.EventBookingRequested,
		Payload:       payload,
	}); err != nil {
		return booking.Receipt{}, fmt.Errorf("insert outbox event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return booking.Receipt{}, fmt.Errorf("commit: %w", err)
	}
	return booking.Receipt{ID: id, SubmittedAt: createdAt.UTC()}, nil
}
