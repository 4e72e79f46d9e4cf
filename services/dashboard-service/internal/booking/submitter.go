package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/md-rashed-zaman/clinicdesk/services/dashboard-service/internal/wizard"
)

// DefaultSubmitDelay matches the latency of the booking form's placeholder
// write.
const DefaultSubmitDelay = 1500 * time.Millisecond

// Submission is a confirmed draft handed to a Submitter.
type Submission struct {
	SessionID           string
	Draft               wizard.Draft
	AppointmentTypeName string
}

// Receipt identifies an accepted booking request.
type Receipt struct {
	ID          string    `json:"id"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Submitter performs the final write of a booking.
type Submitter interface {
	Submit(ctx context.Context, sub Submission) (Receipt, error)
}

// SimulatedSubmitter waits Delay and accepts every submission. It stands in
// for a backend that does not exist yet.
type SimulatedSubmitter struct {
	Delay time.Duration
	Now   func() time.Time
}

func (s SimulatedSubmitter) Submit(ctx context.Context, _ Submission) (Receipt, error) {
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Receipt{}, ctx.Err()
		case <-timer.C:
		}
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return Receipt{ID: uuid.NewString(), SubmittedAt: now().UTC()}, nil
}
