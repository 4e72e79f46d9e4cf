package outbox

// EventBookingRequested is emitted when a patient confirms the booking
// wizard.
const EventBookingRequested = "booking.appointment.requested.v1"

// Event is the envelope written to outbox_events. The Kafka topic equals
// EventType.
type Event struct {
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}
