// Package wizard implements the two-step appointment booking form as a state
// value and pure transition functions. Nothing here performs I/O; callers own
// the state and decide where it lives.
package wizard

// Step is the wizard page currently shown.
type Step int

const (
	// StepDateTime collects the date and the time slot.
	StepDateTime Step = 1
	// StepDetails collects the appointment type and optional notes.
	StepDetails Step = 2
)

func (s Step) String() string {
	switch s {
	case StepDateTime:
		return "date_time"
	case StepDetails:
		return "details"
	default:
		return "unknown"
	}
}

// Draft is the booking form as filled in so far. Empty strings and a nil Date
// mean "not chosen".
type Draft struct {
	Date              *Date  `json:"date"`
	TimeSlot          string `json:"time_slot"`
	AppointmentTypeID string `json:"appointment_type_id"`
	Notes             string `json:"notes"`
}

// Complete reports whether every required field is set.
func (d Draft) Complete() bool {
	return d.Date != nil && d.TimeSlot != "" && d.AppointmentTypeID != ""
}

// State is the whole wizard: current step, draft and whether a submission is
// in flight.
type State struct {
	Step       Step  `json:"step"`
	Draft      Draft `json:"draft"`
	Submitting bool  `json:"submitting"`
}

// New returns an empty wizard on the first step.
func New() State {
	return State{Step: StepDateTime}
}

// CanContinue reports whether the first step's continue action is enabled.
func (s State) CanContinue() bool {
	return s.Step == StepDateTime && s.Draft.Date != nil && s.Draft.TimeSlot != ""
}

// CanGoBack reports whether the back action is enabled. It is on every
// visit to the details step.
func (s State) CanGoBack() bool {
	return s.Step == StepDetails
}

// CanConfirm reports whether the confirm action is enabled: on the details
// step, with a complete draft and no submission in flight.
func (s State) CanConfirm() bool {
	return s.Step == StepDetails && s.Draft.Complete() && !s.Submitting
}

// BeginSubmit marks a submission as in flight. It is inert unless
// CanConfirm holds.
func BeginSubmit(s State) (State, bool) {
	if !s.CanConfirm() {
		return s, false
	}
	s.Submitting = true
	return s, true
}

// EndSubmit clears the in-flight flag after a failed submission so the user
// can confirm again.
func EndSubmit(s State) State {
	s.Submitting = false
	return s
}
