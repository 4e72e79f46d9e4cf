package wizard

import (
	"fmt"
	"time"
)

type ActionType string

const (
	ActionSelectDate            ActionType = "select_date"
	ActionClearDate             ActionType = "clear_date"
	ActionSelectTimeSlot        ActionType = "select_time_slot"
	ActionSelectAppointmentType ActionType = "select_appointment_type"
	ActionSetNotes              ActionType = "set_notes"
	ActionContinue              ActionType = "continue"
	ActionBack                  ActionType = "back"
)

// Action is one user interaction with the wizard. Date is used by
// select_date, Value by the slot, type and notes actions.
type Action struct {
	Type  ActionType
	Date  Date
	Value string
}

// ParseActionType validates a wire action name.
func ParseActionType(raw string) (ActionType, error) {
	switch t := ActionType(raw); t {
	case ActionSelectDate, ActionClearDate, ActionSelectTimeSlot, ActionSelectAppointmentType,
		ActionSetNotes, ActionContinue, ActionBack:
		return t, nil
	default:
		return "", fmt.Errorf("unknown action %q", raw)
	}
}

// Apply returns the state after a and whether a had any effect. Actions that
// the form would not offer at this point (a field of the other step, a
// weekend date, continue without a slot...) leave the state untouched and
// report false; they are never errors.
func Apply(s State, a Action, now time.Time) (State, bool) {
	switch a.Type {
	case ActionSelectDate:
		if s.Step != StepDateTime || !Selectable(a.Date, now) {
			return s, false
		}
		d := a.Date
		s.Draft.Date = &d
		return s, true

	case ActionClearDate:
		if s.Step != StepDateTime || s.Draft.Date == nil {
			return s, false
		}
		s.Draft.Date = nil
		return s, true

	case ActionSelectTimeSlot:
		// The slot picker stays disabled until a date is chosen.
		if s.Step != StepDateTime || s.Draft.Date == nil || !IsTimeSlot(a.Value) {
			return s, false
		}
		s.Draft.TimeSlot = a.Value
		return s, true

	case ActionSelectAppointmentType:
		if s.Step != StepDetails {
			return s, false
		}
		if _, ok := AppointmentTypeByID(a.Value); !ok {
			return s, false
		}
		s.Draft.AppointmentTypeID = a.Value
		return s, true

	case ActionSetNotes:
		if s.Step != StepDetails {
			return s, false
		}
		s.Draft.Notes = a.Value
		return s, true

	case ActionContinue:
		if !s.CanContinue() {
			return s, false
		}
		s.Step = StepDetails
		return s, true

	case ActionBack:
		if !s.CanGoBack() {
			return s, false
		}
		s.Step = StepDateTime
		return s, true

	default:
		return s, false
	}
}
