// Package appointments backs the doctor's appointment list view.
package appointments

import "strings"

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Appointment is a row of the doctor's list. Date is dd-mm-yyyy as shown on
// the roster, Time one of the booking slots.
type Appointment struct {
	ID          string
	PatientID   string
	PatientName string
	Date        string
	Time        string
	Type        string
	Status      Status
}

// StatusFilter is the value of the list's status select: "all" or a Status.
type StatusFilter string

const FilterAll StatusFilter = "all"

func ParseStatusFilter(raw string) StatusFilter {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return FilterAll
	}
	return StatusFilter(raw)
}

// Filter keeps appointments with the given status and, when patientID is not
// empty, belonging to that patient. Order is preserved.
func Filter(appts []Appointment, status StatusFilter, patientID string) []Appointment {
	out := make([]Appointment, 0, len(appts))
	for _, a := range appts {
		if status != FilterAll && string(a.Status) != string(status) {
			continue
		}
		if patientID != "" && a.PatientID != patientID {
			continue
		}
		out = append(out, a)
	}
	return out
}
