// Package roster holds the doctor's patient list and its search filter.
package roster

import (
	"net/url"
	"strings"
)

type Status string

const (
	StatusActive   Status = "Activo"
	StatusInactive Status = "Inactivo"
)

// NoNextAppointment is shown when a patient has nothing scheduled.
const NoNextAppointment = "No programada"

// Patient is one immutable roster entry. Dates are display strings
// (dd-mm-yyyy) exactly as the roster shows them.
type Patient struct {
	ID              string
	Name            string
	Email           string
	Phone           string
	LastAppointment string
	NextAppointment *string
	Status          Status
	Condition       string
}

// NextAppointmentLabel returns the next appointment date or NoNextAppointment.
func (p Patient) NextAppointmentLabel() string {
	if p.NextAppointment == nil || *p.NextAppointment == "" {
		return NoNextAppointment
	}
	return *p.NextAppointment
}

// Links are the per-row actions of the roster table.
type Links struct {
	Profile         string `json:"profile"`
	Edit            string `json:"edit"`
	Records         string `json:"records"`
	NewAppointment  string `json:"new_appointment"`
	NewRehabProgram string `json:"new_rehabilitation_program"`
}

func (p Patient) Links() Links {
	base := "/dashboard/doctor/patients/" + url.PathEscape(p.ID)
	q := url.Values{"patient": []string{p.ID}}.Encode()
	return Links{
		Profile:         base,
		Edit:            base + "/edit",
		Records:         base + "/records",
		NewAppointment:  "/dashboard/doctor/appointments/new?" + q,
		NewRehabProgram: "/dashboard/doctor/rehabilitation/new?" + q,
	}
}

// IsActive reports whether the patient's status is Activo.
func (p Patient) IsActive() bool {
	return strings.EqualFold(string(p.Status), string(StatusActive))
}
