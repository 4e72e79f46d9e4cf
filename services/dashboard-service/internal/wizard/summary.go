package wizard

import (
	"fmt"
	"time"
)

var spanishWeekdays = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatMedium renders d as "19 de octubre de 2026".
func FormatMedium(d Date) string {
	return fmt.Sprintf("%d de %s de %d", d.Day, spanishMonths[d.Month-time.January], d.Year)
}

// FormatLong renders d as "lunes, 19 de octubre de 2026".
func FormatLong(d Date) string {
	return spanishWeekdays[d.Weekday()] + ", " + FormatMedium(d)
}

// Summary is the "Resumen de la cita" panel. Fields are empty until chosen.
type Summary struct {
	Date            string `json:"date,omitempty"`
	DateLong        string `json:"date_long,omitempty"`
	TimeSlot        string `json:"time_slot,omitempty"`
	AppointmentType string `json:"appointment_type,omitempty"`
}

func Summarize(d Draft) Summary {
	var s Summary
	if d.Date != nil {
		s.Date = FormatMedium(*d.Date)
		s.DateLong = FormatLong(*d.Date)
	}
	s.TimeSlot = d.TimeSlot
	if t, ok := AppointmentTypeByID(d.AppointmentTypeID); ok {
		s.AppointmentType = t.Name
	}
	return s
}
