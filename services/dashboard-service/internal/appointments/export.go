package appointments

import (
	"encoding/csv"
	"io"
)

var exportHeader = []string{"Paciente", "Fecha", "Hora", "Tipo", "Estado"}

var statusLabels = map[Status]string{
	StatusUpcoming:  "Próxima",
	StatusCompleted: "Completada",
	StatusCancelled: "Cancelada",
}

// StatusLabel is the Spanish label shown for s; unknown statuses are returned
// as is.
func StatusLabel(s Status) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// WriteCSV writes appts with the appointment list's columns.
func WriteCSV(w io.Writer, appts []Appointment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, a := range appts {
		if err := cw.Write([]string{a.PatientName, a.Date, a.Time, a.Type, StatusLabel(a.Status)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
