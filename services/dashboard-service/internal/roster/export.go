package roster

import (
	"encoding/csv"
	"io"
)

var exportHeader = []string{"Nombre", "Email", "Teléfono", "Condición", "Última Cita", "Próxima Cita", "Estado"}

// WriteCSV writes patients with the roster table's columns.
func WriteCSV(w io.Writer, patients []Patient) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, p := range patients {
		if err := cw.Write([]string{
			p.Name,
			p.Email,
			p.Phone,
			p.Condition,
			p.LastAppointment,
			p.NextAppointmentLabel(),
			string(p.Status),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
