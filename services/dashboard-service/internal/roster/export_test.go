package roster

import (
	"bytes"
	"encoding/csv"
	"testing"
)

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, Filter(SamplePatients(), "", FilterInactive)); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(rows))
	}
	if rows[0][0] != "Nombre" || rows[0][6] != "Estado" {
		t.Fatalf("unexpected header %v", rows[0])
	}
	if rows[1][0] != "Miguel Rodríguez" || rows[1][5] != NoNextAppointment || rows[1][6] != "Inactivo" {
		t.Fatalf("unexpected row %v", rows[1])
	}
}
