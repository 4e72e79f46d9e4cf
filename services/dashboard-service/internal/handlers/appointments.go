package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"

	"github.com/md-rashed-zaman/clinicdesk/libs/httpx"
	"github.com/md-rashed-zaman/clinicdesk/services/dashboard-service/internal/appointments"
)

type AppointmentsHandler struct {
	appointments []appointments.Appointment
	logger       *slog.Logger
}

func NewAppointmentsHandler(appts []appointments.Appointment, logger *slog.Logger) *AppointmentsHandler {
	return &AppointmentsHandler{appointments: appts, logger: logger}
}

func (h *AppointmentsHandler) filtered(r *http.Request) (appointments.StatusFilter, []appointments.Appointment) {
	status := appointments.ParseStatusFilter(r.URL.Query().Get("status"))
	patientID := strings.TrimSpace(r.URL.Query().Get("patient"))
	return status, appointments.Filter(h.appointments, status, patientID)
}

type appointmentItem struct {
	ID          string              `json:"id"`
	PatientID   string              `json:"patient_id"`
	PatientName string              `json:"patient_name"`
	Date        string              `json:"date"`
	Time        string              `json:"time"`
	Type        string              `json:"type"`
	Status      appointments.Status `json:"status"`
}

func (h *AppointmentsHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	status, filtered := h.filtered(r)
	items := make([]appointmentItem, 0, len(filtered))
	for _, a := range filtered {
		items = append(items, appointmentItem{
			ID:          a.ID,
			PatientID:   a.PatientID,
			PatientName: a.PatientName,
			Date:        a.Date,
			Time:        a.Time,
			Type:        a.Type,
			Status:      a.Status,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"status":       string(status),
		"appointments": items,
	})
}

// Export writes the filtered appointment list as CSV.
func (h *AppointmentsHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	_, filtered := h.filtered(r)

	var buf bytes.Buffer
	if err := appointments.WriteCSV(&buf, filtered); err != nil {
		h.logger.Error("appointments export failed", "err", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="citas.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
