package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/md-rashed-zaman/clinicdesk/libs/httpx"
	"github.com/md-rashed-zaman/clinicdesk/services/dashboard-service/internal/metrics"
	"github.com/md-rashed-zaman/clinicdesk/services/dashboard-service/internal/roster"
)

type RosterHandler struct {
	patients []roster.Patient
	metrics  *metrics.Dashboard
	logger   *slog.Logger
}

func NewRosterHandler(patients []roster.Patient, m *metrics.Dashboard, logger *slog.Logger) *RosterHandler {
	return &RosterHandler{patients: patients, metrics: m, logger: logger}
}

type patientItem struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	Email              string        `json:"email"`
	Phone              string        `json:"phone"`
	LastAppointment    string        `json:"last_appointment"`
	NextAppointment    string        `json:"next_appointment"`
	HasNextAppointment bool          `json:"has_next_appointment"`
	Status             roster.Status `json:"status"`
	Active             bool          `json:"active"`
	Condition          string        `json:"condition"`
	Links              roster.Links  `json:"links"`
}

type listPatientsResponse struct {
	Query    string        `json:"query"`
	Status   string        `json:"status"`
	Total    int           `json:"total"`
	Patients []patientItem `json:"patients"`
}

func toPatientItem(p roster.Patient) patientItem {
	return patientItem{
		ID:                 p.ID,
		Name:               p.Name,
		Email:              p.Email,
		Phone:              p.Phone,
		LastAppointment:    p.LastAppointment,
		NextAppointment:    p.NextAppointmentLabel(),
		HasNextAppointment: p.NextAppointment != nil,
		Status:             p.Status,
		Active:             p.IsActive(),
		Condition:          p.Condition,
		Links:              p.Links(),
	}
}

// filtered applies the q and status query parameters. The query is used
// verbatim: the phone match depends on it not being normalized.
func (h *RosterHandler) filtered(r *http.Request) (string, roster.StatusFilter, []roster.Patient) {
	query := r.URL.Query().Get("q")
	status := roster.ParseStatusFilter(r.URL.Query().Get("status"))
	out := roster.Filter(h.patients, query, status)
	h.metrics.ObserveRosterQuery(string(status), len(out))
	return query, status, out
}

func (h *RosterHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	query, status, patients := h.filtered(r)

	items := make([]patientItem, 0, len(patients))
	for _, p := range patients {
		items = append(items, toPatientItem(p))
	}
	httpx.WriteJSON(w, http.StatusOK, listPatientsResponse{
		Query:    query,
		Status:   string(status),
		Total:    len(h.patients),
		Patients: items,
	})
}

// Export writes the filtered roster as CSV.
func (h *RosterHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	_, _, patients := h.filtered(r)

	var buf bytes.Buffer
	if err := roster.WriteCSV(&buf, patients); err != nil {
		h.logger.Error("roster export failed", "err", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="pacientes.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
