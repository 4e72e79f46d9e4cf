package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/md-rashed-zaman/clinicdesk/libs/httpx"
	"github.com/md-rashed-zaman/clinicdesk/services/dashboard-service/internal/booking"
	"github.com/md-rashed-zaman/clinicdesk/services/dashboard-service/internal/sessions"
	"github.com/md-rashed-zaman/clinicdesk/services/dashboard-service/internal/wizard"
)

const (
	defaultCalendarDays = 35
	maxCalendarDays     = 92
)

type BookingHandler struct {
	svc    *booking.Service
	logger *slog.Logger
}

func NewBookingHandler(svc *booking.Service, logger *slog.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, logger: logger}
}

type draftView struct {
	Date              *wizard.Date `json:"date"`
	TimeSlot          string       `json:"time_slot"`
	AppointmentTypeID string       `json:"appointment_type_id"`
	Notes             string       `json:"notes"`
}

type sessionView struct {
	ID          string         `json:"id"`
	Step        wizard.Step    `json:"step"`
	StepName    string         `json:"step_name"`
	Draft       draftView      `json:"draft"`
	Submitting  bool           `json:"submitting"`
	CanContinue bool           `json:"can_continue"`
	CanGoBack   bool           `json:"can_go_back"`
	CanConfirm  bool           `json:"can_confirm"`
	Summary     wizard.Summary `json:"summary"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
}

func toSessionView(s sessions.Session) sessionView {
	st := s.State
	return sessionView{
		ID:       s.ID,
		Step:     st.Step,
		StepName: st.Step.String(),
		Draft: draftView{
			Date:              st.Draft.Date,
			TimeSlot:          st.Draft.TimeSlot,
			AppointmentTypeID: st.Draft.AppointmentTypeID,
			Notes:             st.Draft.Notes,
		},
		Submitting:  st.Submitting,
		CanContinue: st.CanContinue(),
		CanGoBack:   st.CanGoBack(),
		CanConfirm:  st.CanConfirm(),
		Summary:     wizard.Summarize(st.Draft),
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   s.UpdatedAt.Format(time.RFC3339),
	}
}

type actionRequest struct {
	Type  string `json:"type"`
	Date  string `json:"date"`
	Value string `json:"value"`
}

type actionResponse struct {
	Applied bool        `json:"applied"`
	Session sessionView `json:"session"`
}

type confirmResponse struct {
	Applied  bool             `json:"applied"`
	Redirect string           `json:"redirect,omitempty"`
	Receipt  *booking.Receipt `json:"receipt,omitempty"`
	Session  *sessionView     `json:"session,omitempty"`
}

func (h *BookingHandler) Options(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"time_slots":        wizard.TimeSlots(),
		"appointment_types": wizard.AppointmentTypes(),
	})
}

// Calendar reports which days may be picked, starting at from (default
// today in the clinic time zone).
func (h *BookingHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	now := h.svc.Now()
	today := wizard.DateOf(now)

	from := today
	if raw := strings.TrimSpace(r.URL.Query().Get("from")); raw != "" {
		d, err := wizard.ParseDate(raw)
		if err != nil {
			http.Error(w, "invalid from (expected YYYY-MM-DD)", http.StatusBadRequest)
			return
		}
		from = d
	}
	days := defaultCalendarDays
	if raw := strings.TrimSpace(r.URL.Query().Get("days")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxCalendarDays {
			http.Error(w, "days must be between 1 and 92", http.StatusBadRequest)
			return
		}
		days = n
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"today": today,
		"days":  wizard.Calendar(from, days, now),
	})
}

func (h *BookingHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess, err := h.svc.Start(r.Context())
	if err != nil {
		h.logger.Error("start booking session failed", "err", err)
		http.Error(w, "failed to start session", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Location", "/api/v1/booking/sessions/"+sess.ID)
	httpx.WriteJSON(w, http.StatusCreated, toSessionView(sess))
}

// Session serves GET and DELETE on a single session.
func (h *BookingHandler) Session(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	switch r.Method {
	case http.MethodGet:
		sess, err := h.svc.Get(r.Context(), id)
		if err != nil {
			h.writeSessionError(w, "get booking session failed", id, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toSessionView(sess))
	case http.MethodDelete:
		if err := h.svc.Discard(r.Context(), id); err != nil {
			h.writeSessionError(w, "discard booking session failed", id, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *BookingHandler) Action(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := r.PathValue("id")

	var req actionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	actionType, err := wizard.ParseActionType(strings.TrimSpace(req.Type))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	action := wizard.Action{Type: actionType, Value: req.Value}
	if actionType == wizard.ActionSelectDate {
		d, err := wizard.ParseDate(strings.TrimSpace(req.Date))
		if err != nil {
			http.Error(w, "invalid date (expected YYYY-MM-DD)", http.StatusBadRequest)
			return
		}
		action.Date = d
	}

	sess, applied, err := h.svc.Dispatch(r.Context(), id, action)
	if err != nil {
		h.writeSessionError(w, "booking action failed", id, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, actionResponse{Applied: applied, Session: toSessionView(sess)})
}

// Confirm blocks for the duration of the submission.
func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := r.PathValue("id")

	out, err := h.svc.Confirm(r.Context(), id)
	if err != nil {
		if errors.Is(err, booking.ErrSubmitFailed) {
			h.logger.Error("booking submission failed", "session_id", id, "err", err)
			http.Error(w, "booking submission failed", http.StatusServiceUnavailable)
			return
		}
		h.writeSessionError(w, "booking confirm failed", id, err)
		return
	}
	if !out.Applied {
		view := toSessionView(out.Session)
		httpx.WriteJSON(w, http.StatusOK, confirmResponse{Applied: false, Session: &view})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, confirmResponse{
		Applied:  true,
		Redirect: out.Redirect,
		Receipt:  &out.Receipt,
	})
}

func (h *BookingHandler) writeSessionError(w http.ResponseWriter, msg, id string, err error) {
	if errors.Is(err, sessions.ErrNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	h.logger.Error(msg, "session_id", id, "err", err)
	http.Error(w, "session store error", http.StatusInternalServerError)
}
