package handlers

import "net/http"

// Register mounts the dashboard API under /api/v1.
func Register(mux *http.ServeMux, rosterH *RosterHandler, apptH *AppointmentsHandler, bookingH *BookingHandler) {
	mux.HandleFunc("/api/v1/patients", rosterH.List)
	mux.HandleFunc("/api/v1/patients/export", rosterH.Export)
	mux.HandleFunc("/api/v1/appointments", apptH.List)
	mux.HandleFunc("/api/v1/appointments/export", apptH.Export)
	mux.HandleFunc("/api/v1/booking/options", bookingH.Options)
	mux.HandleFunc("/api/v1/booking/calendar", bookingH.Calendar)
	mux.HandleFunc("/api/v1/booking/sessions", bookingH.StartSession)
	mux.HandleFunc("/api/v1/booking/sessions/{id}", bookingH.Session)
	mux.HandleFunc("/api/v1/booking/sessions/{id}/actions", bookingH.Action)
	mux.HandleFunc("/api/v1/booking/sessions/{id}/confirm", bookingH.Confirm)
}
