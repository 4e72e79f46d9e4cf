package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/md-rashed-zaman/clinicdesk/services/dashboard-service/internal/appointments"
	"github.com/md-rashed-zaman/clinicdesk/services/dashboard-service/internal/booking"
	"github.com/md-rashed-zaman/clinicdesk/services/dashboard-service/internal/metrics"
	"github.com/md-rashed-zaman/clinicdesk/services/dashboard-service/internal/roster"
	"github.com/md-rashed-zaman/clinicdesk/services/dashboard-service/internal/sessions"
)

var madrid = time.FixedZone("CEST", 2*60*60)

// Saturday 2026-10-17 12:00 in the clinic.
var saturdayNoon = time.Date(2026, time.October, 17, 12, 0, 0, 0, madrid)

type failingSubmitter struct{}

func (failingSubmitter) Submit(context.Context, booking.Submission) (booking.Receipt, error) {
	return booking.Receipt{}, errors.New("backend down")
}

func newTestServer(t *testing.T, sub booking.Submitter) *httptest.Server {
	t.Helper()
	return newTestServerWithStore(t, sessions.NewMemoryStore(time.Hour), sub)
}

func newTestServerWithStore(t *testing.T, store sessions.Store, sub booking.Submitter) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.NewDashboard(prometheus.NewRegistry())
	svc := booking.NewService(store, sub, booking.Options{
		Location: madrid,
		Metrics:  m,
		Logger:   logger,
		Now:      func() time.Time { return saturdayNoon },
	})

	mux := http.NewServeMux()
	Register(mux,
		NewRosterHandler(roster.SamplePatients(), m, logger),
		NewAppointmentsHandler(appointments.SampleAppointments(), logger),
		NewBookingHandler(svc, logger),
	)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, body string, out any) *http.Response {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rdr)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 && resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

type patientsBody struct {
	Total    int `json:"total"`
	Patients []struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		NextAppointment string `json:"next_appointment"`
		Links           struct {
			NewAppointment string `json:"new_appointment"`
		} `json:"links"`
	} `json:"patients"`
}

func patientNames(b patientsBody) []string {
	var names []string
	for _, p := range b.Patients {
		names = append(names, p.Name)
	}
	return names
}

func TestRoster_List(t *testing.T) {
	srv := newTestServer(t, booking.SimulatedSubmitter{})

	cases := []struct {
		name  string
		query string
		want  []string
	}{
		{"all", "", []string{"Carlos García", "María López", "Miguel Rodríguez", "Ana Martínez", "Roberto Fernández"}},
		{"name is case-insensitive", "?q=garc%C3%ADa", []string{"Carlos García"}},
		{"inactive", "?status=inactivo", []string{"Miguel Rodríguez"}},
		{"phone substring", "?q=555", []string{"Carlos García", "María López", "Miguel Rodríguez", "Ana Martínez", "Roberto Fernández"}},
		{"phone is not normalized", "?q=5551234", nil},
		{"condition", "?q=tdah&status=all", []string{"Miguel Rodríguez"}},
		{"unknown status matches nothing", "?status=pendiente", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var body patientsBody
			resp := doJSON(t, http.MethodGet, srv.URL+"/api/v1/patients"+tc.query, "", &body)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tc.want, patientNames(body))
			assert.Equal(t, 5, body.Total)
		})
	}
}

func TestRoster_ListShowsLinksAndUnscheduled(t *testing.T) {
	srv := newTestServer(t, booking.SimulatedSubmitter{})
	var body patientsBody
	doJSON(t, http.MethodGet, srv.URL+"/api/v1/patients?status=inactivo", "", &body)

	require.Len(t, body.Patients, 1)
	assert.Equal(t, roster.NoNextAppointment, body.Patients[0].NextAppointment)
	assert.Equal(t, "/dashboard/doctor/appointments/new?patient=3", body.Patients[0].Links.NewAppointment)
}

func TestRoster_Export(t *testing.T) {
	srv := newTestServer(t, booking.SimulatedSubmitter{})
	resp, err := http.Get(srv.URL + "/api/v1/patients/export?status=inactivo")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "Miguel Rodríguez")
	assert.Contains(t, lines[1], "No programada")
}

func TestRoster_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, booking.SimulatedSubmitter{})
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/patients", "{}", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestAppointments_List(t *testing.T) {
	srv := newTestServer(t, booking.SimulatedSubmitter{})

	var body struct {
		Appointments []struct {
			ID string `json:"id"`
		} `json:"appointments"`
	}
	doJSON(t, http.MethodGet, srv.URL+"/api/v1/appointments?status=upcoming", "", &body)
	assert.Len(t, body.Appointments, 4)

	doJSON(t, http.MethodGet, srv.URL+"/api/v1/appointments?patient=3", "", &body)
	require.Len(t, body.Appointments, 2)
	assert.Equal(t, "a2", body.Appointments[0].ID)
	assert.Equal(t, "a6", body.Appointments[1].ID)
}

func TestAppointments_Export(t *testing.T) {
	srv := newTestServer(t, booking.SimulatedSubmitter{})
	resp, err := http.Get(srv.URL + "/api/v1/appointments/export?status=upcoming&patient=1")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "citas.csv")
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Paciente,Fecha,Hora,Tipo,Estado", lines[0])
	assert.Equal(t, "Carlos García,10-05-2023,09:30,Terapia,Próxima", lines[1])

	post := doJSON(t, http.MethodPost, srv.URL+"/api/v1/appointments/export", "{}", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, post.StatusCode)
}

func TestBooking_OptionsAndCalendar(t *testing.T) {
	srv := newTestServer(t, booking.SimulatedSubmitter{})

	var opts struct {
		TimeSlots        []string `json:"time_slots"`
		AppointmentTypes []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"appointment_types"`
	}
	doJSON(t, http.MethodGet, srv.URL+"/api/v1/booking/options", "", &opts)
	assert.Len(t, opts.TimeSlots, 12)
	require.Len(t, opts.AppointmentTypes, 5)
	assert.Equal(t, "Consulta inicial", opts.AppointmentTypes[0].Name)

	var cal struct {
		Today string `json:"today"`
		Days  []struct {
			Date       string `json:"date"`
			Selectable bool   `json:"selectable"`
		} `json:"days"`
	}
	doJSON(t, http.MethodGet, srv.URL+"/api/v1/booking/calendar?from=2026-10-16&days=4", "", &cal)
	assert.Equal(t, "2026-10-17", cal.Today)
	require.Len(t, cal.Days, 4)
	// Friday is in the past, Saturday and Sunday are weekend, Monday is open.
	assert.Equal(t, []bool{false, false, false, true},
		[]bool{cal.Days[0].Selectable, cal.Days[1].Selectable, cal.Days[2].Selectable, cal.Days[3].Selectable})

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/v1/booking/calendar?days=500", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/booking/calendar?from=2026-02-30", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

type sessionBody struct {
	ID          string `json:"id"`
	Step        int    `json:"step"`
	Submitting  bool   `json:"submitting"`
	CanContinue bool   `json:"can_continue"`
	CanConfirm  bool   `json:"can_confirm"`
	Draft       struct {
		Date     *string `json:"date"`
		TimeSlot string  `json:"time_slot"`
	} `json:"draft"`
	Summary struct {
		DateLong        string `json:"date_long"`
		AppointmentType string `json:"appointment_type"`
	} `json:"summary"`
}

type actionBody struct {
	Applied bool        `json:"applied"`
	Session sessionBody `json:"session"`
}

func startSession(t *testing.T, srv *httptest.Server) sessionBody {
	t.Helper()
	var s sessionBody
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/booking/sessions", "", &s)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, s.ID)
	return s
}

func act(t *testing.T, srv *httptest.Server, id, body string) actionBody {
	t.Helper()
	var out actionBody
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/booking/sessions/"+id+"/actions", body, &out)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return out
}

func TestBooking_WizardFlow(t *testing.T) {
	srv := newTestServer(t, booking.SimulatedSubmitter{})
	s := startSession(t, srv)
	assert.Equal(t, 1, s.Step)
	assert.False(t, s.CanContinue)

	out := act(t, srv, s.ID, `{"type":"continue"}`)
	assert.False(t, out.Applied, "continue without date and slot is inert")

	out = act(t, srv, s.ID, `{"type":"select_date","date":"2026-10-18"}`)
	assert.False(t, out.Applied, "Sunday is not selectable")

	out = act(t, srv, s.ID, `{"type":"select_date","date":"2026-10-19"}`)
	require.True(t, out.Applied)
	out = act(t, srv, s.ID, `{"type":"select_time_slot","value":"09:00"}`)
	require.True(t, out.Applied)
	assert.True(t, out.Session.CanContinue)

	out = act(t, srv, s.ID, `{"type":"continue"}`)
	require.True(t, out.Applied)
	assert.Equal(t, 2, out.Session.Step)
	assert.False(t, out.Session.CanConfirm)

	var early struct {
		Applied bool `json:"applied"`
	}
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/booking/sessions/"+s.ID+"/confirm", "", &early)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, early.Applied, "confirm without appointment type is inert")

	out = act(t, srv, s.ID, `{"type":"select_appointment_type","value":"1"}`)
	require.True(t, out.Applied)
	assert.True(t, out.Session.CanConfirm)
	assert.Equal(t, "lunes, 19 de octubre de 2026", out.Session.Summary.DateLong)
	assert.Equal(t, "Consulta inicial", out.Session.Summary.AppointmentType)

	var done struct {
		Applied  bool   `json:"applied"`
		Redirect string `json:"redirect"`
		Receipt  struct {
			ID string `json:"id"`
		} `json:"receipt"`
	}
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/booking/sessions/"+s.ID+"/confirm", "", &done)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, done.Applied)
	assert.Equal(t, "/dashboard/patient?success=true", done.Redirect)
	assert.NotEmpty(t, done.Receipt.ID)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/booking/sessions/"+s.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBooking_BackKeepsDraft(t *testing.T) {
	srv := newTestServer(t, booking.SimulatedSubmitter{})
	s := startSession(t, srv)
	act(t, srv, s.ID, `{"type":"select_date","date":"2026-10-19"}`)
	act(t, srv, s.ID, `{"type":"select_time_slot","value":"10:30"}`)
	act(t, srv, s.ID, `{"type":"continue"}`)

	out := act(t, srv, s.ID, `{"type":"back"}`)
	require.True(t, out.Applied)
	assert.Equal(t, 1, out.Session.Step)
	require.NotNil(t, out.Session.Draft.Date)
	assert.Equal(t, "2026-10-19", *out.Session.Draft.Date)
	assert.Equal(t, "10:30", out.Session.Draft.TimeSlot)
}

func TestBooking_BadRequests(t *testing.T) {
	srv := newTestServer(t, booking.SimulatedSubmitter{})
	s := startSession(t, srv)
	base := srv.URL + "/api/v1/booking/sessions/" + s.ID + "/actions"

	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{"type":`},
		{"unknown action", `{"type":"teleport"}`},
		{"unknown field", `{"type":"back","extra":1}`},
		{"missing date", `{"type":"select_date"}`},
		{"impossible date", `{"type":"select_date","date":"2026-02-30"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, base, tc.body, nil)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestBooking_UnknownSession(t *testing.T) {
	srv := newTestServer(t, booking.SimulatedSubmitter{})
	base := srv.URL + "/api/v1/booking/sessions/does-not-exist"

	assert.Equal(t, http.StatusNotFound, doJSON(t, http.MethodGet, base, "", nil).StatusCode)
	assert.Equal(t, http.StatusNotFound, doJSON(t, http.MethodDelete, base, "", nil).StatusCode)
	assert.Equal(t, http.StatusNotFound, doJSON(t, http.MethodPost, base+"/actions", `{"type":"back"}`, nil).StatusCode)
	assert.Equal(t, http.StatusNotFound, doJSON(t, http.MethodPost, base+"/confirm", "", nil).StatusCode)
}

func TestBooking_DiscardSession(t *testing.T) {
	srv := newTestServer(t, booking.SimulatedSubmitter{})
	s := startSession(t, srv)
	url := srv.URL + "/api/v1/booking/sessions/" + s.ID

	assert.Equal(t, http.StatusNoContent, doJSON(t, http.MethodDelete, url, "", nil).StatusCode)
	assert.Equal(t, http.StatusNotFound, doJSON(t, http.MethodGet, url, "", nil).StatusCode)
}

func TestBooking_SubmitFailureKeepsSession(t *testing.T) {
	srv := newTestServer(t, failingSubmitter{})
	s := startSession(t, srv)
	act(t, srv, s.ID, `{"type":"select_date","date":"2026-10-19"}`)
	act(t, srv, s.ID, `{"type":"select_time_slot","value":"09:00"}`)
	act(t, srv, s.ID, `{"type":"continue"}`)
	act(t, srv, s.ID, `{"type":"select_appointment_type","value":"2"}`)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/booking/sessions/"+s.ID+"/confirm", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var after sessionBody
	doJSON(t, http.MethodGet, srv.URL+"/api/v1/booking/sessions/"+s.ID, "", &after)
	assert.False(t, after.Submitting)
	assert.True(t, after.CanConfirm)
}

// flakyStore creates and reads sessions but cannot update them.
type flakyStore struct {
	*sessions.MemoryStore
}

func (flakyStore) Update(context.Context, string, sessions.UpdateFunc) (sessions.Session, error) {
	return sessions.Session{}, sessions.ErrContention
}

func TestBooking_ConfirmStoreFailureIsServerError(t *testing.T) {
	srv := newTestServerWithStore(t, flakyStore{sessions.NewMemoryStore(time.Hour)}, booking.SimulatedSubmitter{})
	s := startSession(t, srv)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/booking/sessions/"+s.ID+"/confirm", "", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
