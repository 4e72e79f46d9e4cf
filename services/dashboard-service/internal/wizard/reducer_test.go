package wizard

import "testing"

func apply(t *testing.T, s State, a Action, wantApplied bool) State {
	t.Helper()
	next, applied := Apply(s, a, saturdayNoon)
	if applied != wantApplied {
		t.Fatalf("Apply(%s) applied=%v, want %v (state %+v)", a.Type, applied, wantApplied, s)
	}
	if !applied && !statesEqual(next, s) {
		t.Fatalf("inert action %s changed state", a.Type)
	}
	return next
}

func statesEqual(a, b State) bool {
	if a.Step != b.Step || a.Submitting != b.Submitting {
		return false
	}
	if (a.Draft.Date == nil) != (b.Draft.Date == nil) {
		return false
	}
	if a.Draft.Date != nil && *a.Draft.Date != *b.Draft.Date {
		return false
	}
	return a.Draft.TimeSlot == b.Draft.TimeSlot &&
		a.Draft.AppointmentTypeID == b.Draft.AppointmentTypeID &&
		a.Draft.Notes == b.Draft.Notes
}

func TestWizard_BookingScenario(t *testing.T) {
	monday := mustDate(t, "2026-10-19")

	s := New()
	if s.CanContinue() {
		t.Fatal("continue must start disabled")
	}
	s = apply(t, s, Action{Type: ActionSelectDate, Date: monday}, true)
	if s.CanContinue() {
		t.Fatal("continue must stay disabled without a slot")
	}
	s = apply(t, s, Action{Type: ActionSelectTimeSlot, Value: "09:00"}, true)
	if !s.CanContinue() {
		t.Fatal("continue must be enabled with date and slot")
	}

	s = apply(t, s, Action{Type: ActionContinue}, true)
	if s.Step != StepDetails {
		t.Fatalf("expected details step, got %s", s.Step)
	}
	if s.CanConfirm() {
		t.Fatal("confirm must be disabled without appointment type")
	}

	s = apply(t, s, Action{Type: ActionSelectAppointmentType, Value: "1"}, true)
	if !s.CanConfirm() {
		t.Fatal("confirm must be enabled once the type is chosen")
	}

	s, ok := BeginSubmit(s)
	if !ok || !s.Submitting {
		t.Fatal("expected submission to start")
	}
	if s.CanConfirm() {
		t.Fatal("confirm must be disabled while submitting")
	}
	if _, again := BeginSubmit(s); again {
		t.Fatal("second submission must be inert while in flight")
	}
	if s = EndSubmit(s); !s.CanConfirm() {
		t.Fatal("confirm must be enabled again after a failed submission")
	}
}

func TestWizard_ContinueRequiresDateAndSlot(t *testing.T) {
	monday := mustDate(t, "2026-10-19")

	s := apply(t, New(), Action{Type: ActionContinue}, false)

	// No slot can be picked before a date.
	s = apply(t, s, Action{Type: ActionSelectTimeSlot, Value: "10:00"}, false)

	s = apply(t, s, Action{Type: ActionSelectDate, Date: monday}, true)
	s = apply(t, s, Action{Type: ActionContinue}, false)
	s = apply(t, s, Action{Type: ActionSelectTimeSlot, Value: "10:00"}, true)

	// Clearing the date keeps the slot but disables continue.
	s = apply(t, s, Action{Type: ActionClearDate}, true)
	if s.Draft.TimeSlot != "10:00" {
		t.Fatalf("expected slot kept, got %q", s.Draft.TimeSlot)
	}
	apply(t, s, Action{Type: ActionContinue}, false)
}

func TestWizard_RejectsInvalidSelections(t *testing.T) {
	s := New()
	apply(t, s, Action{Type: ActionSelectDate, Date: mustDate(t, "2026-10-18")}, false) // Sunday
	apply(t, s, Action{Type: ActionSelectDate, Date: mustDate(t, "2026-10-16")}, false) // past
	s = apply(t, s, Action{Type: ActionSelectDate, Date: mustDate(t, "2026-10-20")}, true)
	apply(t, s, Action{Type: ActionSelectTimeSlot, Value: "13:00"}, false)
	apply(t, s, Action{Type: ActionSelectTimeSlot, Value: ""}, false)
	apply(t, s, Action{Type: ActionType("teleport")}, false)
}

func TestWizard_FieldsAreStepBound(t *testing.T) {
	s := New()
	apply(t, s, Action{Type: ActionSelectAppointmentType, Value: "2"}, false)
	apply(t, s, Action{Type: ActionSetNotes, Value: "dolor de cabeza"}, false)
	apply(t, s, Action{Type: ActionBack}, false)

	s = apply(t, s, Action{Type: ActionSelectDate, Date: mustDate(t, "2026-10-19")}, true)
	s = apply(t, s, Action{Type: ActionSelectTimeSlot, Value: "15:30"}, true)
	s = apply(t, s, Action{Type: ActionContinue}, true)

	apply(t, s, Action{Type: ActionSelectDate, Date: mustDate(t, "2026-10-20")}, false)
	apply(t, s, Action{Type: ActionSelectTimeSlot, Value: "09:00"}, false)
	apply(t, s, Action{Type: ActionClearDate}, false)
	apply(t, s, Action{Type: ActionContinue}, false)
	apply(t, s, Action{Type: ActionSelectAppointmentType, Value: "9"}, false)
}

func TestWizard_BackKeepsDraft(t *testing.T) {
	s := New()
	s = apply(t, s, Action{Type: ActionSelectDate, Date: mustDate(t, "2026-10-22")}, true)
	s = apply(t, s, Action{Type: ActionSelectTimeSlot, Value: "11:30"}, true)
	s = apply(t, s, Action{Type: ActionContinue}, true)
	s = apply(t, s, Action{Type: ActionSelectAppointmentType, Value: "3"}, true)
	s = apply(t, s, Action{Type: ActionSetNotes, Value: "traer informes"}, true)

	s = apply(t, s, Action{Type: ActionBack}, true)
	if s.Step != StepDateTime {
		t.Fatalf("expected first step, got %s", s.Step)
	}
	if s.Draft.Date == nil || s.Draft.Date.String() != "2026-10-22" || s.Draft.TimeSlot != "11:30" ||
		s.Draft.AppointmentTypeID != "3" || s.Draft.Notes != "traer informes" {
		t.Fatalf("draft lost on back: %+v", s.Draft)
	}
	if !s.CanContinue() {
		t.Fatal("continue must be enabled again after going back")
	}

	s = apply(t, s, Action{Type: ActionContinue}, true)
	if !s.CanConfirm() {
		t.Fatal("confirm must be enabled with the kept type")
	}
}

func TestApplyDoesNotAliasPreviousState(t *testing.T) {
	first, _ := Apply(New(), Action{Type: ActionSelectDate, Date: mustDate(t, "2026-10-19")}, saturdayNoon)
	second, _ := Apply(first, Action{Type: ActionSelectDate, Date: mustDate(t, "2026-10-20")}, saturdayNoon)
	if first.Draft.Date.String() != "2026-10-19" || second.Draft.Date.String() != "2026-10-20" {
		t.Fatalf("states share the date: %s %s", first.Draft.Date, second.Draft.Date)
	}
}

func TestParseActionType(t *testing.T) {
	if got, err := ParseActionType("select_time_slot"); err != nil || got != ActionSelectTimeSlot {
		t.Fatalf("unexpected %q %v", got, err)
	}
	if _, err := ParseActionType("submit"); err == nil {
		t.Fatal("expected error for unknown action")
	}
}

func TestSummarize(t *testing.T) {
	d := mustDate(t, "2026-10-19")
	got := Summarize(Draft{Date: &d, TimeSlot: "09:00", AppointmentTypeID: "4"})
	if got.DateLong != "lunes, 19 de octubre de 2026" {
		t.Fatalf("unexpected long date %q", got.DateLong)
	}
	if got.Date != "19 de octubre de 2026" {
		t.Fatalf("unexpected date %q", got.Date)
	}
	if got.AppointmentType != "Revisión de medicación" || got.TimeSlot != "09:00" {
		t.Fatalf("unexpected summary %+v", got)
	}
	if empty := Summarize(Draft{}); empty != (Summary{}) {
		t.Fatalf("expected empty summary, got %+v", empty)
	}
}

func TestCatalogsAreCopies(t *testing.T) {
	slots := TimeSlots()
	slots[0] = "08:00"
	if !IsTimeSlot("09:00") || IsTimeSlot("08:00") {
		t.Fatal("mutating the returned slots must not change the catalog")
	}
	if len(AppointmentTypes()) != 5 {
		t.Fatal("expected five appointment types")
	}
}
