package wizard

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day without time of day or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses YYYY-MM-DD and rejects impossible days such as 2026-02-30.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// In returns midnight of d in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) Weekday() time.Weekday {
	return d.In(time.UTC).Weekday()
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.In(time.UTC).AddDate(0, 0, n))
}

func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

func (d Date) String() string {
	return d.In(time.UTC).Format(dateLayout)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Selectable reports whether d may be picked in the booking calendar: not
// before the start of today (in now's location) and a Monday to Friday.
// Existing bookings are not considered.
func Selectable(d Date, now time.Time) bool {
	startOfToday := DateOf(now).In(now.Location())
	if d.In(now.Location()).Before(startOfToday) {
		return false
	}
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	default:
		return true
	}
}

// CalendarDay is one cell of the booking calendar.
type CalendarDay struct {
	Date       Date `json:"date"`
	Selectable bool `json:"selectable"`
}

// Calendar lists days consecutive days starting at from with their
// selectability.
func Calendar(from Date, days int, now time.Time) []CalendarDay {
	if days <= 0 {
		return nil
	}
	out := make([]CalendarDay, 0, days)
	for i := 0; i < days; i++ {
		d := from.AddDays(i)
		out = append(out, CalendarDay{Date: d, Selectable: Selectable(d, now)})
	}
	return out
}
