package roster

import "strings"

// StatusFilter is the value of the roster's status select.
type StatusFilter string

const (
	FilterAll      StatusFilter = "all"
	FilterActive   StatusFilter = "activo"
	FilterInactive StatusFilter = "inactivo"
)

// ParseStatusFilter maps a request value to a filter. Empty means all; any
// other value is kept verbatim and compared against the record status.
func ParseStatusFilter(raw string) StatusFilter {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return FilterAll
	}
	return StatusFilter(raw)
}

// Filter returns the patients matching query and status, in roster order.
//
// Name, email and condition match case-insensitively. Phone is matched as a
// raw substring without case folding or normalization, so "5551234" does not
// match "(555) 123-4567".
func Filter(patients []Patient, query string, status StatusFilter) []Patient {
	out := make([]Patient, 0, len(patients))
	for _, p := range patients {
		if matchesQuery(p, query) && matchesStatus(p, status) {
			out = append(out, p)
		}
	}
	return out
}

func matchesQuery(p Patient, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Email), q) ||
		strings.Contains(p.Phone, query) ||
		strings.Contains(strings.ToLower(p.Condition), q)
}

func matchesStatus(p Patient, status StatusFilter) bool {
	return status == FilterAll || strings.ToLower(string(p.Status)) == strings.ToLower(string(status))
}
