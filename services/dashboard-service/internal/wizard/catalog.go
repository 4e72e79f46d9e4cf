package wizard

// AppointmentType is a bookable kind of consultation.
type AppointmentType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var timeSlots = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "12:00",
	"15:00", "15:30", "16:00", "16:30", "17:00",
}

var appointmentTypes = []AppointmentType{
	{ID: "1", Name: "Consulta inicial"},
	{ID: "2", Name: "Seguimiento"},
	{ID: "3", Name: "Terapia"},
	{ID: "4", Name: "Revisión de medicación"},
	{ID: "5", Name: "Consulta urgente"},
}

// TimeSlots returns the bookable half-hour labels. The list is the same for
// every date.
func TimeSlots() []string {
	return append([]string(nil), timeSlots...)
}

func AppointmentTypes() []AppointmentType {
	return append([]AppointmentType(nil), appointmentTypes...)
}

func IsTimeSlot(slot string) bool {
	for _, s := range timeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

func AppointmentTypeByID(id string) (AppointmentType, bool) {
	for _, t := range appointmentTypes {
		if t.ID == id {
			return t, true
		}
	}
	return AppointmentType{}, false
}
