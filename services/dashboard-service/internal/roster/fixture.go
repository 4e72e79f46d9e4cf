package roster

func strptr(s string) *string { return &s }

// SamplePatients returns a fresh copy of the practice's roster fixture.
func SamplePatients() []Patient {
	return []Patient{
		{
			ID:              "1",
			Name:            "Carlos García",
			Email:           "carlos.garcia@ejemplo.com",
			Phone:           "(555) 123-4567",
			LastAppointment: "15-04-2023",
			NextAppointment: strptr("10-05-2023"),
			Status:          StatusActive,
			Condition:       "Secuelas de ACV",
		},
		{
			ID:              "2",
			Name:            "María López",
			Email:           "maria.lopez@ejemplo.com",
			Phone:           "(555) 987-6543",
			LastAppointment: "20-04-2023",
			NextAppointment: strptr("18-05-2023"),
			Status:          StatusActive,
			Condition:       "Deterioro cognitivo leve",
		},
		{
			ID:              "3",
			Name:            "Miguel Rodríguez",
			Email:           "miguel.r@ejemplo.com",
			Phone:           "(555) 456-7890",
			LastAppointment: "10-04-2023",
			Status:          StatusInactive,
			Condition:       "TDAH",
		},
		{
			ID:              "4",
			Name:            "Ana Martínez",
			Email:           "ana.m@ejemplo.com",
			Phone:           "(555) 789-0123",
			LastAppointment: "25-04-2023",
			NextAppointment: strptr("25-05-2023"),
			Status:          StatusActive,
			Condition:       "Dislexia",
		},
		{
			ID:              "5",
			Name:            "Roberto Fernández",
			Email:           "roberto.f@ejemplo.com",
			Phone:           "(555) 234-5678",
			LastAppointment: "05-04-2023",
			NextAppointment: strptr("05-05-2023"),
			Status:          StatusActive,
			Condition:       "Traumatismo craneoencefálico",
		},
	}
}
