package appointments

// SampleAppointments returns the practice's appointment fixture. Patients and
// dates line up with the roster fixture.
func SampleAppointments() []Appointment {
	return []Appointment{
		{ID: "a1", PatientID: "5", PatientName: "Roberto Fernández", Date: "05-04-2023", Time: "10:00", Type: "Seguimiento", Status: StatusCompleted},
		{ID: "a2", PatientID: "3", PatientName: "Miguel Rodríguez", Date: "10-04-2023", Time: "11:30", Type: "Revisión de medicación", Status: StatusCompleted},
		{ID: "a3", PatientID: "1", PatientName: "Carlos García", Date: "15-04-2023", Time: "09:00", Type: "Terapia", Status: StatusCompleted},
		{ID: "a4", PatientID: "2", PatientName: "María López", Date: "20-04-2023", Time: "15:30", Type: "Consulta inicial", Status: StatusCompleted},
		{ID: "a5", PatientID: "4", PatientName: "Ana Martínez", Date: "25-04-2023", Time: "16:00", Type: "Seguimiento", Status: StatusCompleted},
		{ID: "a6", PatientID: "3", PatientName: "Miguel Rodríguez", Date: "02-05-2023", Time: "12:00", Type: "Seguimiento", Status: StatusCancelled},
		{ID: "a7", PatientID: "5", PatientName: "Roberto Fernández", Date: "05-05-2023", Time: "10:30", Type: "Terapia", Status: StatusUpcoming},
		{ID: "a8", PatientID: "1", PatientName: "Carlos García", Date: "10-05-2023", Time: "09:30", Type: "Terapia", Status: StatusUpcoming},
		{ID: "a9", PatientID: "2", PatientName: "María López", Date: "18-05-2023", Time: "15:00", Type: "Seguimiento", Status: StatusUpcoming},
		{ID: "a10", PatientID: "4", PatientName: "Ana Martínez", Date: "25-05-2023", Time: "16:30", Type: "Seguimiento", Status: StatusUpcoming},
	}
}
