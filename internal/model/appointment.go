package model

import "time"

// Appointment statuses. The canonical set is what the edit form writes;
// the column default is Scheduled.
const (
	AppointmentStatusScheduled  = "Scheduled"
	AppointmentStatusInProgress = "In Progress"
	AppointmentStatusCompleted  = "Completed"
	AppointmentStatusCancelled  = "Cancelled"
)

// Appointment belongs to exactly one doctor and one patient.
type Appointment struct {
	ID              int64     `json:"id" db:"id"`
	DoctorID        int64     `json:"doctor_id" db:"doctor_id"`
	PatientID       int64     `json:"patient_id" db:"patient_id"`
	AppointmentDate time.Time `json:"appointment_date" db:"appointment_date"`
	AppointmentTime string    `json:"appointment_time" db:"appointment_time"`
	Status          string    `json:"status" db:"status"`
	Reason          *string   `json:"reason,omitempty" db:"reason"`
	Notes           *string   `json:"notes,omitempty" db:"notes"`
	Timestamps

	// Joined display fields, populated by list/detail queries only.
	PatientFirstName string `json:"patient_first_name,omitempty" db:"patient_first_name"`
	PatientLastName  string `json:"patient_last_name,omitempty" db:"patient_last_name"`
}

func (a *Appointment) PatientName() string {
	return a.PatientFirstName + " " + a.PatientLastName
}

// AppointmentForm is the schedule/edit appointment form. The doctor id is
// never part of the form; it is forced from the session.
type AppointmentForm struct {
	PatientID       int64  `form:"patient_id" binding:"required,gt=0"`
	AppointmentDate string `form:"appointment_date" binding:"required,dateonly"`
	AppointmentTime string `form:"appointment_time" binding:"required,timeonly"`
	Status          string `form:"status" binding:"omitempty,oneof=Scheduled 'In Progress' Completed Cancelled"`
	Reason          string `form:"reason"`
	Notes           string `form:"notes"`
}

// AppointmentFilters narrows the appointment listing.
type AppointmentFilters struct {
	Status string `form:"status" binding:"omitempty,oneof=Scheduled 'In Progress' Completed Cancelled"`
	Date   string `form:"date" binding:"omitempty,dateonly"`
}
