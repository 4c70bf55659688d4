package model

import "time"

// Lab result statuses
const (
	LabResultStatusPending   = "Pending"
	LabResultStatusCompleted = "Completed"
	LabResultStatusCancelled = "Cancelled"
)

// LabResult belongs to one doctor and one patient. Full CRUD.
type LabResult struct {
	ID        int64     `json:"id" db:"id"`
	DoctorID  int64     `json:"doctor_id" db:"doctor_id"`
	PatientID int64     `json:"patient_id" db:"patient_id"`
	TestName  string    `json:"test_name" db:"test_name"`
	TestDate  time.Time `json:"test_date" db:"test_date"`
	Results   *string   `json:"results,omitempty" db:"results"`
	Notes     *string   `json:"notes,omitempty" db:"notes"`
	Status    string    `json:"status" db:"status"`
	Timestamps

	PatientFirstName string `json:"patient_first_name,omitempty" db:"patient_first_name"`
	PatientLastName  string `json:"patient_last_name,omitempty" db:"patient_last_name"`
}

func (l *LabResult) PatientName() string {
	return l.PatientFirstName + " " + l.PatientLastName
}

// LabResultForm is the add/edit lab result form.
type LabResultForm struct {
	PatientID int64  `form:"patient_id" binding:"required,gt=0"`
	TestName  string `form:"test_name" binding:"required"`
	TestDate  string `form:"test_date" binding:"required,dateonly"`
	Results   string `form:"results"`
	Notes     string `form:"notes"`
	Status    string `form:"status" binding:"omitempty,oneof=Pending Completed Cancelled"`
}

// LabResultFilters narrows the lab result listing.
type LabResultFilters struct {
	Status string `form:"status" binding:"omitempty,oneof=Pending Completed Cancelled"`
}
