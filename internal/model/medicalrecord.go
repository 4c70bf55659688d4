package model

import "time"

// Medical record statuses
const (
	MedicalRecordStatusActive    = "Active"
	MedicalRecordStatusCompleted = "Completed"
	MedicalRecordStatusArchived  = "Archived"
)

// MedicalRecord is a visit note: the diagnosis and treatment a doctor recorded
// for one patient, with an optional follow-up date. Full CRUD plus a read-only
// detail page.
type MedicalRecord struct {
	ID           int64      `json:"id" db:"id"`
	DoctorID     int64      `json:"doctor_id" db:"doctor_id"`
	PatientID    int64      `json:"patient_id" db:"patient_id"`
	Diagnosis    string     `json:"diagnosis" db:"diagnosis"`
	Treatment    string     `json:"treatment" db:"treatment"`
	Notes        *string    `json:"notes,omitempty" db:"notes"`
	RecordDate   time.Time  `json:"record_date" db:"record_date"`
	FollowUpDate *time.Time `json:"follow_up_date,omitempty" db:"follow_up_date"`
	Status       string     `json:"status" db:"status"`
	Timestamps

	PatientFirstName string `json:"patient_first_name,omitempty" db:"patient_first_name"`
	PatientLastName  string `json:"patient_last_name,omitempty" db:"patient_last_name"`
}

func (m *MedicalRecord) PatientName() string {
	return m.PatientFirstName + " " + m.PatientLastName
}

// MedicalRecordForm is the add/edit medical record form.
type MedicalRecordForm struct {
	PatientID    int64  `form:"patient_id" binding:"required,gt=0"`
	Diagnosis    string `form:"diagnosis" binding:"required"`
	Treatment    string `form:"treatment" binding:"required"`
	Notes        string `form:"notes"`
	RecordDate   string `form:"record_date" binding:"required,dateonly"`
	FollowUpDate string `form:"follow_up_date" binding:"omitempty,dateonly"`
	Status       string `form:"status" binding:"omitempty,oneof=Active Completed Archived"`
}

// MedicalRecordFilters narrows the medical record listing.
type MedicalRecordFilters struct {
	Status string `form:"status" binding:"omitempty,oneof=Active Completed Archived"`
}
