package model

import "time"

// Prescription statuses
const (
	PrescriptionStatusActive    = "Active"
	PrescriptionStatusCompleted = "Completed"
	PrescriptionStatusCancelled = "Cancelled"
)

// Prescription belongs to one doctor and one patient. Prescriptions are
// created and deleted but never edited; a superseded prescription gets a
// replacement row.
type Prescription struct {
	ID               int64     `json:"id" db:"id"`
	DoctorID         int64     `json:"doctor_id" db:"doctor_id"`
	PatientID        int64     `json:"patient_id" db:"patient_id"`
	PrescriptionDate time.Time `json:"prescription_date" db:"prescription_date"`
	Medication       string    `json:"medication" db:"medication"`
	Dosage           *string   `json:"dosage,omitempty" db:"dosage"`
	Frequency        *string   `json:"frequency,omitempty" db:"frequency"`
	Duration         *string   `json:"duration,omitempty" db:"duration"`
	Instructions     *string   `json:"instructions,omitempty" db:"instructions"`
	Status           string    `json:"status" db:"status"`
	Timestamps

	PatientFirstName string `json:"patient_first_name,omitempty" db:"patient_first_name"`
	PatientLastName  string `json:"patient_last_name,omitempty" db:"patient_last_name"`
}

func (p *Prescription) PatientName() string {
	return p.PatientFirstName + " " + p.PatientLastName
}

// PrescriptionForm is the add prescription form.
type PrescriptionForm struct {
	PatientID        int64  `form:"patient_id" binding:"required,gt=0"`
	PrescriptionDate string `form:"prescription_date" binding:"required,dateonly"`
	Medication       string `form:"medication" binding:"required"`
	Dosage           string `form:"dosage"`
	Frequency        string `form:"frequency"`
	Duration         string `form:"duration"`
	Instructions     string `form:"instructions"`
}

// PrescriptionFilters narrows the prescription listing.
type PrescriptionFilters struct {
	Status string `form:"status" binding:"omitempty,oneof=Active Completed Cancelled"`
}
