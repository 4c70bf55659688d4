package model

import "time"

// Patient is a clinic-wide record: any authenticated doctor may create, read,
// update, or delete any patient. The shared patient directory vs. per-doctor
// clinical records asymmetry is deliberate.
type Patient struct {
	ID             int64      `json:"id" db:"id"`
	FirstName      string     `json:"first_name" db:"first_name"`
	LastName       string     `json:"last_name" db:"last_name"`
	Email          string     `json:"email" db:"email"`
	Phone          *string    `json:"phone,omitempty" db:"phone"`
	DateOfBirth    *time.Time `json:"date_of_birth,omitempty" db:"date_of_birth"`
	Gender         *string    `json:"gender,omitempty" db:"gender"`
	Address        *string    `json:"address,omitempty" db:"address"`
	MedicalHistory *string    `json:"medical_history,omitempty" db:"medical_history"`
	Allergies      *string    `json:"allergies,omitempty" db:"allergies"`
	Timestamps
}

func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// PatientForm is the add/edit patient form.
type PatientForm struct {
	FirstName      string `form:"first_name" binding:"required"`
	LastName       string `form:"last_name" binding:"required"`
	Email          string `form:"email" binding:"required,email"`
	Phone          string `form:"phone"`
	DateOfBirth    string `form:"date_of_birth" binding:"omitempty,dateonly"`
	Gender         string `form:"gender" binding:"omitempty,oneof=male female other"`
	Address        string `form:"address"`
	MedicalHistory string `form:"medical_history"`
	Allergies      string `form:"allergies"`
}

// PatientFilters narrows the patient directory listing.
type PatientFilters struct {
	Search string `form:"search"`
}
