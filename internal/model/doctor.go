package model

import "time"

// Doctor statuses
const (
	DoctorStatusActive    = "active"
	DoctorStatusInactive  = "inactive"
	DoctorStatusSuspended = "suspended"
)

// Doctor is the single authenticated actor in the system. It owns clinical
// records (appointments, prescriptions, lab results, billing) but not
// patients, which are clinic-wide.
type Doctor struct {
	ID             int64      `json:"id" db:"id"`
	FirstName      string     `json:"first_name" db:"first_name"`
	LastName       string     `json:"last_name" db:"last_name"`
	Email          string     `json:"email" db:"email"`
	PasswordHash   string     `json:"-" db:"password"`
	ClinicName     *string    `json:"clinic_name,omitempty" db:"clinic_name"`
	ClinicType     *string    `json:"clinic_type,omitempty" db:"clinic_type"`
	Phone          *string    `json:"phone,omitempty" db:"phone"`
	Specialization *string    `json:"specialization,omitempty" db:"specialization"`
	RememberSeries *string    `json:"-" db:"remember_token"`
	TokenExpires   *time.Time `json:"-" db:"token_expires"`
	LastLogin      *time.Time `json:"last_login,omitempty" db:"last_login"`
	Status         string     `json:"status" db:"status"`
	Timestamps
}

func (d *Doctor) FullName() string {
	return d.FirstName + " " + d.LastName
}

// LoginRequest is the login form.
type LoginRequest struct {
	Email      string `form:"email" binding:"required,email"`
	Password   string `form:"password" binding:"required"`
	RememberMe bool   `form:"remember_me"`
}

// RegisterRequest is the doctor signup form.
type RegisterRequest struct {
	FirstName       string `form:"first_name" binding:"required"`
	LastName        string `form:"last_name" binding:"required"`
	Email           string `form:"email" binding:"required,email"`
	Password        string `form:"password" binding:"required,min=8"`
	ConfirmPassword string `form:"confirm_password" binding:"required,eqfield=Password"`
	ClinicName      string `form:"clinic_name"`
	ClinicType      string `form:"clinic_type" binding:"omitempty,oneof=general specialist dental pediatric other"`
	Phone           string `form:"phone"`
	Specialization  string `form:"specialization"`
}

// UpdateProfileRequest is the profile edit form.
type UpdateProfileRequest struct {
	FirstName      string `form:"first_name" binding:"required"`
	LastName       string `form:"last_name" binding:"required"`
	Phone          string `form:"phone"`
	Specialization string `form:"specialization"`
	ClinicName     string `form:"clinic_name"`
	ClinicType     string `form:"clinic_type" binding:"omitempty,oneof=general specialist dental pediatric other"`
}
