package model

import "time"

// Billing payment statuses
const (
	PaymentStatusPending   = "Pending"
	PaymentStatusPaid      = "Paid"
	PaymentStatusCancelled = "Cancelled"
)

// Billing belongs to one doctor and one patient, optionally linked to one
// appointment. The appointment link survives appointment deletion as NULL.
type Billing struct {
	ID            int64      `json:"id" db:"id"`
	DoctorID      int64      `json:"doctor_id" db:"doctor_id"`
	PatientID     int64      `json:"patient_id" db:"patient_id"`
	AppointmentID *int64     `json:"appointment_id,omitempty" db:"appointment_id"`
	Amount        float64    `json:"amount" db:"amount"`
	PaymentMethod string     `json:"payment_method" db:"payment_method"`
	PaymentStatus string     `json:"payment_status" db:"payment_status"`
	PaymentDate   *time.Time `json:"payment_date,omitempty" db:"payment_date"`
	Notes         *string    `json:"notes,omitempty" db:"notes"`
	Timestamps

	PatientFirstName string     `json:"patient_first_name,omitempty" db:"patient_first_name"`
	PatientLastName  string     `json:"patient_last_name,omitempty" db:"patient_last_name"`
	AppointmentDate  *time.Time `json:"appointment_date,omitempty" db:"appointment_date"`
}

func (b *Billing) PatientName() string {
	return b.PatientFirstName + " " + b.PatientLastName
}

// BillingForm is the add/edit billing form. Amount must be a strictly
// positive number; a non-numeric value fails form binding before validation.
type BillingForm struct {
	PatientID     int64   `form:"patient_id" binding:"required,gt=0"`
	AppointmentID int64   `form:"appointment_id" binding:"omitempty,gt=0"`
	Amount        float64 `form:"amount" binding:"required,gt=0"`
	PaymentMethod string  `form:"payment_method" binding:"required"`
	PaymentStatus string  `form:"payment_status" binding:"omitempty,oneof=Pending Paid Cancelled"`
	PaymentDate   string  `form:"payment_date" binding:"omitempty,dateonly"`
	Notes         string  `form:"notes"`
}

// BillingFilters narrows the billing listing.
type BillingFilters struct {
	Status string `form:"status" binding:"omitempty,oneof=Pending Paid Cancelled"`
}
