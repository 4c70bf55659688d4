package model

import "time"

// Timestamps contains the audit columns shared by every table.
type Timestamps struct {
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// DateOnly is the wire format used by every date form field.
const DateOnly = "2006-01-02"

// TimeOnly is the wire format used by appointment time fields.
const TimeOnly = "15:04"
