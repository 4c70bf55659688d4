package repository

import (
	"context"
	"time"

	"github.com/clinicore/clinic-admin/internal/model"
)

// All repository interfaces in one file.
//
// Every method on an owned entity (appointments, prescriptions, lab results,
// billing) takes the owning doctor id explicitly: the ownership predicate is
// part of the query, not a check layered on top. A detail/update/delete that
// matches zero rows reports NotFound whether the row is absent or owned by a
// different doctor.
type (
	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id int64) (*model.Doctor, error)
		GetByEmail(ctx context.Context, email string) (*model.Doctor, error)
		UpdateProfile(ctx context.Context, doctor *model.Doctor) error
		UpdateRememberToken(ctx context.Context, id int64, series *string, expires *time.Time) error
		UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id int64) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		// Delete removes the patient together with every dependent medical
		// record, prescription, lab result, appointment, and billing row in
		// one transaction. Either everything goes or nothing does.
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error)
	}

	MedicalRecordRepository interface {
		Create(ctx context.Context, mr *model.MedicalRecord) error
		Get(ctx context.Context, id, doctorID int64) (*model.MedicalRecord, error)
		Update(ctx context.Context, mr *model.MedicalRecord) error
		Delete(ctx context.Context, id, doctorID int64) error
		List(ctx context.Context, doctorID int64, filters *model.MedicalRecordFilters) ([]*model.MedicalRecord, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, apt *model.Appointment) error
		Get(ctx context.Context, id, doctorID int64) (*model.Appointment, error)
		Update(ctx context.Context, apt *model.Appointment) error
		Delete(ctx context.Context, id, doctorID int64) error
		List(ctx context.Context, doctorID int64, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	}

	PrescriptionRepository interface {
		Create(ctx context.Context, rx *model.Prescription) error
		Get(ctx context.Context, id, doctorID int64) (*model.Prescription, error)
		Delete(ctx context.Context, id, doctorID int64) error
		List(ctx context.Context, doctorID int64, filters *model.PrescriptionFilters) ([]*model.Prescription, error)
	}

	LabResultRepository interface {
		Create(ctx context.Context, lr *model.LabResult) error
		Get(ctx context.Context, id, doctorID int64) (*model.LabResult, error)
		Update(ctx context.Context, lr *model.LabResult) error
		Delete(ctx context.Context, id, doctorID int64) error
		List(ctx context.Context, doctorID int64, filters *model.LabResultFilters) ([]*model.LabResult, error)
	}

	BillingRepository interface {
		Create(ctx context.Context, bill *model.Billing) error
		Get(ctx context.Context, id, doctorID int64) (*model.Billing, error)
		Update(ctx context.Context, bill *model.Billing) error
		Delete(ctx context.Context, id, doctorID int64) error
		List(ctx context.Context, doctorID int64, filters *model.BillingFilters) ([]*model.Billing, error)
	}

	DashboardRepository interface {
		Stats(ctx context.Context, doctorID int64) (*model.DashboardStats, error)
		UpcomingAppointments(ctx context.Context, doctorID int64, limit int) ([]*model.Appointment, error)
		ProfileStats(ctx context.Context, doctorID int64) (*model.ProfileStats, error)
	}
)
