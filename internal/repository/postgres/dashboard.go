package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/clinicore/clinic-admin/internal/model"
	"github.com/clinicore/clinic-admin/internal/repository"
)

type dashboardRepository struct {
	db *sqlx.DB
}

func NewDashboardRepository(db *sqlx.DB) repository.DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) Stats(ctx context.Context, doctorID int64) (*model.DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM appointments
			 WHERE doctor_id = $1 AND appointment_date = CURRENT_DATE) AS today_appointments,
			(SELECT COUNT(*) FROM patients) AS total_patients,
			(SELECT COUNT(*) FROM lab_results
			 WHERE doctor_id = $1 AND status = 'Pending') AS pending_lab_results,
			(SELECT COUNT(*) FROM prescriptions
			 WHERE doctor_id = $1 AND status = 'Active') AS active_prescriptions
	`
	var stats model.DashboardStats
	if err := r.db.GetContext(ctx, &stats, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to load dashboard stats: %w", err)
	}
	return &stats, nil
}

func (r *dashboardRepository) UpcomingAppointments(ctx context.Context, doctorID int64, limit int) ([]*model.Appointment, error) {
	query := `
		SELECT a.*, p.first_name AS patient_first_name, p.last_name AS patient_last_name
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
		WHERE a.doctor_id = $1 AND a.appointment_date >= CURRENT_DATE
		  AND a.status = $2
		ORDER BY a.appointment_date, a.appointment_time
		LIMIT $3
	`
	appointments := []*model.Appointment{}
	if err := r.db.SelectContext(ctx, &appointments, query, doctorID, model.AppointmentStatusScheduled, limit); err != nil {
		return nil, fmt.Errorf("failed to load upcoming appointments: %w", err)
	}
	return appointments, nil
}

func (r *dashboardRepository) ProfileStats(ctx context.Context, doctorID int64) (*model.ProfileStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM appointments WHERE doctor_id = $1) AS total_appointments,
			(SELECT COUNT(DISTINCT patient_id) FROM appointments WHERE doctor_id = $1) AS distinct_patients,
			(SELECT COUNT(*) FROM prescriptions WHERE doctor_id = $1) AS total_prescriptions
	`
	var stats model.ProfileStats
	if err := r.db.GetContext(ctx, &stats, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to load profile stats: %w", err)
	}
	return &stats, nil
}
