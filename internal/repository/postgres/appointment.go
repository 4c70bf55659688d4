package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/clinicore/clinic-admin/internal/model"
	"github.com/clinicore/clinic-admin/internal/repository"
	apperrors "github.com/clinicore/clinic-admin/pkg/errors"
)

type appointmentRepository struct {
	db *sqlx.DB
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, apt *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			doctor_id, patient_id, appointment_date, appointment_time,
			status, reason, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	apt.CreatedAt = time.Now()
	apt.UpdatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query,
		apt.DoctorID,
		apt.PatientID,
		apt.AppointmentDate,
		apt.AppointmentTime,
		apt.Status,
		apt.Reason,
		apt.Notes,
		apt.CreatedAt,
		apt.UpdatedAt,
	).Scan(&apt.ID)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id, doctorID int64) (*model.Appointment, error) {
	query := `
		SELECT a.*, p.first_name AS patient_first_name, p.last_name AS patient_last_name
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
		WHERE a.id = $1 AND a.doctor_id = $2
	`
	var apt model.Appointment
	if err := r.db.GetContext(ctx, &apt, query, id, doctorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("appointment", err)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &apt, nil
}

func (r *appointmentRepository) Update(ctx context.Context, apt *model.Appointment) error {
	query := `
		UPDATE appointments
		SET patient_id = $1, appointment_date = $2, appointment_time = $3,
		    status = $4, reason = $5, notes = $6, updated_at = $7
		WHERE id = $8 AND doctor_id = $9
	`
	res, err := r.db.ExecContext(ctx, query,
		apt.PatientID,
		apt.AppointmentDate,
		apt.AppointmentTime,
		apt.Status,
		apt.Reason,
		apt.Notes,
		time.Now(),
		apt.ID,
		apt.DoctorID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}
	return requireRow(res, "appointment")
}

func (r *appointmentRepository) Delete(ctx context.Context, id, doctorID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1 AND doctor_id = $2`, id, doctorID)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	return requireRow(res, "appointment")
}

func (r *appointmentRepository) List(ctx context.Context, doctorID int64, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `
		SELECT a.*, p.first_name AS patient_first_name, p.last_name AS patient_last_name
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
		WHERE a.doctor_id = $1
	`
	args := []interface{}{doctorID}
	if filters != nil {
		if filters.Status != "" {
			args = append(args, filters.Status)
			query += fmt.Sprintf(" AND a.status = $%d", len(args))
		}
		if filters.Date != "" {
			args = append(args, filters.Date)
			query += fmt.Sprintf(" AND a.appointment_date = $%d", len(args))
		}
	}
	query += ` ORDER BY a.appointment_date DESC, a.appointment_time DESC`

	appointments := []*model.Appointment{}
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}
