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

type prescriptionRepository struct {
	db *sqlx.DB
}

func NewPrescriptionRepository(db *sqlx.DB) repository.PrescriptionRepository {
	return &prescriptionRepository{db: db}
}

func (r *prescriptionRepository) Create(ctx context.Context, rx *model.Prescription) error {
	query := `
		INSERT INTO prescriptions (
			doctor_id, patient_id, prescription_date, medication,
			dosage, frequency, duration, instructions, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	rx.CreatedAt = time.Now()
	rx.UpdatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query,
		rx.DoctorID,
		rx.PatientID,
		rx.PrescriptionDate,
		rx.Medication,
		rx.Dosage,
		rx.Frequency,
		rx.Duration,
		rx.Instructions,
		rx.Status,
		rx.CreatedAt,
		rx.UpdatedAt,
	).Scan(&rx.ID)
	if err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}
	return nil
}

func (r *prescriptionRepository) Get(ctx context.Context, id, doctorID int64) (*model.Prescription, error) {
	query := `
		SELECT pr.*, p.first_name AS patient_first_name, p.last_name AS patient_last_name
		FROM prescriptions pr
		JOIN patients p ON p.id = pr.patient_id
		WHERE pr.id = $1 AND pr.doctor_id = $2
	`
	var rx model.Prescription
	if err := r.db.GetContext(ctx, &rx, query, id, doctorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("prescription", err)
		}
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}
	return &rx, nil
}

func (r *prescriptionRepository) Delete(ctx context.Context, id, doctorID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM prescriptions WHERE id = $1 AND doctor_id = $2`, id, doctorID)
	if err != nil {
		return fmt.Errorf("failed to delete prescription: %w", err)
	}
	return requireRow(res, "prescription")
}

func (r *prescriptionRepository) List(ctx context.Context, doctorID int64, filters *model.PrescriptionFilters) ([]*model.Prescription, error) {
	query := `
		SELECT pr.*, p.first_name AS patient_first_name, p.last_name AS patient_last_name
		FROM prescriptions pr
		JOIN patients p ON p.id = pr.patient_id
		WHERE pr.doctor_id = $1
	`
	args := []interface{}{doctorID}
	if filters != nil && filters.Status != "" {
		args = append(args, filters.Status)
		query += fmt.Sprintf(" AND pr.status = $%d", len(args))
	}
	query += ` ORDER BY pr.prescription_date DESC, pr.id DESC`

	prescriptions := []*model.Prescription{}
	if err := r.db.SelectContext(ctx, &prescriptions, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return prescriptions, nil
}
