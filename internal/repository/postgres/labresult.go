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

type labResultRepository struct {
	db *sqlx.DB
}

func NewLabResultRepository(db *sqlx.DB) repository.LabResultRepository {
	return &labResultRepository{db: db}
}

func (r *labResultRepository) Create(ctx context.Context, lr *model.LabResult) error {
	query := `
		INSERT INTO lab_results (
			doctor_id, patient_id, test_name, test_date,
			results, notes, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	lr.CreatedAt = time.Now()
	lr.UpdatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query,
		lr.DoctorID,
		lr.PatientID,
		lr.TestName,
		lr.TestDate,
		lr.Results,
		lr.Notes,
		lr.Status,
		lr.CreatedAt,
		lr.UpdatedAt,
	).Scan(&lr.ID)
	if err != nil {
		return fmt.Errorf("failed to create lab result: %w", err)
	}
	return nil
}

func (r *labResultRepository) Get(ctx context.Context, id, doctorID int64) (*model.LabResult, error) {
	query := `
		SELECT lr.*, p.first_name AS patient_first_name, p.last_name AS patient_last_name
		FROM lab_results lr
		JOIN patients p ON p.id = lr.patient_id
		WHERE lr.id = $1 AND lr.doctor_id = $2
	`
	var lr model.LabResult
	if err := r.db.GetContext(ctx, &lr, query, id, doctorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("lab result", err)
		}
		return nil, fmt.Errorf("failed to get lab result: %w", err)
	}
	return &lr, nil
}

func (r *labResultRepository) Update(ctx context.Context, lr *model.LabResult) error {
	query := `
		UPDATE lab_results
		SET patient_id = $1, test_name = $2, test_date = $3,
		    results = $4, notes = $5, status = $6, updated_at = $7
		WHERE id = $8 AND doctor_id = $9
	`
	res, err := r.db.ExecContext(ctx, query,
		lr.PatientID,
		lr.TestName,
		lr.TestDate,
		lr.Results,
		lr.Notes,
		lr.Status,
		time.Now(),
		lr.ID,
		lr.DoctorID,
	)
	if err != nil {
		return fmt.Errorf("failed to update lab result: %w", err)
	}
	return requireRow(res, "lab result")
}

func (r *labResultRepository) Delete(ctx context.Context, id, doctorID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM lab_results WHERE id = $1 AND doctor_id = $2`, id, doctorID)
	if err != nil {
		return fmt.Errorf("failed to delete lab result: %w", err)
	}
	return requireRow(res, "lab result")
}

func (r *labResultRepository) List(ctx context.Context, doctorID int64, filters *model.LabResultFilters) ([]*model.LabResult, error) {
	query := `
		SELECT lr.*, p.first_name AS patient_first_name, p.last_name AS patient_last_name
		FROM lab_results lr
		JOIN patients p ON p.id = lr.patient_id
		WHERE lr.doctor_id = $1
	`
	args := []interface{}{doctorID}
	if filters != nil && filters.Status != "" {
		args = append(args, filters.Status)
		query += fmt.Sprintf(" AND lr.status = $%d", len(args))
	}
	query += ` ORDER BY lr.test_date DESC, lr.id DESC`

	results := []*model.LabResult{}
	if err := r.db.SelectContext(ctx, &results, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list lab results: %w", err)
	}
	return results, nil
}
