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

type patientRepository struct {
	db *sqlx.DB
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (
			first_name, last_name, email, phone, date_of_birth,
			gender, address, medical_history, allergies,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query,
		patient.FirstName,
		patient.LastName,
		patient.Email,
		patient.Phone,
		patient.DateOfBirth,
		patient.Gender,
		patient.Address,
		patient.MedicalHistory,
		patient.Allergies,
		patient.CreatedAt,
		patient.UpdatedAt,
	).Scan(&patient.ID)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id int64) (*model.Patient, error) {
	query := `SELECT * FROM patients WHERE id = $1`
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("patient", err)
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET first_name = $1, last_name = $2, email = $3, phone = $4,
		    date_of_birth = $5, gender = $6, address = $7,
		    medical_history = $8, allergies = $9, updated_at = $10
		WHERE id = $11
	`
	res, err := r.db.ExecContext(ctx, query,
		patient.FirstName,
		patient.LastName,
		patient.Email,
		patient.Phone,
		patient.DateOfBirth,
		patient.Gender,
		patient.Address,
		patient.MedicalHistory,
		patient.Allergies,
		time.Now(),
		patient.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}
	return requireRow(res, "patient")
}

// Delete removes the patient and every dependent row in one transaction. The
// dependent deletes carry no inter-dependency, but a half-applied sequence
// would orphan billing and appointment rows, so any failure rolls the whole
// thing back.
func (r *patientRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin patient delete: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"medical_records", "prescriptions", "lab_results", "appointments", "billing"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE patient_id = $1`, table), id); err != nil {
			return fmt.Errorf("failed to delete patient %s: %w", table, err)
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	if err := requireRow(res, "patient"); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit patient delete: %w", err)
	}
	return nil
}

func (r *patientRepository) List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error) {
	query := `SELECT * FROM patients`
	args := []interface{}{}
	if filters != nil && filters.Search != "" {
		query += ` WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1`
		args = append(args, "%"+filters.Search+"%")
	}
	query += ` ORDER BY first_name, last_name`

	patients := []*model.Patient{}
	if err := r.db.SelectContext(ctx, &patients, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}
