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

// ErrDuplicateEmail is returned when a doctor registers with an email that is
// already taken.
var ErrDuplicateEmail = errors.New("email already registered")

type doctorRepository struct {
	db *sqlx.DB
}

func NewDoctorRepository(db *sqlx.DB) repository.DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (
			first_name, last_name, email, password,
			clinic_name, clinic_type, phone, specialization,
			status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	doctor.Status = model.DoctorStatusActive
	doctor.CreatedAt = time.Now()
	doctor.UpdatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query,
		doctor.FirstName,
		doctor.LastName,
		doctor.Email,
		doctor.PasswordHash,
		doctor.ClinicName,
		doctor.ClinicType,
		doctor.Phone,
		doctor.Specialization,
		doctor.Status,
		doctor.CreatedAt,
		doctor.UpdatedAt,
	).Scan(&doctor.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	query := `SELECT * FROM doctors WHERE id = $1`
	var doctor model.Doctor
	if err := r.db.GetContext(ctx, &doctor, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("doctor", err)
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) GetByEmail(ctx context.Context, email string) (*model.Doctor, error) {
	query := `SELECT * FROM doctors WHERE email = $1`
	var doctor model.Doctor
	if err := r.db.GetContext(ctx, &doctor, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("doctor", err)
		}
		return nil, fmt.Errorf("failed to get doctor by email: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) UpdateProfile(ctx context.Context, doctor *model.Doctor) error {
	query := `
		UPDATE doctors
		SET first_name = $1, last_name = $2, phone = $3, specialization = $4,
		    clinic_name = $5, clinic_type = $6, updated_at = $7
		WHERE id = $8
	`
	res, err := r.db.ExecContext(ctx, query,
		doctor.FirstName,
		doctor.LastName,
		doctor.Phone,
		doctor.Specialization,
		doctor.ClinicName,
		doctor.ClinicType,
		time.Now(),
		doctor.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update doctor profile: %w", err)
	}
	return requireRow(res, "doctor")
}

func (r *doctorRepository) UpdateRememberToken(ctx context.Context, id int64, series *string, expires *time.Time) error {
	query := `UPDATE doctors SET remember_token = $1, token_expires = $2, updated_at = $3 WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, series, expires, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update remember token: %w", err)
	}
	return requireRow(res, "doctor")
}

func (r *doctorRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	query := `UPDATE doctors SET last_login = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, at, id)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return requireRow(res, "doctor")
}
