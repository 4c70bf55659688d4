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

type medicalRecordRepository struct {
	db *sqlx.DB
}

func NewMedicalRecordRepository(db *sqlx.DB) repository.MedicalRecordRepository {
	return &medicalRecordRepository{db: db}
}

func (r *medicalRecordRepository) Create(ctx context.Context, mr *model.MedicalRecord) error {
	query := `
		INSERT INTO medical_records (
			doctor_id, patient_id, diagnosis, treatment,
			notes, record_date, follow_up_date, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	mr.CreatedAt = time.Now()
	mr.UpdatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query,
		mr.DoctorID,
		mr.PatientID,
		mr.Diagnosis,
		mr.Treatment,
		mr.Notes,
		mr.RecordDate,
		mr.FollowUpDate,
		mr.Status,
		mr.CreatedAt,
		mr.UpdatedAt,
	).Scan(&mr.ID)
	if err != nil {
		return fmt.Errorf("failed to create medical record: %w", err)
	}
	return nil
}

func (r *medicalRecordRepository) Get(ctx context.Context, id, doctorID int64) (*model.MedicalRecord, error) {
	query := `
		SELECT mr.*, p.first_name AS patient_first_name, p.last_name AS patient_last_name
		FROM medical_records mr
		JOIN patients p ON p.id = mr.patient_id
		WHERE mr.id = $1 AND mr.doctor_id = $2
	`
	var mr model.MedicalRecord
	if err := r.db.GetContext(ctx, &mr, query, id, doctorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("medical record", err)
		}
		return nil, fmt.Errorf("failed to get medical record: %w", err)
	}
	return &mr, nil
}

func (r *medicalRecordRepository) Update(ctx context.Context, mr *model.MedicalRecord) error {
	query := `
		UPDATE medical_records
		SET patient_id = $1, diagnosis = $2, treatment = $3, notes = $4,
		    record_date = $5, follow_up_date = $6, status = $7, updated_at = $8
		WHERE id = $9 AND doctor_id = $10
	`
	res, err := r.db.ExecContext(ctx, query,
		mr.PatientID,
		mr.Diagnosis,
		mr.Treatment,
		mr.Notes,
		mr.RecordDate,
		mr.FollowUpDate,
		mr.Status,
		time.Now(),
		mr.ID,
		mr.DoctorID,
	)
	if err != nil {
		return fmt.Errorf("failed to update medical record: %w", err)
	}
	return requireRow(res, "medical record")
}

func (r *medicalRecordRepository) Delete(ctx context.Context, id, doctorID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM medical_records WHERE id = $1 AND doctor_id = $2`, id, doctorID)
	if err != nil {
		return fmt.Errorf("failed to delete medical record: %w", err)
	}
	return requireRow(res, "medical record")
}

func (r *medicalRecordRepository) List(ctx context.Context, doctorID int64, filters *model.MedicalRecordFilters) ([]*model.MedicalRecord, error) {
	query := `
		SELECT mr.*, p.first_name AS patient_first_name, p.last_name AS patient_last_name
		FROM medical_records mr
		JOIN patients p ON p.id = mr.patient_id
		WHERE mr.doctor_id = $1
	`
	args := []interface{}{doctorID}
	if filters != nil && filters.Status != "" {
		args = append(args, filters.Status)
		query += fmt.Sprintf(" AND mr.status = $%d", len(args))
	}
	query += ` ORDER BY mr.record_date DESC, mr.id DESC`

	records := []*model.MedicalRecord{}
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list medical records: %w", err)
	}
	return records, nil
}
