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

type billingRepository struct {
	db *sqlx.DB
}

func NewBillingRepository(db *sqlx.DB) repository.BillingRepository {
	return &billingRepository{db: db}
}

func (r *billingRepository) Create(ctx context.Context, bill *model.Billing) error {
	query := `
		INSERT INTO billing (
			doctor_id, patient_id, appointment_id, amount,
			payment_method, payment_status, payment_date, notes,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	bill.CreatedAt = time.Now()
	bill.UpdatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query,
		bill.DoctorID,
		bill.PatientID,
		bill.AppointmentID,
		bill.Amount,
		bill.PaymentMethod,
		bill.PaymentStatus,
		bill.PaymentDate,
		bill.Notes,
		bill.CreatedAt,
		bill.UpdatedAt,
	).Scan(&bill.ID)
	if err != nil {
		return fmt.Errorf("failed to create billing record: %w", err)
	}
	return nil
}

func (r *billingRepository) Get(ctx context.Context, id, doctorID int64) (*model.Billing, error) {
	query := `
		SELECT b.*,
		       p.first_name AS patient_first_name, p.last_name AS patient_last_name,
		       a.appointment_date
		FROM billing b
		JOIN patients p ON p.id = b.patient_id
		LEFT JOIN appointments a ON a.id = b.appointment_id
		WHERE b.id = $1 AND b.doctor_id = $2
	`
	var bill model.Billing
	if err := r.db.GetContext(ctx, &bill, query, id, doctorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("billing record", err)
		}
		return nil, fmt.Errorf("failed to get billing record: %w", err)
	}
	return &bill, nil
}

func (r *billingRepository) Update(ctx context.Context, bill *model.Billing) error {
	query := `
		UPDATE billing
		SET patient_id = $1, appointment_id = $2, amount = $3,
		    payment_method = $4, payment_status = $5, payment_date = $6,
		    notes = $7, updated_at = $8
		WHERE id = $9 AND doctor_id = $10
	`
	res, err := r.db.ExecContext(ctx, query,
		bill.PatientID,
		bill.AppointmentID,
		bill.Amount,
		bill.PaymentMethod,
		bill.PaymentStatus,
		bill.PaymentDate,
		bill.Notes,
		time.Now(),
		bill.ID,
		bill.DoctorID,
	)
	if err != nil {
		return fmt.Errorf("failed to update billing record: %w", err)
	}
	return requireRow(res, "billing record")
}

func (r *billingRepository) Delete(ctx context.Context, id, doctorID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM billing WHERE id = $1 AND doctor_id = $2`, id, doctorID)
	if err != nil {
		return fmt.Errorf("failed to delete billing record: %w", err)
	}
	return requireRow(res, "billing record")
}

func (r *billingRepository) List(ctx context.Context, doctorID int64, filters *model.BillingFilters) ([]*model.Billing, error) {
	query := `
		SELECT b.*,
		       p.first_name AS patient_first_name, p.last_name AS patient_last_name,
		       a.appointment_date
		FROM billing b
		JOIN patients p ON p.id = b.patient_id
		LEFT JOIN appointments a ON a.id = b.appointment_id
		WHERE b.doctor_id = $1
	`
	args := []interface{}{doctorID}
	if filters != nil && filters.Status != "" {
		args = append(args, filters.Status)
		query += fmt.Sprintf(" AND b.payment_status = $%d", len(args))
	}
	query += ` ORDER BY b.created_at DESC`

	bills := []*model.Billing{}
	if err := r.db.SelectContext(ctx, &bills, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list billing records: %w", err)
	}
	return bills, nil
}
