package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicore/clinic-admin/internal/model"
	"github.com/clinicore/clinic-admin/internal/repository"
	apperrors "github.com/clinicore/clinic-admin/pkg/errors"
)

// Service manages a doctor's billing records.
type Service struct {
	repo repository.BillingRepository
}

func NewService(repo repository.BillingRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, doctorID int64, form *model.BillingForm) (*model.Billing, error) {
	bill, err := fromForm(doctorID, form)
	if err != nil {
		return nil, err
	}
	if bill.PaymentStatus == "" {
		bill.PaymentStatus = model.PaymentStatusPending
	}
	if err := s.repo.Create(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

func (s *Service) Get(ctx context.Context, id, doctorID int64) (*model.Billing, error) {
	return s.repo.Get(ctx, id, doctorID)
}

func (s *Service) Update(ctx context.Context, id, doctorID int64, form *model.BillingForm) (*model.Billing, error) {
	bill, err := fromForm(doctorID, form)
	if err != nil {
		return nil, err
	}
	bill.ID = id
	if bill.PaymentStatus == "" {
		bill.PaymentStatus = model.PaymentStatusPending
	}
	if err := s.repo.Update(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

func (s *Service) Delete(ctx context.Context, id, doctorID int64) error {
	return s.repo.Delete(ctx, id, doctorID)
}

func (s *Service) List(ctx context.Context, doctorID int64, filters *model.BillingFilters) ([]*model.Billing, error) {
	return s.repo.List(ctx, doctorID, filters)
}

// fromForm validates and converts the billing form. The amount rule is
// enforced here as well as in form binding: no write may happen on a
// non-positive amount regardless of how the form reached us.
func fromForm(doctorID int64, form *model.BillingForm) (*model.Billing, error) {
	if form.PatientID <= 0 {
		return nil, apperrors.NewValidation("patient is required")
	}
	if form.Amount <= 0 {
		return nil, apperrors.NewValidation("amount must be a positive number")
	}
	if form.PaymentMethod == "" {
		return nil, apperrors.NewValidation("payment method is required")
	}

	bill := &model.Billing{
		DoctorID:      doctorID,
		PatientID:     form.PatientID,
		Amount:        form.Amount,
		PaymentMethod: form.PaymentMethod,
		PaymentStatus: form.PaymentStatus,
		Notes:         optional(form.Notes),
	}
	if form.AppointmentID > 0 {
		id := form.AppointmentID
		bill.AppointmentID = &id
	}
	if form.PaymentDate != "" {
		d, err := time.Parse(model.DateOnly, form.PaymentDate)
		if err != nil {
			return nil, fmt.Errorf("invalid payment date: %w", err)
		}
		bill.PaymentDate = &d
	}
	return bill, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
