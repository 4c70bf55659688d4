package prescription

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicore/clinic-admin/internal/model"
	"github.com/clinicore/clinic-admin/internal/repository"
)

// Service manages a doctor's prescriptions. Prescriptions have no edit flow:
// create, view, delete only.
type Service struct {
	repo repository.PrescriptionRepository
}

func NewService(repo repository.PrescriptionRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, doctorID int64, form *model.PrescriptionForm) (*model.Prescription, error) {
	date, err := time.Parse(model.DateOnly, form.PrescriptionDate)
	if err != nil {
		return nil, fmt.Errorf("invalid prescription date: %w", err)
	}

	rx := &model.Prescription{
		DoctorID:         doctorID,
		PatientID:        form.PatientID,
		PrescriptionDate: date,
		Medication:       form.Medication,
		Dosage:           optional(form.Dosage),
		Frequency:        optional(form.Frequency),
		Duration:         optional(form.Duration),
		Instructions:     optional(form.Instructions),
		Status:           model.PrescriptionStatusActive,
	}
	if err := s.repo.Create(ctx, rx); err != nil {
		return nil, err
	}
	return rx, nil
}

func (s *Service) Get(ctx context.Context, id, doctorID int64) (*model.Prescription, error) {
	return s.repo.Get(ctx, id, doctorID)
}

func (s *Service) Delete(ctx context.Context, id, doctorID int64) error {
	return s.repo.Delete(ctx, id, doctorID)
}

func (s *Service) List(ctx context.Context, doctorID int64, filters *model.PrescriptionFilters) ([]*model.Prescription, error) {
	return s.repo.List(ctx, doctorID, filters)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
