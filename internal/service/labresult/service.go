package labresult

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicore/clinic-admin/internal/model"
	"github.com/clinicore/clinic-admin/internal/repository"
)

// Service manages a doctor's lab results.
type Service struct {
	repo repository.LabResultRepository
}

func NewService(repo repository.LabResultRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, doctorID int64, form *model.LabResultForm) (*model.LabResult, error) {
	lr, err := fromForm(doctorID, form)
	if err != nil {
		return nil, err
	}
	if lr.Status == "" {
		lr.Status = model.LabResultStatusPending
	}
	if err := s.repo.Create(ctx, lr); err != nil {
		return nil, err
	}
	return lr, nil
}

func (s *Service) Get(ctx context.Context, id, doctorID int64) (*model.LabResult, error) {
	return s.repo.Get(ctx, id, doctorID)
}

func (s *Service) Update(ctx context.Context, id, doctorID int64, form *model.LabResultForm) (*model.LabResult, error) {
	lr, err := fromForm(doctorID, form)
	if err != nil {
		return nil, err
	}
	lr.ID = id
	if lr.Status == "" {
		lr.Status = model.LabResultStatusPending
	}
	if err := s.repo.Update(ctx, lr); err != nil {
		return nil, err
	}
	return lr, nil
}

func (s *Service) Delete(ctx context.Context, id, doctorID int64) error {
	return s.repo.Delete(ctx, id, doctorID)
}

func (s *Service) List(ctx context.Context, doctorID int64, filters *model.LabResultFilters) ([]*model.LabResult, error) {
	return s.repo.List(ctx, doctorID, filters)
}

func fromForm(doctorID int64, form *model.LabResultForm) (*model.LabResult, error) {
	date, err := time.Parse(model.DateOnly, form.TestDate)
	if err != nil {
		return nil, fmt.Errorf("invalid test date: %w", err)
	}
	return &model.LabResult{
		DoctorID:  doctorID,
		PatientID: form.PatientID,
		TestName:  form.TestName,
		TestDate:  date,
		Results:   optional(form.Results),
		Notes:     optional(form.Notes),
		Status:    form.Status,
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
