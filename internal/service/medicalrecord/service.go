package medicalrecord

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicore/clinic-admin/internal/model"
	"github.com/clinicore/clinic-admin/internal/repository"
)

// Service manages a doctor's medical records.
type Service struct {
	repo repository.MedicalRecordRepository
}

func NewService(repo repository.MedicalRecordRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, doctorID int64, form *model.MedicalRecordForm) (*model.MedicalRecord, error) {
	mr, err := fromForm(doctorID, form)
	if err != nil {
		return nil, err
	}
	if mr.Status == "" {
		mr.Status = model.MedicalRecordStatusActive
	}
	if err := s.repo.Create(ctx, mr); err != nil {
		return nil, err
	}
	return mr, nil
}

func (s *Service) Get(ctx context.Context, id, doctorID int64) (*model.MedicalRecord, error) {
	return s.repo.Get(ctx, id, doctorID)
}

func (s *Service) Update(ctx context.Context, id, doctorID int64, form *model.MedicalRecordForm) (*model.MedicalRecord, error) {
	mr, err := fromForm(doctorID, form)
	if err != nil {
		return nil, err
	}
	mr.ID = id
	if mr.Status == "" {
		mr.Status = model.MedicalRecordStatusActive
	}
	if err := s.repo.Update(ctx, mr); err != nil {
		return nil, err
	}
	return mr, nil
}

func (s *Service) Delete(ctx context.Context, id, doctorID int64) error {
	return s.repo.Delete(ctx, id, doctorID)
}

func (s *Service) List(ctx context.Context, doctorID int64, filters *model.MedicalRecordFilters) ([]*model.MedicalRecord, error) {
	return s.repo.List(ctx, doctorID, filters)
}

func fromForm(doctorID int64, form *model.MedicalRecordForm) (*model.MedicalRecord, error) {
	recordDate, err := time.Parse(model.DateOnly, form.RecordDate)
	if err != nil {
		return nil, fmt.Errorf("invalid record date: %w", err)
	}

	var followUp *time.Time
	if form.FollowUpDate != "" {
		parsed, err := time.Parse(model.DateOnly, form.FollowUpDate)
		if err != nil {
			return nil, fmt.Errorf("invalid follow-up date: %w", err)
		}
		followUp = &parsed
	}

	return &model.MedicalRecord{
		DoctorID:     doctorID,
		PatientID:    form.PatientID,
		Diagnosis:    form.Diagnosis,
		Treatment:    form.Treatment,
		Notes:        optional(form.Notes),
		RecordDate:   recordDate,
		FollowUpDate: followUp,
		Status:       form.Status,
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
