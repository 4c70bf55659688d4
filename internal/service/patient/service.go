package patient

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicore/clinic-admin/internal/model"
	"github.com/clinicore/clinic-admin/internal/repository"
)

// Service manages the clinic-wide patient directory. Patients are the one
// entity without an ownership filter: any authenticated doctor has full CRUD.
type Service struct {
	repo repository.PatientRepository
}

func NewService(repo repository.PatientRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreatePatient(ctx context.Context, form *model.PatientForm) (*model.Patient, error) {
	patient, err := fromForm(form)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	return patient, nil
}

func (s *Service) GetPatient(ctx context.Context, id int64) (*model.Patient, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdatePatient(ctx context.Context, id int64, form *model.PatientForm) (*model.Patient, error) {
	patient, err := fromForm(form)
	if err != nil {
		return nil, err
	}
	patient.ID = id
	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

// DeletePatient removes the patient and all dependent clinical records
// atomically. The repository wraps the five deletes in one transaction.
func (s *Service) DeletePatient(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error) {
	return s.repo.List(ctx, filters)
}

func fromForm(form *model.PatientForm) (*model.Patient, error) {
	patient := &model.Patient{
		FirstName:      form.FirstName,
		LastName:       form.LastName,
		Email:          form.Email,
		Phone:          optional(form.Phone),
		Gender:         optional(form.Gender),
		Address:        optional(form.Address),
		MedicalHistory: optional(form.MedicalHistory),
		Allergies:      optional(form.Allergies),
	}
	if form.DateOfBirth != "" {
		dob, err := time.Parse(model.DateOnly, form.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("invalid date of birth: %w", err)
		}
		patient.DateOfBirth = &dob
	}
	return patient, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
