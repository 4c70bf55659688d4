package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicore/clinic-admin/internal/model"
	"github.com/clinicore/clinic-admin/internal/repository"
)

// Service manages a doctor's appointments. Every method takes the acting
// doctor's id explicitly; it is part of each query, never inferred.
type Service struct {
	repo repository.AppointmentRepository
}

func NewService(repo repository.AppointmentRepository) *Service {
	return &Service{repo: repo}
}

// Create schedules an appointment for the acting doctor. The doctor id comes
// from the session, never from the form.
func (s *Service) Create(ctx context.Context, doctorID int64, form *model.AppointmentForm) (*model.Appointment, error) {
	date, err := time.Parse(model.DateOnly, form.AppointmentDate)
	if err != nil {
		return nil, fmt.Errorf("invalid appointment date: %w", err)
	}

	status := form.Status
	if status == "" {
		status = model.AppointmentStatusScheduled
	}

	apt := &model.Appointment{
		DoctorID:        doctorID,
		PatientID:       form.PatientID,
		AppointmentDate: date,
		AppointmentTime: form.AppointmentTime,
		Status:          status,
		Reason:          optional(form.Reason),
		Notes:           optional(form.Notes),
	}
	if err := s.repo.Create(ctx, apt); err != nil {
		return nil, err
	}
	return apt, nil
}

func (s *Service) Get(ctx context.Context, id, doctorID int64) (*model.Appointment, error) {
	return s.repo.Get(ctx, id, doctorID)
}

func (s *Service) Update(ctx context.Context, id, doctorID int64, form *model.AppointmentForm) (*model.Appointment, error) {
	date, err := time.Parse(model.DateOnly, form.AppointmentDate)
	if err != nil {
		return nil, fmt.Errorf("invalid appointment date: %w", err)
	}

	status := form.Status
	if status == "" {
		status = model.AppointmentStatusScheduled
	}

	apt := &model.Appointment{
		ID:              id,
		DoctorID:        doctorID,
		PatientID:       form.PatientID,
		AppointmentDate: date,
		AppointmentTime: form.AppointmentTime,
		Status:          status,
		Reason:          optional(form.Reason),
		Notes:           optional(form.Notes),
	}
	if err := s.repo.Update(ctx, apt); err != nil {
		return nil, err
	}
	return apt, nil
}

// Delete removes the appointment. Deleting an absent or foreign row reports
// NotFound, never silent success.
func (s *Service) Delete(ctx context.Context, id, doctorID int64) error {
	return s.repo.Delete(ctx, id, doctorID)
}

func (s *Service) List(ctx context.Context, doctorID int64, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	return s.repo.List(ctx, doctorID, filters)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
