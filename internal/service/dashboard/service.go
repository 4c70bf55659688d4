package dashboard

import (
	"context"

	"github.com/clinicore/clinic-admin/internal/model"
	"github.com/clinicore/clinic-admin/internal/repository"
)

const upcomingLimit = 5

// Service assembles the per-doctor aggregates for the dashboard and profile
// pages.
type Service struct {
	repo repository.DashboardRepository
}

func NewService(repo repository.DashboardRepository) *Service {
	return &Service{repo: repo}
}

// Overview returns the dashboard stats and the next few scheduled
// appointments for the acting doctor.
func (s *Service) Overview(ctx context.Context, doctorID int64) (*model.DashboardStats, []*model.Appointment, error) {
	stats, err := s.repo.Stats(ctx, doctorID)
	if err != nil {
		return nil, nil, err
	}
	upcoming, err := s.repo.UpcomingAppointments(ctx, doctorID, upcomingLimit)
	if err != nil {
		return nil, nil, err
	}
	return stats, upcoming, nil
}

func (s *Service) ProfileStats(ctx context.Context, doctorID int64) (*model.ProfileStats, error) {
	return s.repo.ProfileStats(ctx, doctorID)
}
