package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clinicore/clinic-admin/internal/model"
	"github.com/clinicore/clinic-admin/internal/repository"
	"github.com/clinicore/clinic-admin/internal/repository/postgres"
	apperrors "github.com/clinicore/clinic-admin/pkg/errors"
	"github.com/clinicore/clinic-admin/pkg/security"
	"github.com/clinicore/clinic-admin/pkg/token"
)

// ErrInvalidCredentials is returned for a bad email or password. The two cases
// are indistinguishable on purpose.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Password length bounds. The upper bound is bcrypt's input limit.
const (
	minPasswordLen = 8
	maxPasswordLen = 72
)

type Service struct {
	repo     repository.DoctorRepository
	hasher   security.PasswordHasher
	remember *token.Issuer
}

func NewService(repo repository.DoctorRepository, hasher security.PasswordHasher, remember *token.Issuer) *Service {
	return &Service{repo: repo, hasher: hasher, remember: remember}
}

// Register creates a doctor account and returns it ready for auto-login.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.Doctor, error) {
	if len(req.Password) < minPasswordLen {
		return nil, apperrors.NewValidation("password must be at least 8 characters")
	}
	if len(req.Password) > maxPasswordLen {
		return nil, apperrors.NewValidation("password must be at most 72 characters")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	doctor := &model.Doctor{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		PasswordHash:   hash,
		ClinicName:     optional(req.ClinicName),
		ClinicType:     optional(req.ClinicType),
		Phone:          optional(req.Phone),
		Specialization: optional(req.Specialization),
	}

	if err := s.repo.Create(ctx, doctor); err != nil {
		if errors.Is(err, postgres.ErrDuplicateEmail) {
			return nil, apperrors.NewValidation("email is already registered")
		}
		return nil, fmt.Errorf("failed to register doctor: %w", err)
	}
	return doctor, nil
}

// Login checks credentials and records the login time.
func (s *Service) Login(ctx context.Context, email, password string) (*model.Doctor, error) {
	doctor, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up doctor: %w", err)
	}

	if err := s.hasher.Compare(doctor.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.repo.UpdateLastLogin(ctx, doctor.ID, now); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}
	doctor.LastLogin = &now
	return doctor, nil
}

// IssueRememberToken mints a signed remember-me cookie value and persists its
// series on the doctor row so an explicit logout invalidates it.
func (s *Service) IssueRememberToken(ctx context.Context, doctorID int64) (string, time.Time, error) {
	signed, series, expires, err := s.remember.Generate(doctorID)
	if err != nil {
		return "", time.Time{}, err
	}
	if err := s.repo.UpdateRememberToken(ctx, doctorID, &series, &expires); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to persist remember token: %w", err)
	}
	return signed, expires, nil
}

// ClearRememberToken drops the persisted series; outstanding cookies die with it.
func (s *Service) ClearRememberToken(ctx context.Context, doctorID int64) error {
	return s.repo.UpdateRememberToken(ctx, doctorID, nil, nil)
}

// ReviveFromRememberToken validates a remember-me cookie against both its
// signature and the series persisted on the doctor row.
func (s *Service) ReviveFromRememberToken(ctx context.Context, signed string) (*model.Doctor, error) {
	doctorID, series, err := s.remember.Parse(signed)
	if err != nil {
		return nil, token.ErrInvalidToken
	}

	doctor, err := s.repo.Get(ctx, doctorID)
	if err != nil {
		return nil, token.ErrInvalidToken
	}

	if doctor.RememberSeries == nil || *doctor.RememberSeries != series {
		return nil, token.ErrInvalidToken
	}
	if doctor.TokenExpires == nil || doctor.TokenExpires.Before(time.Now()) {
		return nil, token.ErrInvalidToken
	}
	return doctor, nil
}

// GetDoctor loads the doctor behind a session. A NotFound here means the
// session is stale (doctor deleted out-of-band) and must be destroyed by the
// caller.
func (s *Service) GetDoctor(ctx context.Context, id int64) (*model.Doctor, error) {
	return s.repo.Get(ctx, id)
}

// UpdateProfile applies the profile edit form to the doctor's own record.
func (s *Service) UpdateProfile(ctx context.Context, doctorID int64, req *model.UpdateProfileRequest) (*model.Doctor, error) {
	doctor, err := s.repo.Get(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	doctor.FirstName = req.FirstName
	doctor.LastName = req.LastName
	doctor.Phone = optional(req.Phone)
	doctor.Specialization = optional(req.Specialization)
	doctor.ClinicName = optional(req.ClinicName)
	doctor.ClinicType = optional(req.ClinicType)

	if err := s.repo.UpdateProfile(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return doctor, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
