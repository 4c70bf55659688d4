package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no session exists for a token, whether it never
// existed, expired, or was destroyed.
var ErrNotFound = errors.New("session not found")

// Data is the per-browser-session state: the authenticated doctor plus the
// one-shot flash slots written by a redirecting mutation.
type Data struct {
	DoctorID   int64  `json:"doctor_id"`
	DoctorName string `json:"doctor_name"`
	Flash      string `json:"flash,omitempty"`
	FlashError string `json:"flash_error,omitempty"`
}

// Store is keyed session storage. Implementations must treat expired entries
// as absent.
type Store interface {
	Get(ctx context.Context, token string) (*Data, error)
	Save(ctx context.Context, token string, data *Data, ttl time.Duration) error
	Delete(ctx context.Context, token string) error
}

// Manager issues opaque session tokens and mediates all session reads and
// writes. Handlers never touch the store directly.
type Manager struct {
	store      Store
	cookieName string
	ttl        time.Duration
}

func NewManager(store Store, cookieName string, ttl time.Duration) *Manager {
	return &Manager{store: store, cookieName: cookieName, ttl: ttl}
}

func (m *Manager) CookieName() string {
	return m.cookieName
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Start creates a new session for the doctor and returns its token.
func (m *Manager) Start(ctx context.Context, doctorID int64, doctorName string) (string, error) {
	token := uuid.NewString()
	data := &Data{DoctorID: doctorID, DoctorName: doctorName}
	if err := m.store.Save(ctx, token, data, m.ttl); err != nil {
		return "", err
	}
	return token, nil
}

// Get returns the session for a token, or ErrNotFound.
func (m *Manager) Get(ctx context.Context, token string) (*Data, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	return m.store.Get(ctx, token)
}

// Destroy removes the session. Destroying an absent session is not an error.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return m.store.Delete(ctx, token)
}

// SetDoctorName updates the cached display name after a profile edit.
func (m *Manager) SetDoctorName(ctx context.Context, token, name string) error {
	data, err := m.store.Get(ctx, token)
	if err != nil {
		return err
	}
	data.DoctorName = name
	return m.store.Save(ctx, token, data, m.ttl)
}

// Flash stores a one-shot message to be shown after the next redirect. An
// error message and a success message never coexist; the last write wins.
func (m *Manager) Flash(ctx context.Context, token, message string, isError bool) error {
	data, err := m.store.Get(ctx, token)
	if err != nil {
		return err
	}
	if isError {
		data.Flash = ""
		data.FlashError = message
	} else {
		data.Flash = message
		data.FlashError = ""
	}
	return m.store.Save(ctx, token, data, m.ttl)
}

// PopFlash reads and unconditionally clears both flash slots, so a message is
// delivered at most once even when both slots are empty strings.
func (m *Manager) PopFlash(ctx context.Context, token string) (success, errMsg string, err error) {
	data, getErr := m.store.Get(ctx, token)
	if getErr != nil {
		return "", "", getErr
	}
	success, errMsg = data.Flash, data.FlashError
	if success == "" && errMsg == "" {
		return "", "", nil
	}
	data.Flash = ""
	data.FlashError = ""
	if saveErr := m.store.Save(ctx, token, data, m.ttl); saveErr != nil {
		return "", "", saveErr
	}
	return success, errMsg, nil
}
