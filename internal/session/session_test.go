package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(NewMemoryStore(time.Minute), "clinic_session", time.Hour)
}

func TestStartAndGet(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	token, err := m.Start(ctx, 1, "John Smith")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	data, err := m.Get(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), data.DoctorID)
	assert.Equal(t, "John Smith", data.DoctorName)
}

func TestGetUnknownToken(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Get(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDestroy(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	token, err := m.Start(ctx, 1, "John Smith")
	require.NoError(t, err)

	require.NoError(t, m.Destroy(ctx, token))
	_, err = m.Get(ctx, token)
	assert.ErrorIs(t, err, ErrNotFound)

	// Destroying again is a no-op.
	assert.NoError(t, m.Destroy(ctx, token))
}

func TestFlashDeliveredExactlyOnce(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	token, err := m.Start(ctx, 1, "John Smith")
	require.NoError(t, err)

	require.NoError(t, m.Flash(ctx, token, "Patient added successfully.", false))

	success, errMsg, err := m.PopFlash(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "Patient added successfully.", success)
	assert.Empty(t, errMsg)

	// The very next read must see nothing.
	success, errMsg, err = m.PopFlash(ctx, token)
	require.NoError(t, err)
	assert.Empty(t, success)
	assert.Empty(t, errMsg)
}

func TestFlashErrorReplacesSuccess(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	token, err := m.Start(ctx, 1, "John Smith")
	require.NoError(t, err)

	require.NoError(t, m.Flash(ctx, token, "saved", false))
	require.NoError(t, m.Flash(ctx, token, "something went wrong", true))

	success, errMsg, err := m.PopFlash(ctx, token)
	require.NoError(t, err)
	assert.Empty(t, success)
	assert.Equal(t, "something went wrong", errMsg)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "tok", &Data{DoctorID: 1}, 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, err := store.Get(ctx, "tok")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreCopiesData(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	orig := &Data{DoctorID: 1, Flash: "hello"}
	require.NoError(t, store.Save(ctx, "tok", orig, time.Hour))
	orig.Flash = "mutated"

	got, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Flash)

	got.Flash = "mutated again"
	again, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "hello", again.Flash)
}
