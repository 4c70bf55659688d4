package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-admin/internal/model"
	apperrors "github.com/clinicore/clinic-admin/pkg/errors"
)

// fakeRepo is an in-memory AppointmentRepository that applies the same
// ownership predicate the SQL WHERE clauses do.
type fakeRepo struct {
	nextID int64
	rows   map[int64]*model.Appointment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, rows: map[int64]*model.Appointment{}}
}

func (f *fakeRepo) Create(_ context.Context, apt *model.Appointment) error {
	apt.ID = f.nextID
	f.nextID++
	stored := *apt
	f.rows[apt.ID] = &stored
	return nil
}

func (f *fakeRepo) Get(_ context.Context, id, doctorID int64) (*model.Appointment, error) {
	apt, ok := f.rows[id]
	if !ok || apt.DoctorID != doctorID {
		return nil, apperrors.NewNotFound("appointment", nil)
	}
	found := *apt
	return &found, nil
}

func (f *fakeRepo) Update(_ context.Context, apt *model.Appointment) error {
	existing, ok := f.rows[apt.ID]
	if !ok || existing.DoctorID != apt.DoctorID {
		return apperrors.NewNotFound("appointment", nil)
	}
	stored := *apt
	f.rows[apt.ID] = &stored
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id, doctorID int64) error {
	apt, ok := f.rows[id]
	if !ok || apt.DoctorID != doctorID {
		return apperrors.NewNotFound("appointment", nil)
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeRepo) List(_ context.Context, doctorID int64, _ *model.AppointmentFilters) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, apt := range f.rows {
		if apt.DoctorID == doctorID {
			found := *apt
			out = append(out, &found)
		}
	}
	return out, nil
}

func scheduleForm() *model.AppointmentForm {
	return &model.AppointmentForm{
		PatientID:       10,
		AppointmentDate: "2024-06-01",
		AppointmentTime: "09:00",
		Reason:          "checkup",
	}
}

func TestCreateDefaultsToScheduled(t *testing.T) {
	svc := NewService(newFakeRepo())

	apt, err := svc.Create(context.Background(), 1, scheduleForm())
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusScheduled, apt.Status)
	assert.Equal(t, int64(1), apt.DoctorID)
	assert.Equal(t, "2024-06-01", apt.AppointmentDate.Format(model.DateOnly))
}

func TestCreateRejectsBadDate(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	form := scheduleForm()
	form.AppointmentDate = "June 1st"
	_, err := svc.Create(context.Background(), 1, form)
	assert.Error(t, err)
	assert.Empty(t, repo.rows, "nothing may be written on invalid input")
}

func TestForeignAppointmentIsNotFound(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	apt, err := svc.Create(ctx, 1, scheduleForm())
	require.NoError(t, err)

	// Doctor 2 cannot read, update, or delete doctor 1's appointment, and
	// the error is indistinguishable from a missing row.
	_, err = svc.Get(ctx, apt.ID, 2)
	assert.True(t, apperrors.IsNotFound(err))

	_, err = svc.Update(ctx, apt.ID, 2, scheduleForm())
	assert.True(t, apperrors.IsNotFound(err))

	err = svc.Delete(ctx, apt.ID, 2)
	assert.True(t, apperrors.IsNotFound(err))

	_, missingErr := svc.Get(ctx, 9999, 2)
	assert.Equal(t, missingErr.Error(), err.Error(), "foreign and absent must read the same")

	// The row is untouched for its owner.
	got, err := svc.Get(ctx, apt.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, apt.ID, got.ID)
}

func TestDeleteTwiceReportsFailure(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	apt, err := svc.Create(ctx, 1, scheduleForm())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, apt.ID, 1))
	err = svc.Delete(ctx, apt.ID, 1)
	assert.True(t, apperrors.IsNotFound(err), "second delete must fail, not silently succeed")
}

func TestUpdateKeepsExplicitStatus(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	apt, err := svc.Create(ctx, 1, scheduleForm())
	require.NoError(t, err)

	form := scheduleForm()
	form.Status = model.AppointmentStatusCompleted
	updated, err := svc.Update(ctx, apt.ID, 1, form)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, updated.Status)
}

func TestListScopedToDoctor(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, scheduleForm())
	require.NoError(t, err)
	_, err = svc.Create(ctx, 2, scheduleForm())
	require.NoError(t, err)

	mine, err := svc.List(ctx, 1, nil)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, int64(1), mine[0].DoctorID)
}
