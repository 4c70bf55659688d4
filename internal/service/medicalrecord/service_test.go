package medicalrecord

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-admin/internal/model"
	apperrors "github.com/clinicore/clinic-admin/pkg/errors"
)

// fakeRecordRepo filters by doctor id the way the SQL does: a record owned by
// another doctor is indistinguishable from one that does not exist.
type fakeRecordRepo struct {
	nextID  int64
	records map[int64]*model.MedicalRecord
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{nextID: 1, records: map[int64]*model.MedicalRecord{}}
}

func (f *fakeRecordRepo) Create(_ context.Context, mr *model.MedicalRecord) error {
	mr.ID = f.nextID
	f.nextID++
	stored := *mr
	f.records[mr.ID] = &stored
	return nil
}

func (f *fakeRecordRepo) Get(_ context.Context, id, doctorID int64) (*model.MedicalRecord, error) {
	mr, ok := f.records[id]
	if !ok || mr.DoctorID != doctorID {
		return nil, apperrors.NewNotFound("medical record", nil)
	}
	found := *mr
	return &found, nil
}

func (f *fakeRecordRepo) Update(_ context.Context, mr *model.MedicalRecord) error {
	stored, ok := f.records[mr.ID]
	if !ok || stored.DoctorID != mr.DoctorID {
		return apperrors.NewNotFound("medical record", nil)
	}
	copied := *mr
	f.records[mr.ID] = &copied
	return nil
}

func (f *fakeRecordRepo) Delete(_ context.Context, id, doctorID int64) error {
	mr, ok := f.records[id]
	if !ok || mr.DoctorID != doctorID {
		return apperrors.NewNotFound("medical record", nil)
	}
	delete(f.records, id)
	return nil
}

func (f *fakeRecordRepo) List(_ context.Context, doctorID int64, filters *model.MedicalRecordFilters) ([]*model.MedicalRecord, error) {
	var out []*model.MedicalRecord
	for _, mr := range f.records {
		if mr.DoctorID != doctorID {
			continue
		}
		if filters != nil && filters.Status != "" && mr.Status != filters.Status {
			continue
		}
		found := *mr
		out = append(out, &found)
	}
	return out, nil
}

func visitNote() *model.MedicalRecordForm {
	return &model.MedicalRecordForm{
		PatientID:  10,
		Diagnosis:  "Seasonal allergic rhinitis",
		Treatment:  "Loratadine 10mg daily",
		RecordDate: "2026-03-02",
	}
}

func TestCreateDefaultsToActive(t *testing.T) {
	svc := NewService(newFakeRecordRepo())

	mr, err := svc.Create(context.Background(), 1, visitNote())
	require.NoError(t, err)
	assert.Equal(t, model.MedicalRecordStatusActive, mr.Status)
	assert.Equal(t, "2026-03-02", mr.RecordDate.Format(model.DateOnly))
	assert.Nil(t, mr.FollowUpDate, "no follow-up requested")
}

func TestCreateParsesFollowUpDate(t *testing.T) {
	svc := NewService(newFakeRecordRepo())

	form := visitNote()
	form.FollowUpDate = "2026-03-16"
	mr, err := svc.Create(context.Background(), 1, form)
	require.NoError(t, err)
	require.NotNil(t, mr.FollowUpDate)
	assert.Equal(t, "2026-03-16", mr.FollowUpDate.Format(model.DateOnly))
}

func TestCreateRejectsBadDates(t *testing.T) {
	repo := newFakeRecordRepo()
	svc := NewService(repo)
	ctx := context.Background()

	form := visitNote()
	form.RecordDate = "02/03/2026"
	_, err := svc.Create(ctx, 1, form)
	assert.Error(t, err)

	form = visitNote()
	form.FollowUpDate = "next week"
	_, err = svc.Create(ctx, 1, form)
	assert.Error(t, err)

	assert.Empty(t, repo.records, "nothing is stored on a parse failure")
}

func TestForeignRecordLooksAbsent(t *testing.T) {
	repo := newFakeRecordRepo()
	svc := NewService(repo)
	ctx := context.Background()

	mr, err := svc.Create(ctx, 1, visitNote())
	require.NoError(t, err)

	// Another doctor probing the same id gets the exact same answer as for
	// an id that was never issued.
	_, foreign := svc.Get(ctx, mr.ID, 2)
	_, absent := svc.Get(ctx, 999, 2)
	assert.True(t, apperrors.IsNotFound(foreign))
	assert.True(t, apperrors.IsNotFound(absent))

	assert.True(t, apperrors.IsNotFound(svc.Delete(ctx, mr.ID, 2)))
	assert.Len(t, repo.records, 1, "foreign delete must not remove anything")
}

func TestUpdateKeepsOwnership(t *testing.T) {
	repo := newFakeRecordRepo()
	svc := NewService(repo)
	ctx := context.Background()

	mr, err := svc.Create(ctx, 1, visitNote())
	require.NoError(t, err)

	form := visitNote()
	form.Treatment = "Cetirizine 10mg daily"
	form.Status = model.MedicalRecordStatusCompleted
	updated, err := svc.Update(ctx, mr.ID, 1, form)
	require.NoError(t, err)
	assert.Equal(t, "Cetirizine 10mg daily", updated.Treatment)
	assert.Equal(t, model.MedicalRecordStatusCompleted, updated.Status)

	_, err = svc.Update(ctx, mr.ID, 2, form)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListIsScopedToDoctor(t *testing.T) {
	repo := newFakeRecordRepo()
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, visitNote())
	require.NoError(t, err)
	archived := visitNote()
	archived.Status = model.MedicalRecordStatusArchived
	_, err = svc.Create(ctx, 1, archived)
	require.NoError(t, err)
	_, err = svc.Create(ctx, 2, visitNote())
	require.NoError(t, err)

	mine, err := svc.List(ctx, 1, nil)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	filtered, err := svc.List(ctx, 1, &model.MedicalRecordFilters{Status: model.MedicalRecordStatusArchived})
	require.NoError(t, err)
	assert.Len(t, filtered, 1)
}
