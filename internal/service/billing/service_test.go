package billing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-admin/internal/model"
	apperrors "github.com/clinicore/clinic-admin/pkg/errors"
)

type fakeRepo struct {
	nextID int64
	rows   map[int64]*model.Billing
	writes int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, rows: map[int64]*model.Billing{}}
}

func (f *fakeRepo) Create(_ context.Context, bill *model.Billing) error {
	f.writes++
	bill.ID = f.nextID
	f.nextID++
	stored := *bill
	f.rows[bill.ID] = &stored
	return nil
}

func (f *fakeRepo) Get(_ context.Context, id, doctorID int64) (*model.Billing, error) {
	bill, ok := f.rows[id]
	if !ok || bill.DoctorID != doctorID {
		return nil, apperrors.NewNotFound("billing record", nil)
	}
	found := *bill
	return &found, nil
}

func (f *fakeRepo) Update(_ context.Context, bill *model.Billing) error {
	f.writes++
	existing, ok := f.rows[bill.ID]
	if !ok || existing.DoctorID != bill.DoctorID {
		return apperrors.NewNotFound("billing record", nil)
	}
	stored := *bill
	f.rows[bill.ID] = &stored
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id, doctorID int64) error {
	bill, ok := f.rows[id]
	if !ok || bill.DoctorID != doctorID {
		return apperrors.NewNotFound("billing record", nil)
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeRepo) List(_ context.Context, doctorID int64, _ *model.BillingFilters) ([]*model.Billing, error) {
	var out []*model.Billing
	for _, bill := range f.rows {
		if bill.DoctorID == doctorID {
			found := *bill
			out = append(out, &found)
		}
	}
	return out, nil
}

func billForm(amount float64) *model.BillingForm {
	return &model.BillingForm{
		PatientID:     10,
		Amount:        amount,
		PaymentMethod: "Cash",
	}
}

func TestCreateRejectsNonPositiveAmount(t *testing.T) {
	for _, amount := range []float64{0, -5} {
		repo := newFakeRepo()
		svc := NewService(repo)

		_, err := svc.Create(context.Background(), 1, billForm(amount))
		assert.True(t, apperrors.IsValidation(err), "amount %v must fail validation", amount)
		assert.Zero(t, repo.writes, "no write may happen for amount %v", amount)
	}
}

func TestCreateAcceptsSmallestPositiveAmount(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	bill, err := svc.Create(context.Background(), 1, billForm(0.01))
	require.NoError(t, err)
	assert.Equal(t, 0.01, bill.Amount)
	assert.Equal(t, model.PaymentStatusPending, bill.PaymentStatus)
	assert.Equal(t, int64(1), bill.DoctorID)
}

func TestCreateRequiresPaymentMethod(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	form := billForm(50)
	form.PaymentMethod = ""
	_, err := svc.Create(context.Background(), 1, form)
	assert.True(t, apperrors.IsValidation(err))
	assert.Zero(t, repo.writes)
}

func TestCreateRequiresPatient(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	form := billForm(50)
	form.PatientID = 0
	_, err := svc.Create(context.Background(), 1, form)
	assert.True(t, apperrors.IsValidation(err))
	assert.Zero(t, repo.writes)
}

func TestCreateLinksAppointmentAndPaymentDate(t *testing.T) {
	svc := NewService(newFakeRepo())

	form := billForm(125.50)
	form.AppointmentID = 3
	form.PaymentStatus = model.PaymentStatusPaid
	form.PaymentDate = "2024-06-02"

	bill, err := svc.Create(context.Background(), 1, form)
	require.NoError(t, err)
	require.NotNil(t, bill.AppointmentID)
	assert.Equal(t, int64(3), *bill.AppointmentID)
	require.NotNil(t, bill.PaymentDate)
	assert.Equal(t, "2024-06-02", bill.PaymentDate.Format(model.DateOnly))
	assert.Equal(t, model.PaymentStatusPaid, bill.PaymentStatus)
}

func TestForeignBillIsNotFound(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	bill, err := svc.Create(ctx, 1, billForm(75))
	require.NoError(t, err)

	_, err = svc.Get(ctx, bill.ID, 2)
	assert.True(t, apperrors.IsNotFound(err))

	_, err = svc.Update(ctx, bill.ID, 2, billForm(80))
	assert.True(t, apperrors.IsNotFound(err))

	err = svc.Delete(ctx, bill.ID, 2)
	assert.True(t, apperrors.IsNotFound(err))

	got, err := svc.Get(ctx, bill.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 75.0, got.Amount)
}

func TestUpdateValidatesBeforeWriting(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	bill, err := svc.Create(ctx, 1, billForm(75))
	require.NoError(t, err)
	writesAfterCreate := repo.writes

	_, err = svc.Update(ctx, bill.ID, 1, billForm(-1))
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, writesAfterCreate, repo.writes, "invalid update must not reach the repository")
}
