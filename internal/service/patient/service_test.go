package patient

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-admin/internal/model"
	apperrors "github.com/clinicore/clinic-admin/pkg/errors"
)

// clinicStore is an in-memory stand-in for the relational store. It keeps the
// patient table plus the five dependent tables so the cascade contract can be
// exercised: delete is all-or-nothing.
type clinicStore struct {
	nextID         int64
	patients       map[int64]*model.Patient
	appointments   map[int64]*model.Appointment
	medicalRecords map[int64]*model.MedicalRecord
	prescriptions  map[int64]*model.Prescription
	labResults     map[int64]*model.LabResult
	billing        map[int64]*model.Billing

	failDelete bool
}

func newClinicStore() *clinicStore {
	return &clinicStore{
		nextID:         1,
		patients:       map[int64]*model.Patient{},
		appointments:   map[int64]*model.Appointment{},
		medicalRecords: map[int64]*model.MedicalRecord{},
		prescriptions:  map[int64]*model.Prescription{},
		labResults:     map[int64]*model.LabResult{},
		billing:        map[int64]*model.Billing{},
	}
}

func (s *clinicStore) id() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *clinicStore) Create(_ context.Context, p *model.Patient) error {
	p.ID = s.id()
	stored := *p
	s.patients[p.ID] = &stored
	return nil
}

func (s *clinicStore) Get(_ context.Context, id int64) (*model.Patient, error) {
	p, ok := s.patients[id]
	if !ok {
		return nil, apperrors.NewNotFound("patient", nil)
	}
	found := *p
	return &found, nil
}

func (s *clinicStore) Update(_ context.Context, p *model.Patient) error {
	if _, ok := s.patients[p.ID]; !ok {
		return apperrors.NewNotFound("patient", nil)
	}
	stored := *p
	s.patients[p.ID] = &stored
	return nil
}

// Delete mirrors the transactional cascade: on a forced failure nothing is
// removed; otherwise the patient and every dependent row go together.
func (s *clinicStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.patients[id]; !ok {
		return apperrors.NewNotFound("patient", nil)
	}
	if s.failDelete {
		return errors.New("deadlock detected")
	}
	for mrID, mr := range s.medicalRecords {
		if mr.PatientID == id {
			delete(s.medicalRecords, mrID)
		}
	}
	for rxID, rx := range s.prescriptions {
		if rx.PatientID == id {
			delete(s.prescriptions, rxID)
		}
	}
	for lrID, lr := range s.labResults {
		if lr.PatientID == id {
			delete(s.labResults, lrID)
		}
	}
	for aptID, apt := range s.appointments {
		if apt.PatientID == id {
			delete(s.appointments, aptID)
		}
	}
	for billID, bill := range s.billing {
		if bill.PatientID == id {
			delete(s.billing, billID)
		}
	}
	delete(s.patients, id)
	return nil
}

func (s *clinicStore) List(_ context.Context, _ *model.PatientFilters) ([]*model.Patient, error) {
	var out []*model.Patient
	for _, p := range s.patients {
		found := *p
		out = append(out, &found)
	}
	return out, nil
}

func (s *clinicStore) addDependents(patientID, doctorID int64) (counts int) {
	apt := &model.Appointment{ID: s.id(), DoctorID: doctorID, PatientID: patientID, Status: model.AppointmentStatusScheduled}
	s.appointments[apt.ID] = apt
	mr := &model.MedicalRecord{ID: s.id(), DoctorID: doctorID, PatientID: patientID, Status: model.MedicalRecordStatusActive}
	s.medicalRecords[mr.ID] = mr
	rx := &model.Prescription{ID: s.id(), DoctorID: doctorID, PatientID: patientID, Status: model.PrescriptionStatusActive}
	s.prescriptions[rx.ID] = rx
	lr := &model.LabResult{ID: s.id(), DoctorID: doctorID, PatientID: patientID, Status: model.LabResultStatusPending}
	s.labResults[lr.ID] = lr
	bill := &model.Billing{ID: s.id(), DoctorID: doctorID, PatientID: patientID, Amount: 50, PaymentStatus: model.PaymentStatusPending}
	s.billing[bill.ID] = bill
	return 5
}

func (s *clinicStore) dependentCount(patientID int64) int {
	n := 0
	for _, apt := range s.appointments {
		if apt.PatientID == patientID {
			n++
		}
	}
	for _, mr := range s.medicalRecords {
		if mr.PatientID == patientID {
			n++
		}
	}
	for _, rx := range s.prescriptions {
		if rx.PatientID == patientID {
			n++
		}
	}
	for _, lr := range s.labResults {
		if lr.PatientID == patientID {
			n++
		}
	}
	for _, bill := range s.billing {
		if bill.PatientID == patientID {
			n++
		}
	}
	return n
}

func janeDoe() *model.PatientForm {
	return &model.PatientForm{
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane.doe@example.com",
		DateOfBirth: "1990-01-15",
		Gender:      "female",
	}
}

func TestCreateParsesDateOfBirth(t *testing.T) {
	svc := NewService(newClinicStore())

	p, err := svc.CreatePatient(context.Background(), janeDoe())
	require.NoError(t, err)
	require.NotNil(t, p.DateOfBirth)
	assert.Equal(t, "1990-01-15", p.DateOfBirth.Format(model.DateOnly))
	assert.Equal(t, "Jane Doe", p.FullName())
}

func TestCreateRejectsBadDateOfBirth(t *testing.T) {
	store := newClinicStore()
	svc := NewService(store)

	form := janeDoe()
	form.DateOfBirth = "15/01/1990"
	_, err := svc.CreatePatient(context.Background(), form)
	assert.Error(t, err)
	assert.Empty(t, store.patients)
}

func TestPatientsAreClinicWide(t *testing.T) {
	store := newClinicStore()
	svc := NewService(store)
	ctx := context.Background()

	// Created without any doctor attribution; readable and editable by
	// any authenticated doctor.
	p, err := svc.CreatePatient(ctx, janeDoe())
	require.NoError(t, err)

	form := janeDoe()
	form.Phone = "123-456-7890"
	updated, err := svc.UpdatePatient(ctx, p.ID, form)
	require.NoError(t, err)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, "123-456-7890", *updated.Phone)
}

func TestDeleteCascadesToAllDependents(t *testing.T) {
	store := newClinicStore()
	svc := NewService(store)
	ctx := context.Background()

	p, err := svc.CreatePatient(ctx, janeDoe())
	require.NoError(t, err)
	store.addDependents(p.ID, 1)
	store.addDependents(p.ID, 2) // another doctor's records go too
	require.Equal(t, 10, store.dependentCount(p.ID))

	require.NoError(t, svc.DeletePatient(ctx, p.ID))

	assert.Empty(t, store.patients)
	assert.Zero(t, store.dependentCount(p.ID))
}

func TestDeleteFailureLeavesEverything(t *testing.T) {
	store := newClinicStore()
	svc := NewService(store)
	ctx := context.Background()

	p, err := svc.CreatePatient(ctx, janeDoe())
	require.NoError(t, err)
	n := store.addDependents(p.ID, 1)

	store.failDelete = true
	err = svc.DeletePatient(ctx, p.ID)
	require.Error(t, err)

	// No partial state: the patient and all N dependents survive.
	assert.Len(t, store.patients, 1)
	assert.Equal(t, n, store.dependentCount(p.ID))
}

func TestDeleteMissingPatientReportsFailure(t *testing.T) {
	svc := NewService(newClinicStore())

	err := svc.DeletePatient(context.Background(), 999)
	assert.True(t, apperrors.IsNotFound(err))
}
