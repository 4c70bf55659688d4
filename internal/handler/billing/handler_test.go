package billing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-admin/internal/handler"
	"github.com/clinicore/clinic-admin/internal/middleware"
	"github.com/clinicore/clinic-admin/internal/model"
	"github.com/clinicore/clinic-admin/internal/router"
	"github.com/clinicore/clinic-admin/internal/session"
	apperrors "github.com/clinicore/clinic-admin/pkg/errors"
	"github.com/clinicore/clinic-admin/pkg/validator"
)

type fakeService struct {
	creates int
	updates int
	deletes int
	bill    *model.Billing
	err     error
}

func (f *fakeService) Create(_ context.Context, doctorID int64, form *model.BillingForm) (*model.Billing, error) {
	f.creates++
	if f.err != nil {
		return nil, f.err
	}
	return &model.Billing{ID: 1, DoctorID: doctorID, PatientID: form.PatientID, Amount: form.Amount}, nil
}

func (f *fakeService) Get(_ context.Context, id, doctorID int64) (*model.Billing, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.bill == nil {
		return nil, apperrors.NewNotFound("billing record", nil)
	}
	return f.bill, nil
}

func (f *fakeService) Update(_ context.Context, id, doctorID int64, form *model.BillingForm) (*model.Billing, error) {
	f.updates++
	if f.err != nil {
		return nil, f.err
	}
	return &model.Billing{ID: id, DoctorID: doctorID}, nil
}

func (f *fakeService) Delete(_ context.Context, id, doctorID int64) error {
	f.deletes++
	return f.err
}

func (f *fakeService) List(_ context.Context, doctorID int64, _ *model.BillingFilters) ([]*model.Billing, error) {
	return nil, nil
}

type fakePatients struct{}

func (fakePatients) ListPatients(context.Context, *model.PatientFilters) ([]*model.Patient, error) {
	return []*model.Patient{{ID: 10, FirstName: "Jane", LastName: "Doe"}}, nil
}

type fakeAppointments struct{}

func (fakeAppointments) List(context.Context, int64, *model.AppointmentFilters) ([]*model.Appointment, error) {
	return nil, nil
}

func newTestApp(t *testing.T, svc *fakeService) (*gin.Engine, *session.Manager, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validator.RegisterCustom())

	engine := gin.New()
	engine.SetFuncMap(router.TemplateFuncs())
	engine.LoadHTMLGlob("../../../web/templates/*.html")

	sessions := session.NewManager(session.NewMemoryStore(time.Minute), "clinic_session", time.Hour)
	token, err := sessions.Start(context.Background(), 1, "Alice Smith")
	require.NoError(t, err)

	base := handler.NewBase(sessions)
	h := NewHandler(svc, fakePatients{}, fakeAppointments{}, base)

	authMw := middleware.NewAuthMiddleware(sessions, nil)
	protected := engine.Group("", authMw.RequireAuth())
	h.RegisterRoutes(protected)

	return engine, sessions, token
}

func postForm(engine *gin.Engine, path, token string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "clinic_session", Value: token})
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func getPage(engine *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "clinic_session", Value: token})
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func validForm() url.Values {
	return url.Values{
		"patient_id":     {"10"},
		"amount":         {"125.50"},
		"payment_method": {"Cash"},
	}
}

func TestCreateRedirectsWithFlash(t *testing.T) {
	svc := &fakeService{}
	engine, _, token := newTestApp(t, svc)

	w := postForm(engine, "/billing", token, validForm())
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/billing", w.Header().Get("Location"))
	assert.Equal(t, 1, svc.creates)

	// The flash shows on the next page load and only there.
	first := getPage(engine, "/billing", token)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Contains(t, first.Body.String(), "Billing record added successfully")

	second := getPage(engine, "/billing", token)
	require.Equal(t, http.StatusOK, second.Code)
	assert.NotContains(t, second.Body.String(), "Billing record added successfully")
}

func TestCreateNonNumericAmountFailsBinding(t *testing.T) {
	svc := &fakeService{}
	engine, _, token := newTestApp(t, svc)

	form := validForm()
	form.Set("amount", "abc")
	w := postForm(engine, "/billing", token, form)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Amount must be a positive number")
	assert.Zero(t, svc.creates, "service must not see an unparseable amount")
}

func TestCreateZeroAmountFailsBinding(t *testing.T) {
	svc := &fakeService{}
	engine, _, token := newTestApp(t, svc)

	form := validForm()
	form.Set("amount", "0")
	w := postForm(engine, "/billing", token, form)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, svc.creates)
}

func TestMutationsRequireSession(t *testing.T) {
	svc := &fakeService{}
	engine, _, _ := newTestApp(t, svc)

	// No cookie at all.
	w := postForm(engine, "/billing", "", validForm())
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Zero(t, svc.creates, "guard must run before any handler work")

	// A forged token is as good as none.
	w = postForm(engine, "/billing", "forged-token", validForm())
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Zero(t, svc.creates)
}

func TestDeleteMissingRecordFlashesError(t *testing.T) {
	svc := &fakeService{err: apperrors.NewNotFound("billing record", nil)}
	engine, _, token := newTestApp(t, svc)

	w := postForm(engine, "/billing/99/delete", token, url.Values{})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/billing", w.Header().Get("Location"))

	page := getPage(engine, "/billing", token)
	assert.Contains(t, page.Body.String(), "Record not found")
}

func TestShowUnknownBillRedirects(t *testing.T) {
	svc := &fakeService{}
	engine, _, token := newTestApp(t, svc)

	w := getPage(engine, "/billing/42", token)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/billing", w.Header().Get("Location"))
}
