package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
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
)

type fakeOverview struct{}

func (fakeOverview) Overview(context.Context, int64) (*model.DashboardStats, []*model.Appointment, error) {
	return &model.DashboardStats{TodayAppointments: 2}, nil, nil
}

type fakeDoctors struct {
	doctor *model.Doctor
	err    error
}

func (f *fakeDoctors) GetDoctor(context.Context, int64) (*model.Doctor, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.doctor, nil
}

func newTestApp(t *testing.T, doctors *fakeDoctors) (*gin.Engine, *session.Manager, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.SetFuncMap(router.TemplateFuncs())
	engine.LoadHTMLGlob("../../../web/templates/*.html")

	sessions := session.NewManager(session.NewMemoryStore(time.Minute), "clinic_session", time.Hour)
	token, err := sessions.Start(context.Background(), 1, "Alice Smith")
	require.NoError(t, err)

	h := NewHandler(fakeOverview{}, doctors, handler.NewBase(sessions))

	authMw := middleware.NewAuthMiddleware(sessions, nil)
	h.RegisterRoutes(engine.Group("", authMw.RequireAuth()))

	return engine, sessions, token
}

func getDashboard(engine *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "clinic_session", Value: token})
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestShowRendersOverview(t *testing.T) {
	doctors := &fakeDoctors{doctor: &model.Doctor{ID: 1, FirstName: "Alice", LastName: "Smith"}}
	engine, _, token := newTestApp(t, doctors)

	w := getDashboard(engine, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dr. Smith")
}

func TestStaleSessionIsTornDown(t *testing.T) {
	doctors := &fakeDoctors{err: apperrors.NewNotFound("doctor", nil)}
	engine, sessions, token := newTestApp(t, doctors)

	w := getDashboard(engine, token)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	_, err := sessions.Get(context.Background(), token)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestDoctorLoadFailureRendersErrorPage(t *testing.T) {
	doctors := &fakeDoctors{err: assert.AnError}
	engine, sessions, token := newTestApp(t, doctors)

	// A backend outage must not bounce the browser to /login: the session is
	// still valid, so /login would redirect straight back here and loop.
	w := getDashboard(engine, token)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Header().Get("Location"))
	assert.Contains(t, w.Body.String(), "Something went wrong")

	_, err := sessions.Get(context.Background(), token)
	assert.NoError(t, err, "the session survives a transient backend failure")
}
