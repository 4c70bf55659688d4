package dashboard

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/clinicore/clinic-admin/internal/handler"
	"github.com/clinicore/clinic-admin/internal/middleware"
	"github.com/clinicore/clinic-admin/internal/model"
	apperrors "github.com/clinicore/clinic-admin/pkg/errors"
)

// Service assembles the dashboard aggregates.
type Service interface {
	Overview(ctx context.Context, doctorID int64) (*model.DashboardStats, []*model.Appointment, error)
}

// DoctorLoader probes the doctor row behind the session.
type DoctorLoader interface {
	GetDoctor(ctx context.Context, id int64) (*model.Doctor, error)
}

type Handler struct {
	service Service
	doctors DoctorLoader
	*handler.Base
}

func NewHandler(service Service, doctors DoctorLoader, base *handler.Base) *Handler {
	return &Handler{service: service, doctors: doctors, Base: base}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard", h.Show)
}

func (h *Handler) Show(c *gin.Context) {
	ctx := c.Request.Context()
	doctorID := middleware.DoctorID(c)

	doctor, err := h.doctors.GetDoctor(ctx, doctorID)
	if err != nil {
		// The session points at a doctor that no longer exists; tear it
		// down rather than serving pages for a ghost account.
		if apperrors.IsNotFound(err) {
			if destroyErr := h.Sessions.Destroy(ctx, middleware.SessionToken(c)); destroyErr != nil {
				log.Warn().Err(destroyErr).Msg("failed to destroy stale session")
			}
			c.SetCookie(h.Sessions.CookieName(), "", -1, "/", "", false, true)
			h.Redirect(c, "/login")
			return
		}
		// Any other failure renders in place. Redirecting to /login here
		// would bounce the still-valid session straight back to /dashboard
		// and loop for as long as the database is down.
		log.Error().Err(err).Msg("failed to load doctor")
		h.Render(c, http.StatusInternalServerError, "error.html", gin.H{
			"Message": "Something went wrong, please try again",
		})
		return
	}

	stats, upcoming, err := h.service.Overview(ctx, doctorID)
	if err != nil {
		log.Error().Err(err).Msg("failed to load dashboard")
		stats = &model.DashboardStats{}
	}

	h.Render(c, http.StatusOK, "dashboard.html", gin.H{
		"Doctor":   doctor,
		"Stats":    stats,
		"Upcoming": upcoming,
	})
}
