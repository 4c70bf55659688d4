package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/clinicore/clinic-admin/internal/handler"
	"github.com/clinicore/clinic-admin/internal/middleware"
	"github.com/clinicore/clinic-admin/internal/model"
	"github.com/clinicore/clinic-admin/internal/service/auth"
	apperrors "github.com/clinicore/clinic-admin/pkg/errors"
)

// Service is what the auth pages need from the auth service.
type Service interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.Doctor, error)
	Login(ctx context.Context, email, password string) (*model.Doctor, error)
	IssueRememberToken(ctx context.Context, doctorID int64) (string, time.Time, error)
	ClearRememberToken(ctx context.Context, doctorID int64) error
	GetDoctor(ctx context.Context, id int64) (*model.Doctor, error)
	UpdateProfile(ctx context.Context, doctorID int64, req *model.UpdateProfileRequest) (*model.Doctor, error)
}

// StatsProvider supplies the counters shown on the profile page.
type StatsProvider interface {
	ProfileStats(ctx context.Context, doctorID int64) (*model.ProfileStats, error)
}

type Handler struct {
	service Service
	stats   StatsProvider
	*handler.Base
}

func NewHandler(service Service, stats StatsProvider, base *handler.Base) *Handler {
	return &Handler{service: service, stats: stats, Base: base}
}

// RegisterPublicRoutes mounts the pages reachable without a session.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/login", h.ShowLogin)
	r.POST("/login", h.Login)
	r.GET("/register", h.ShowRegister)
	r.POST("/register", h.Register)
}

// RegisterProtectedRoutes mounts the pages behind the auth guard.
func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.GET("/logout", h.Logout)
	r.GET("/profile", h.ShowProfile)
	r.POST("/profile", h.UpdateProfile)
}

func (h *Handler) ShowLogin(c *gin.Context) {
	h.Render(c, http.StatusOK, "login.html", nil)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.Render(c, http.StatusBadRequest, "login.html", gin.H{
			"Error": "Please enter your email and password",
			"Email": req.Email,
		})
		return
	}

	doctor, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			log.Error().Err(err).Msg("login failed")
		}
		h.Render(c, http.StatusUnauthorized, "login.html", gin.H{
			"Error": "Invalid email or password",
			"Email": req.Email,
		})
		return
	}

	if err := h.startSession(c, doctor); err != nil {
		log.Error().Err(err).Msg("failed to start session")
		h.Render(c, http.StatusInternalServerError, "login.html", gin.H{
			"Error": "Something went wrong, please try again",
			"Email": req.Email,
		})
		return
	}

	if req.RememberMe {
		signed, expires, err := h.service.IssueRememberToken(c.Request.Context(), doctor.ID)
		if err != nil {
			log.Error().Err(err).Msg("failed to issue remember token")
		} else {
			maxAge := int(time.Until(expires).Seconds())
			c.SetCookie(middleware.RememberCookie, signed, maxAge, "/", "", false, true)
		}
	}

	h.Redirect(c, "/dashboard")
}

func (h *Handler) ShowRegister(c *gin.Context) {
	h.Render(c, http.StatusOK, "register.html", nil)
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		h.Render(c, http.StatusBadRequest, "register.html", gin.H{
			"Error": "Please check the highlighted fields",
			"Form":  &req,
		})
		return
	}

	doctor, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		status := http.StatusInternalServerError
		message := "Something went wrong, please try again"
		if apperrors.IsValidation(err) {
			status = http.StatusBadRequest
			message = err.Error()
		} else {
			log.Error().Err(err).Msg("registration failed")
		}
		h.Render(c, status, "register.html", gin.H{
			"Error": message,
			"Form":  &req,
		})
		return
	}

	// Fresh accounts go straight to the dashboard.
	if err := h.startSession(c, doctor); err != nil {
		log.Error().Err(err).Msg("failed to start session after registration")
		h.Redirect(c, "/login")
		return
	}
	h.RedirectWithFlash(c, "/dashboard", "Welcome to CliniCore, Dr. "+doctor.LastName)
}

func (h *Handler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.service.ClearRememberToken(ctx, middleware.DoctorID(c)); err != nil {
		log.Warn().Err(err).Msg("failed to clear remember token")
	}
	if err := h.Sessions.Destroy(ctx, middleware.SessionToken(c)); err != nil {
		log.Warn().Err(err).Msg("failed to destroy session")
	}

	c.SetCookie(h.Sessions.CookieName(), "", -1, "/", "", false, true)
	c.SetCookie(middleware.RememberCookie, "", -1, "/", "", false, true)
	h.Redirect(c, "/login")
}

func (h *Handler) ShowProfile(c *gin.Context) {
	doctor, ok := h.loadDoctor(c)
	if !ok {
		return
	}

	stats, err := h.stats.ProfileStats(c.Request.Context(), doctor.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to load profile stats")
		stats = &model.ProfileStats{}
	}

	h.Render(c, http.StatusOK, "profile.html", gin.H{
		"Doctor": doctor,
		"Stats":  stats,
	})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	doctor, ok := h.loadDoctor(c)
	if !ok {
		return
	}

	var req model.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		stats, statsErr := h.stats.ProfileStats(c.Request.Context(), doctor.ID)
		if statsErr != nil {
			stats = &model.ProfileStats{}
		}
		h.Render(c, http.StatusBadRequest, "profile.html", gin.H{
			"Doctor": doctor,
			"Stats":  stats,
			"Error":  "Please check the highlighted fields",
		})
		return
	}

	updated, err := h.service.UpdateProfile(c.Request.Context(), doctor.ID, &req)
	if err != nil {
		h.Fail(c, err, "/profile")
		return
	}

	if err := h.Sessions.SetDoctorName(c.Request.Context(), middleware.SessionToken(c), updated.FullName()); err != nil {
		log.Warn().Err(err).Msg("failed to refresh session name")
	}
	h.RedirectWithFlash(c, "/profile", "Profile updated successfully")
}

// loadDoctor fetches the acting doctor's row. A missing row means the session
// is stale (account removed out-of-band), so the session is torn down and the
// browser sent back to login.
func (h *Handler) loadDoctor(c *gin.Context) (*model.Doctor, bool) {
	doctor, err := h.service.GetDoctor(c.Request.Context(), middleware.DoctorID(c))
	if err == nil {
		return doctor, true
	}
	if apperrors.IsNotFound(err) {
		if destroyErr := h.Sessions.Destroy(c.Request.Context(), middleware.SessionToken(c)); destroyErr != nil {
			log.Warn().Err(destroyErr).Msg("failed to destroy stale session")
		}
		c.SetCookie(h.Sessions.CookieName(), "", -1, "/", "", false, true)
		h.Redirect(c, "/login")
		c.Abort()
		return nil, false
	}
	h.Fail(c, err, "/dashboard")
	return nil, false
}

func (h *Handler) startSession(c *gin.Context, doctor *model.Doctor) error {
	token, err := h.Sessions.Start(c.Request.Context(), doctor.ID, doctor.FullName())
	if err != nil {
		return err
	}
	c.SetCookie(h.Sessions.CookieName(), token, int(h.Sessions.TTL().Seconds()), "/", "", false, true)
	return nil
}
