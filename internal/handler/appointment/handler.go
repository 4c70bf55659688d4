package appointment

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/clinicore/clinic-admin/internal/handler"
	"github.com/clinicore/clinic-admin/internal/middleware"
	"github.com/clinicore/clinic-admin/internal/model"
)

// Service is the appointment operations the pages need. Every call carries
// the acting doctor's id from the session.
type Service interface {
	Create(ctx context.Context, doctorID int64, form *model.AppointmentForm) (*model.Appointment, error)
	Get(ctx context.Context, id, doctorID int64) (*model.Appointment, error)
	Update(ctx context.Context, id, doctorID int64, form *model.AppointmentForm) (*model.Appointment, error)
	Delete(ctx context.Context, id, doctorID int64) error
	List(ctx context.Context, doctorID int64, filters *model.AppointmentFilters) ([]*model.Appointment, error)
}

// PatientDirectory supplies the patient dropdown on the scheduling form.
type PatientDirectory interface {
	ListPatients(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error)
}

type Handler struct {
	service  Service
	patients PatientDirectory
	*handler.Base
}

func NewHandler(service Service, patients PatientDirectory, base *handler.Base) *Handler {
	return &Handler{service: service, patients: patients, Base: base}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("", h.List)
		appointments.GET("/new", h.ShowCreate)
		appointments.POST("", h.Create)
		appointments.GET("/:id/edit", h.ShowEdit)
		appointments.POST("/:id", h.Update)
		appointments.POST("/:id/delete", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	var filters model.AppointmentFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		filters = model.AppointmentFilters{}
	}

	appointments, err := h.service.List(c.Request.Context(), middleware.DoctorID(c), &filters)
	if err != nil {
		h.Fail(c, err, "/dashboard")
		return
	}
	h.Render(c, http.StatusOK, "appointments.html", gin.H{
		"Appointments": appointments,
		"Filters":      filters,
	})
}

func (h *Handler) ShowCreate(c *gin.Context) {
	h.Render(c, http.StatusOK, "appointment_form.html", gin.H{
		"Patients": h.patientOptions(c),
	})
}

func (h *Handler) Create(c *gin.Context) {
	var form model.AppointmentForm
	if err := c.ShouldBind(&form); err != nil {
		h.Render(c, http.StatusBadRequest, "appointment_form.html", gin.H{
			"Error":    "Please check the highlighted fields",
			"Form":     &form,
			"Patients": h.patientOptions(c),
		})
		return
	}

	if _, err := h.service.Create(c.Request.Context(), middleware.DoctorID(c), &form); err != nil {
		h.Fail(c, err, "/appointments")
		return
	}
	h.RedirectWithFlash(c, "/appointments", "Appointment scheduled successfully")
}

func (h *Handler) ShowEdit(c *gin.Context) {
	id, err := h.IDParam(c)
	if err != nil {
		h.RedirectWithError(c, "/appointments", "Record not found")
		return
	}

	apt, err := h.service.Get(c.Request.Context(), id, middleware.DoctorID(c))
	if err != nil {
		h.Fail(c, err, "/appointments")
		return
	}
	h.Render(c, http.StatusOK, "appointment_form.html", gin.H{
		"Appointment": apt,
		"Patients":    h.patientOptions(c),
	})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := h.IDParam(c)
	if err != nil {
		h.RedirectWithError(c, "/appointments", "Record not found")
		return
	}

	var form model.AppointmentForm
	if err := c.ShouldBind(&form); err != nil {
		apt, getErr := h.service.Get(c.Request.Context(), id, middleware.DoctorID(c))
		if getErr != nil {
			h.Fail(c, getErr, "/appointments")
			return
		}
		h.Render(c, http.StatusBadRequest, "appointment_form.html", gin.H{
			"Error":       "Please check the highlighted fields",
			"Appointment": apt,
			"Form":        &form,
			"Patients":    h.patientOptions(c),
		})
		return
	}

	if _, err := h.service.Update(c.Request.Context(), id, middleware.DoctorID(c), &form); err != nil {
		h.Fail(c, err, "/appointments")
		return
	}
	h.RedirectWithFlash(c, "/appointments", "Appointment updated successfully")
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := h.IDParam(c)
	if err != nil {
		h.RedirectWithError(c, "/appointments", "Record not found")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, middleware.DoctorID(c)); err != nil {
		h.Fail(c, err, "/appointments")
		return
	}
	h.RedirectWithFlash(c, "/appointments", "Appointment deleted")
}

func (h *Handler) patientOptions(c *gin.Context) []*model.Patient {
	patients, err := h.patients.ListPatients(c.Request.Context(), &model.PatientFilters{})
	if err != nil {
		log.Warn().Err(err).Msg("failed to load patient options")
		return nil
	}
	return patients
}
