package billing

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/clinicore/clinic-admin/internal/handler"
	"github.com/clinicore/clinic-admin/internal/middleware"
	"github.com/clinicore/clinic-admin/internal/model"
)

// Service is the billing operations the pages need.
type Service interface {
	Create(ctx context.Context, doctorID int64, form *model.BillingForm) (*model.Billing, error)
	Get(ctx context.Context, id, doctorID int64) (*model.Billing, error)
	Update(ctx context.Context, id, doctorID int64, form *model.BillingForm) (*model.Billing, error)
	Delete(ctx context.Context, id, doctorID int64) error
	List(ctx context.Context, doctorID int64, filters *model.BillingFilters) ([]*model.Billing, error)
}

// PatientDirectory supplies the patient dropdown on the add/edit form.
type PatientDirectory interface {
	ListPatients(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error)
}

// AppointmentLister supplies the optional appointment link dropdown.
type AppointmentLister interface {
	List(ctx context.Context, doctorID int64, filters *model.AppointmentFilters) ([]*model.Appointment, error)
}

type Handler struct {
	service      Service
	patients     PatientDirectory
	appointments AppointmentLister
	*handler.Base
}

func NewHandler(service Service, patients PatientDirectory, appointments AppointmentLister, base *handler.Base) *Handler {
	return &Handler{service: service, patients: patients, appointments: appointments, Base: base}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	billing := r.Group("/billing")
	{
		billing.GET("", h.List)
		billing.GET("/new", h.ShowCreate)
		billing.POST("", h.Create)
		billing.GET("/:id", h.Show)
		billing.GET("/:id/edit", h.ShowEdit)
		billing.POST("/:id", h.Update)
		billing.POST("/:id/delete", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	var filters model.BillingFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		filters = model.BillingFilters{}
	}

	bills, err := h.service.List(c.Request.Context(), middleware.DoctorID(c), &filters)
	if err != nil {
		h.Fail(c, err, "/dashboard")
		return
	}
	h.Render(c, http.StatusOK, "billing.html", gin.H{
		"Bills":   bills,
		"Filters": filters,
	})
}

func (h *Handler) ShowCreate(c *gin.Context) {
	h.Render(c, http.StatusOK, "billing_form.html", gin.H{
		"Patients":     h.patientOptions(c),
		"Appointments": h.appointmentOptions(c),
	})
}

func (h *Handler) Create(c *gin.Context) {
	var form model.BillingForm
	if err := c.ShouldBind(&form); err != nil {
		// A zero, negative, or non-numeric amount lands here and never
		// reaches the service.
		h.Render(c, http.StatusBadRequest, "billing_form.html", gin.H{
			"Error":        "Amount must be a positive number",
			"Form":         &form,
			"Patients":     h.patientOptions(c),
			"Appointments": h.appointmentOptions(c),
		})
		return
	}

	if _, err := h.service.Create(c.Request.Context(), middleware.DoctorID(c), &form); err != nil {
		h.Fail(c, err, "/billing")
		return
	}
	h.RedirectWithFlash(c, "/billing", "Billing record added successfully")
}

func (h *Handler) Show(c *gin.Context) {
	id, err := h.IDParam(c)
	if err != nil {
		h.RedirectWithError(c, "/billing", "Record not found")
		return
	}

	bill, err := h.service.Get(c.Request.Context(), id, middleware.DoctorID(c))
	if err != nil {
		h.Fail(c, err, "/billing")
		return
	}
	h.Render(c, http.StatusOK, "billing_detail.html", gin.H{
		"Bill": bill,
	})
}

func (h *Handler) ShowEdit(c *gin.Context) {
	id, err := h.IDParam(c)
	if err != nil {
		h.RedirectWithError(c, "/billing", "Record not found")
		return
	}

	bill, err := h.service.Get(c.Request.Context(), id, middleware.DoctorID(c))
	if err != nil {
		h.Fail(c, err, "/billing")
		return
	}
	h.Render(c, http.StatusOK, "billing_form.html", gin.H{
		"Bill":         bill,
		"Patients":     h.patientOptions(c),
		"Appointments": h.appointmentOptions(c),
	})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := h.IDParam(c)
	if err != nil {
		h.RedirectWithError(c, "/billing", "Record not found")
		return
	}

	var form model.BillingForm
	if err := c.ShouldBind(&form); err != nil {
		bill, getErr := h.service.Get(c.Request.Context(), id, middleware.DoctorID(c))
		if getErr != nil {
			h.Fail(c, getErr, "/billing")
			return
		}
		h.Render(c, http.StatusBadRequest, "billing_form.html", gin.H{
			"Error":        "Amount must be a positive number",
			"Bill":         bill,
			"Form":         &form,
			"Patients":     h.patientOptions(c),
			"Appointments": h.appointmentOptions(c),
		})
		return
	}

	if _, err := h.service.Update(c.Request.Context(), id, middleware.DoctorID(c), &form); err != nil {
		h.Fail(c, err, "/billing")
		return
	}
	h.RedirectWithFlash(c, "/billing", "Billing record updated successfully")
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := h.IDParam(c)
	if err != nil {
		h.RedirectWithError(c, "/billing", "Record not found")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, middleware.DoctorID(c)); err != nil {
		h.Fail(c, err, "/billing")
		return
	}
	h.RedirectWithFlash(c, "/billing", "Billing record deleted")
}

func (h *Handler) patientOptions(c *gin.Context) []*model.Patient {
	patients, err := h.patients.ListPatients(c.Request.Context(), &model.PatientFilters{})
	if err != nil {
		log.Warn().Err(err).Msg("failed to load patient options")
		return nil
	}
	return patients
}

func (h *Handler) appointmentOptions(c *gin.Context) []*model.Appointment {
	appointments, err := h.appointments.List(c.Request.Context(), middleware.DoctorID(c), &model.AppointmentFilters{})
	if err != nil {
		log.Warn().Err(err).Msg("failed to load appointment options")
		return nil
	}
	return appointments
}
