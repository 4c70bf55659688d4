package prescription

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/clinicore/clinic-admin/internal/handler"
	"github.com/clinicore/clinic-admin/internal/middleware"
	"github.com/clinicore/clinic-admin/internal/model"
)

// Service is the prescription operations the pages need. There is no edit
// flow; a superseded prescription gets a replacement row.
type Service interface {
	Create(ctx context.Context, doctorID int64, form *model.PrescriptionForm) (*model.Prescription, error)
	Get(ctx context.Context, id, doctorID int64) (*model.Prescription, error)
	Delete(ctx context.Context, id, doctorID int64) error
	List(ctx context.Context, doctorID int64, filters *model.PrescriptionFilters) ([]*model.Prescription, error)
}

// PatientDirectory supplies the patient dropdown on the add form.
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
	prescriptions := r.Group("/prescriptions")
	{
		prescriptions.GET("", h.List)
		prescriptions.GET("/new", h.ShowCreate)
		prescriptions.POST("", h.Create)
		prescriptions.GET("/:id", h.Show)
		prescriptions.POST("/:id/delete", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	var filters model.PrescriptionFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		filters = model.PrescriptionFilters{}
	}

	prescriptions, err := h.service.List(c.Request.Context(), middleware.DoctorID(c), &filters)
	if err != nil {
		h.Fail(c, err, "/dashboard")
		return
	}
	h.Render(c, http.StatusOK, "prescriptions.html", gin.H{
		"Prescriptions": prescriptions,
		"Filters":       filters,
	})
}

func (h *Handler) ShowCreate(c *gin.Context) {
	h.Render(c, http.StatusOK, "prescription_form.html", gin.H{
		"Patients": h.patientOptions(c),
	})
}

func (h *Handler) Create(c *gin.Context) {
	var form model.PrescriptionForm
	if err := c.ShouldBind(&form); err != nil {
		h.Render(c, http.StatusBadRequest, "prescription_form.html", gin.H{
			"Error":    "Please check the highlighted fields",
			"Form":     &form,
			"Patients": h.patientOptions(c),
		})
		return
	}

	if _, err := h.service.Create(c.Request.Context(), middleware.DoctorID(c), &form); err != nil {
		h.Fail(c, err, "/prescriptions")
		return
	}
	h.RedirectWithFlash(c, "/prescriptions", "Prescription added successfully")
}

func (h *Handler) Show(c *gin.Context) {
	id, err := h.IDParam(c)
	if err != nil {
		h.RedirectWithError(c, "/prescriptions", "Record not found")
		return
	}

	rx, err := h.service.Get(c.Request.Context(), id, middleware.DoctorID(c))
	if err != nil {
		h.Fail(c, err, "/prescriptions")
		return
	}
	h.Render(c, http.StatusOK, "prescription_detail.html", gin.H{
		"Prescription": rx,
	})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := h.IDParam(c)
	if err != nil {
		h.RedirectWithError(c, "/prescriptions", "Record not found")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, middleware.DoctorID(c)); err != nil {
		h.Fail(c, err, "/prescriptions")
		return
	}
	h.RedirectWithFlash(c, "/prescriptions", "Prescription deleted")
}

func (h *Handler) patientOptions(c *gin.Context) []*model.Patient {
	patients, err := h.patients.ListPatients(c.Request.Context(), &model.PatientFilters{})
	if err != nil {
		log.Warn().Err(err).Msg("failed to load patient options")
		return nil
	}
	return patients
}
