package labresult

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/clinicore/clinic-admin/internal/handler"
	"github.com/clinicore/clinic-admin/internal/middleware"
	"github.com/clinicore/clinic-admin/internal/model"
)

// Service is the lab result operations the pages need.
type Service interface {
	Create(ctx context.Context, doctorID int64, form *model.LabResultForm) (*model.LabResult, error)
	Get(ctx context.Context, id, doctorID int64) (*model.LabResult, error)
	Update(ctx context.Context, id, doctorID int64, form *model.LabResultForm) (*model.LabResult, error)
	Delete(ctx context.Context, id, doctorID int64) error
	List(ctx context.Context, doctorID int64, filters *model.LabResultFilters) ([]*model.LabResult, error)
}

// PatientDirectory supplies the patient dropdown on the add/edit form.
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
	labResults := r.Group("/lab-results")
	{
		labResults.GET("", h.List)
		labResults.GET("/new", h.ShowCreate)
		labResults.POST("", h.Create)
		labResults.GET("/:id/edit", h.ShowEdit)
		labResults.POST("/:id", h.Update)
		labResults.POST("/:id/delete", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	var filters model.LabResultFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		filters = model.LabResultFilters{}
	}

	results, err := h.service.List(c.Request.Context(), middleware.DoctorID(c), &filters)
	if err != nil {
		h.Fail(c, err, "/dashboard")
		return
	}
	h.Render(c, http.StatusOK, "lab_results.html", gin.H{
		"LabResults": results,
		"Filters":    filters,
	})
}

func (h *Handler) ShowCreate(c *gin.Context) {
	h.Render(c, http.StatusOK, "lab_result_form.html", gin.H{
		"Patients": h.patientOptions(c),
	})
}

func (h *Handler) Create(c *gin.Context) {
	var form model.LabResultForm
	if err := c.ShouldBind(&form); err != nil {
		h.Render(c, http.StatusBadRequest, "lab_result_form.html", gin.H{
			"Error":    "Please check the highlighted fields",
			"Form":     &form,
			"Patients": h.patientOptions(c),
		})
		return
	}

	if _, err := h.service.Create(c.Request.Context(), middleware.DoctorID(c), &form); err != nil {
		h.Fail(c, err, "/lab-results")
		return
	}
	h.RedirectWithFlash(c, "/lab-results", "Lab result added successfully")
}

func (h *Handler) ShowEdit(c *gin.Context) {
	id, err := h.IDParam(c)
	if err != nil {
		h.RedirectWithError(c, "/lab-results", "Record not found")
		return
	}

	lr, err := h.service.Get(c.Request.Context(), id, middleware.DoctorID(c))
	if err != nil {
		h.Fail(c, err, "/lab-results")
		return
	}
	h.Render(c, http.StatusOK, "lab_result_form.html", gin.H{
		"LabResult": lr,
		"Patients":  h.patientOptions(c),
	})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := h.IDParam(c)
	if err != nil {
		h.RedirectWithError(c, "/lab-results", "Record not found")
		return
	}

	var form model.LabResultForm
	if err := c.ShouldBind(&form); err != nil {
		lr, getErr := h.service.Get(c.Request.Context(), id, middleware.DoctorID(c))
		if getErr != nil {
			h.Fail(c, getErr, "/lab-results")
			return
		}
		h.Render(c, http.StatusBadRequest, "lab_result_form.html", gin.H{
			"Error":     "Please check the highlighted fields",
			"LabResult": lr,
			"Form":      &form,
			"Patients":  h.patientOptions(c),
		})
		return
	}

	if _, err := h.service.Update(c.Request.Context(), id, middleware.DoctorID(c), &form); err != nil {
		h.Fail(c, err, "/lab-results")
		return
	}
	h.RedirectWithFlash(c, "/lab-results", "Lab result updated successfully")
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := h.IDParam(c)
	if err != nil {
		h.RedirectWithError(c, "/lab-results", "Record not found")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, middleware.DoctorID(c)); err != nil {
		h.Fail(c, err, "/lab-results")
		return
	}
	h.RedirectWithFlash(c, "/lab-results", "Lab result deleted")
}

func (h *Handler) patientOptions(c *gin.Context) []*model.Patient {
	patients, err := h.patients.ListPatients(c.Request.Context(), &model.PatientFilters{})
	if err != nil {
		log.Warn().Err(err).Msg("failed to load patient options")
		return nil
	}
	return patients
}
