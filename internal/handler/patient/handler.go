package patient

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicore/clinic-admin/internal/handler"
	"github.com/clinicore/clinic-admin/internal/model"
)

// Service is the patient directory operations the pages need.
type Service interface {
	CreatePatient(ctx context.Context, form *model.PatientForm) (*model.Patient, error)
	GetPatient(ctx context.Context, id int64) (*model.Patient, error)
	UpdatePatient(ctx context.Context, id int64, form *model.PatientForm) (*model.Patient, error)
	DeletePatient(ctx context.Context, id int64) error
	ListPatients(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error)
}

type Handler struct {
	service Service
	*handler.Base
}

func NewHandler(service Service, base *handler.Base) *Handler {
	return &Handler{service: service, Base: base}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.GET("", h.List)
		patients.GET("/new", h.ShowCreate)
		patients.POST("", h.Create)
		patients.GET("/:id/edit", h.ShowEdit)
		patients.POST("/:id", h.Update)
		patients.POST("/:id/delete", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	var filters model.PatientFilters
	_ = c.ShouldBindQuery(&filters)

	patients, err := h.service.ListPatients(c.Request.Context(), &filters)
	if err != nil {
		h.Fail(c, err, "/dashboard")
		return
	}
	h.Render(c, http.StatusOK, "patients.html", gin.H{
		"Patients": patients,
		"Search":   filters.Search,
	})
}

func (h *Handler) ShowCreate(c *gin.Context) {
	h.Render(c, http.StatusOK, "patient_form.html", nil)
}

func (h *Handler) Create(c *gin.Context) {
	var form model.PatientForm
	if err := c.ShouldBind(&form); err != nil {
		h.Render(c, http.StatusBadRequest, "patient_form.html", gin.H{
			"Error": "Please check the highlighted fields",
			"Form":  &form,
		})
		return
	}

	if _, err := h.service.CreatePatient(c.Request.Context(), &form); err != nil {
		h.Fail(c, err, "/patients")
		return
	}
	h.RedirectWithFlash(c, "/patients", "Patient added successfully")
}

func (h *Handler) ShowEdit(c *gin.Context) {
	id, err := h.IDParam(c)
	if err != nil {
		h.RedirectWithError(c, "/patients", "Record not found")
		return
	}

	patient, err := h.service.GetPatient(c.Request.Context(), id)
	if err != nil {
		h.Fail(c, err, "/patients")
		return
	}
	h.Render(c, http.StatusOK, "patient_form.html", gin.H{
		"Patient": patient,
	})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := h.IDParam(c)
	if err != nil {
		h.RedirectWithError(c, "/patients", "Record not found")
		return
	}

	var form model.PatientForm
	if err := c.ShouldBind(&form); err != nil {
		patient, getErr := h.service.GetPatient(c.Request.Context(), id)
		if getErr != nil {
			h.Fail(c, getErr, "/patients")
			return
		}
		h.Render(c, http.StatusBadRequest, "patient_form.html", gin.H{
			"Error":   "Please check the highlighted fields",
			"Patient": patient,
			"Form":    &form,
		})
		return
	}

	if _, err := h.service.UpdatePatient(c.Request.Context(), id, &form); err != nil {
		h.Fail(c, err, "/patients")
		return
	}
	h.RedirectWithFlash(c, "/patients", "Patient updated successfully")
}

// Delete removes the patient and, atomically with it, every appointment,
// prescription, lab result, and billing record that references them.
func (h *Handler) Delete(c *gin.Context) {
	id, err := h.IDParam(c)
	if err != nil {
		h.RedirectWithError(c, "/patients", "Record not found")
		return
	}

	if err := h.service.DeletePatient(c.Request.Context(), id); err != nil {
		h.Fail(c, err, "/patients")
		return
	}
	h.RedirectWithFlash(c, "/patients", "Patient and all related records deleted")
}
