package medicalrecord

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/clinicore/clinic-admin/internal/handler"
	"github.com/clinicore/clinic-admin/internal/middleware"
	"github.com/clinicore/clinic-admin/internal/model"
)

// Service is the medical record operations the pages need.
type Service interface {
	Create(ctx context.Context, doctorID int64, form *model.MedicalRecordForm) (*model.MedicalRecord, error)
	Get(ctx context.Context, id, doctorID int64) (*model.MedicalRecord, error)
	Update(ctx context.Context, id, doctorID int64, form *model.MedicalRecordForm) (*model.MedicalRecord, error)
	Delete(ctx context.Context, id, doctorID int64) error
	List(ctx context.Context, doctorID int64, filters *model.MedicalRecordFilters) ([]*model.MedicalRecord, error)
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
	records := r.Group("/medical-records")
	{
		records.GET("", h.List)
		records.GET("/new", h.ShowCreate)
		records.POST("", h.Create)
		records.GET("/:id", h.Show)
		records.GET("/:id/edit", h.ShowEdit)
		records.POST("/:id", h.Update)
		records.POST("/:id/delete", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	var filters model.MedicalRecordFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		filters = model.MedicalRecordFilters{}
	}

	records, err := h.service.List(c.Request.Context(), middleware.DoctorID(c), &filters)
	if err != nil {
		h.Fail(c, err, "/dashboard")
		return
	}
	h.Render(c, http.StatusOK, "medical_records.html", gin.H{
		"Records": records,
		"Filters": filters,
	})
}

func (h *Handler) ShowCreate(c *gin.Context) {
	h.Render(c, http.StatusOK, "medical_record_form.html", gin.H{
		"Patients": h.patientOptions(c),
	})
}

func (h *Handler) Create(c *gin.Context) {
	var form model.MedicalRecordForm
	if err := c.ShouldBind(&form); err != nil {
		h.Render(c, http.StatusBadRequest, "medical_record_form.html", gin.H{
			"Error":    "Please check the highlighted fields",
			"Form":     &form,
			"Patients": h.patientOptions(c),
		})
		return
	}

	if _, err := h.service.Create(c.Request.Context(), middleware.DoctorID(c), &form); err != nil {
		h.Fail(c, err, "/medical-records")
		return
	}
	h.RedirectWithFlash(c, "/medical-records", "Medical record added successfully")
}

func (h *Handler) Show(c *gin.Context) {
	id, err := h.IDParam(c)
	if err != nil {
		h.RedirectWithError(c, "/medical-records", "Record not found")
		return
	}

	mr, err := h.service.Get(c.Request.Context(), id, middleware.DoctorID(c))
	if err != nil {
		h.Fail(c, err, "/medical-records")
		return
	}
	h.Render(c, http.StatusOK, "medical_record_detail.html", gin.H{
		"Record": mr,
	})
}

func (h *Handler) ShowEdit(c *gin.Context) {
	id, err := h.IDParam(c)
	if err != nil {
		h.RedirectWithError(c, "/medical-records", "Record not found")
		return
	}

	mr, err := h.service.Get(c.Request.Context(), id, middleware.DoctorID(c))
	if err != nil {
		h.Fail(c, err, "/medical-records")
		return
	}
	h.Render(c, http.StatusOK, "medical_record_form.html", gin.H{
		"Record":   mr,
		"Patients": h.patientOptions(c),
	})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := h.IDParam(c)
	if err != nil {
		h.RedirectWithError(c, "/medical-records", "Record not found")
		return
	}

	var form model.MedicalRecordForm
	if err := c.ShouldBind(&form); err != nil {
		mr, getErr := h.service.Get(c.Request.Context(), id, middleware.DoctorID(c))
		if getErr != nil {
			h.Fail(c, getErr, "/medical-records")
			return
		}
		h.Render(c, http.StatusBadRequest, "medical_record_form.html", gin.H{
			"Error":    "Please check the highlighted fields",
			"Record":   mr,
			"Form":     &form,
			"Patients": h.patientOptions(c),
		})
		return
	}

	if _, err := h.service.Update(c.Request.Context(), id, middleware.DoctorID(c), &form); err != nil {
		h.Fail(c, err, "/medical-records")
		return
	}
	h.RedirectWithFlash(c, "/medical-records", "Medical record updated successfully")
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := h.IDParam(c)
	if err != nil {
		h.RedirectWithError(c, "/medical-records", "Record not found")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, middleware.DoctorID(c)); err != nil {
		h.Fail(c, err, "/medical-records")
		return
	}
	h.RedirectWithFlash(c, "/medical-records", "Medical record deleted")
}

func (h *Handler) patientOptions(c *gin.Context) []*model.Patient {
	patients, err := h.patients.ListPatients(c.Request.Context(), &model.PatientFilters{})
	if err != nil {
		log.Warn().Err(err).Msg("failed to load patient options")
		return nil
	}
	return patients
}
