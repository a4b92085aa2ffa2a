package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/pestops-backend/internal/http/response"
	"github.com/yungbote/pestops-backend/internal/platform/logger"
	"github.com/yungbote/pestops-backend/internal/services"
)

type AppointmentHandler struct {
	log *logger.Logger
	svc services.AppointmentService
}

func NewAppointmentHandler(log *logger.Logger, svc services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{log: log.With("handler", "AppointmentHandler"), svc: svc}
}

// An id that does not parse cannot name an appointment, so it answers like an unknown one.
func appointmentIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil || id == uuid.Nil {
		response.RespondError(c, http.StatusNotFound, "not_found", errors.New("appointment not found"))
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("malformed request body"))
		return false
	}
	return true
}

// POST /api/projects/:id/appointments
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "not_found", errors.New("project not found"))
		return
	}
	var req services.CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.svc.CreateAppointment(c.Request.Context(), projectID, req)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// GET /api/projects/:id/appointments
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "not_found", errors.New("project not found"))
		return
	}
	out, err := h.svc.ListAppointments(c.Request.Context(), projectID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// DELETE /api/Appointment/:id
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	id, ok := appointmentIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteAppointment(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/Appointment/:id/TreatmentProduct
func (h *AppointmentHandler) ListTreatmentProducts(c *gin.Context) {
	id, ok := appointmentIDParam(c)
	if !ok {
		return
	}
	out, err := h.svc.ListTreatmentProducts(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// PATCH /api/Appointment/:id/TreatmentProduct
func (h *AppointmentHandler) ReconcileTreatmentProducts(c *gin.Context) {
	id, ok := appointmentIDParam(c)
	if !ok {
		return
	}
	var items []services.TreatmentProductRequest
	if !bindJSON(c, &items) {
		return
	}
	// A literal null decodes to a nil slice; only [] may clear the list.
	if items == nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("treatment products must be a JSON array"))
		return
	}
	if err := h.svc.ReconcileTreatmentProducts(c.Request.Context(), id, items); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// GET /api/Appointment/:id/RodentRegister
func (h *AppointmentHandler) GetRodentRegister(c *gin.Context) {
	id, ok := appointmentIDParam(c)
	if !ok {
		return
	}
	out, err := h.svc.GetRodentRegister(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// PATCH /api/Appointment/:id/RodentRegister
func (h *AppointmentHandler) PatchRodentRegister(c *gin.Context) {
	id, ok := appointmentIDParam(c)
	if !ok {
		return
	}
	var req services.RodentRegisterPatchRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.svc.PatchRodentRegister(c.Request.Context(), id, req)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/Appointment/:id/OperationSheet
func (h *AppointmentHandler) GetOperationSheet(c *gin.Context) {
	id, ok := appointmentIDParam(c)
	if !ok {
		return
	}
	out, err := h.svc.GetOperationSheet(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// PATCH /api/Appointment/:id/OperationSheet
func (h *AppointmentHandler) PatchOperationSheet(c *gin.Context) {
	id, ok := appointmentIDParam(c)
	if !ok {
		return
	}
	var body map[string]any
	if !bindJSON(c, &body) {
		return
	}
	out, err := h.svc.PatchOperationSheet(c.Request.Context(), id, body)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/Appointment/:id/Certificate
func (h *AppointmentHandler) GetCertificate(c *gin.Context) {
	id, ok := appointmentIDParam(c)
	if !ok {
		return
	}
	out, err := h.svc.GetCertificate(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// PATCH /api/Appointment/:id/Certificate
func (h *AppointmentHandler) PatchCertificate(c *gin.Context) {
	id, ok := appointmentIDParam(c)
	if !ok {
		return
	}
	var req services.CertificatePatchRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.svc.PatchCertificate(c.Request.Context(), id, req)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /api/appointment/:id/duplicate-from-previous
func (h *AppointmentHandler) DuplicateFromPrevious(c *gin.Context) {
	id, ok := appointmentIDParam(c)
	if !ok {
		return
	}
	out, err := h.svc.DuplicateFromPrevious(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}
