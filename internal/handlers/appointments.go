package handlers

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"medibook-server/internal/booking"
	"medibook-server/internal/middleware"
	"medibook-server/internal/models"
	"medibook-server/internal/utils"
)

const dateLayout = "2006-01-02"

// AppointmentHandler exposes the appointment lifecycle over HTTP. All of the
// actual rules live in the booking service; this layer binds requests, maps
// errors to status codes, and composes the read-side views.
type AppointmentHandler struct {
	Svc *booking.Service
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(svc *booking.Service) *AppointmentHandler {
	return &AppointmentHandler{Svc: svc}
}

// patientSummary is the patient projection embedded in appointment views.
type patientSummary struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// appointmentView joins the appointment with patient and doctor summaries.
// The join happens here, at the API layer, so the booking core stays free of
// presentation concerns.
type appointmentView struct {
	models.Appointment
	Patient patientSummary       `json:"patient"`
	Doctor  models.DoctorSummary `json:"doctor"`
}

func toView(appt *models.Appointment) appointmentView {
	return appointmentView{
		Appointment: *appt,
		Patient: patientSummary{
			ID:          appt.Patient.ID,
			FirstName:   appt.Patient.FirstName,
			LastName:    appt.Patient.LastName,
			Email:       appt.Patient.Email,
			PhoneNumber: appt.Patient.PhoneNumber,
		},
		Doctor: appt.Doctor.Summary(),
	}
}

func toViews(appts []models.Appointment) []appointmentView {
	views := make([]appointmentView, 0, len(appts))
	for i := range appts {
		views = append(views, toView(&appts[i]))
	}
	return views
}

// callerIdentity extracts the verified caller set by the auth middleware.
func callerIdentity(c *gin.Context) (booking.Identity, bool) {
	id, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return booking.Identity{}, false
	}
	role, ok := middleware.GetUserRoleFromContext(c)
	if !ok {
		return booking.Identity{}, false
	}
	return booking.Identity{ID: id, Role: role}, true
}

// respondBookingError maps booking errors to HTTP responses.
func respondBookingError(c *gin.Context, err error) {
	if ve, ok := booking.AsValidationError(err); ok {
		utils.ErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ve.Fields)
		return
	}
	switch {
	case errors.Is(err, booking.ErrAppointmentNotFound),
		errors.Is(err, booking.ErrDoctorNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, booking.ErrNotAuthorized):
		utils.Forbidden(c, "You do not have access to this appointment")
	case errors.Is(err, booking.ErrSlotTaken):
		utils.Conflict(c, err.Error())
	case errors.Is(err, booking.ErrPastDate),
		errors.Is(err, booking.ErrAlreadyCancelled),
		errors.Is(err, booking.ErrCancelCompleted),
		errors.Is(err, booking.ErrUnknownStatus),
		errors.Is(err, booking.ErrInvalidTransition):
		utils.BadRequest(c, err.Error())
	default:
		utils.InternalServerError(c, "Internal error")
		slog.Error("appointment request failed", "error", err, "path", c.FullPath())
	}
}

// GetAppointments lists the caller's appointments with optional status
// filter and pagination.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	appts, total, err := h.Svc.List(c.Request.Context(), caller, booking.ListFilter{
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		respondBookingError(c, err)
		return
	}
	utils.Success(c, "Appointments fetched successfully", gin.H{
		"appointments": toViews(appts),
		"total":        total,
		"pagination": gin.H{
			"page":  page,
			"pages": int(math.Ceil(float64(total) / float64(limit))),
			"limit": limit,
		},
	})
}

// GetAppointmentByID fetches a single appointment for a participant or admin.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	appt, err := h.Svc.Get(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	utils.Success(c, "Appointment fetched successfully", toView(appt))
}

// CreateAppointmentRequest represents the request body for booking a slot.
type CreateAppointmentRequest struct {
	DoctorID        string `json:"doctorId" binding:"required,uuid"`
	AppointmentDate string `json:"appointmentDate" binding:"required"`
	StartTime       string `json:"startTime" binding:"required"`
	EndTime         string `json:"endTime" binding:"required"`
	Symptoms        string `json:"symptoms" binding:"max=1000"`
	Notes           string `json:"notes" binding:"max=500"`
}

// CreateAppointment books a slot for the calling patient.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	date, err := time.ParseInLocation(dateLayout, req.AppointmentDate, time.Local)
	if err != nil {
		utils.BadRequest(c, "appointmentDate must be in YYYY-MM-DD format")
		return
	}

	appt, err := h.Svc.Create(c.Request.Context(), caller, booking.CreateInput{
		DoctorID:        req.DoctorID,
		AppointmentDate: date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Symptoms:        req.Symptoms,
		Notes:           req.Notes,
	})
	if err != nil {
		respondBookingError(c, err)
		return
	}

	utils.Created(c, "Appointment booked successfully", toView(appt))
}

// UpdateAppointment applies a role-projected field update. Fields the
// caller's role may not touch are dropped without an error.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req booking.UpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	appt, err := h.Svc.Update(c.Request.Context(), caller, c.Param("id"), req)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	utils.Success(c, "Appointment updated successfully", toView(appt))
}

// CancelAppointmentRequest carries the optional cancellation reason.
type CancelAppointmentRequest struct {
	CancellationReason string `json:"cancellationReason" binding:"max=500"`
}

// CancelAppointment transitions the appointment to cancelled.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req CancelAppointmentRequest
	// Body is optional; a missing or empty body just means no reason given.
	_ = c.ShouldBindJSON(&req)

	appt, err := h.Svc.Cancel(c.Request.Context(), caller, c.Param("id"), req.CancellationReason)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	utils.Success(c, "Appointment cancelled successfully", toView(appt))
}
