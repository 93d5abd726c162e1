package handlers

import (
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medibook-server/internal/booking"
	"medibook-server/internal/middleware"
	"medibook-server/internal/models"
	"medibook-server/internal/schedule"
	"medibook-server/internal/utils"
)

// DoctorHandler serves the public doctor directory, availability, and the
// doctor's own schedule management.
type DoctorHandler struct {
	DB  *gorm.DB
	Svc *booking.Service
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(db *gorm.DB, svc *booking.Service) *DoctorHandler {
	return &DoctorHandler{DB: db, Svc: svc}
}

// doctorView is the public directory projection of a doctor.
type doctorView struct {
	ID                string  `json:"id"`
	FirstName         string  `json:"firstName"`
	LastName          string  `json:"lastName"`
	Specialization    string  `json:"specialization"`
	Bio               string  `json:"bio,omitempty"`
	YearsOfExperience int     `json:"yearsOfExperience"`
	ConsultationFee   float64 `json:"consultationFee"`
	Rating            float64 `json:"rating"`
	TotalAppointments int     `json:"totalAppointments"`
}

func toDoctorView(d *models.Doctor) doctorView {
	return doctorView{
		ID:                d.ID,
		FirstName:         d.User.FirstName,
		LastName:          d.User.LastName,
		Specialization:    d.Specialization,
		Bio:               d.Bio,
		YearsOfExperience: d.YearsOfExperience,
		ConsultationFee:   d.ConsultationFee,
		Rating:            d.Rating,
		TotalAppointments: d.TotalAppointments,
	}
}

// GetDoctors lists verified doctors, optionally filtered by specialization
// or free-text search. Public endpoint.
func (h *DoctorHandler) GetDoctors(c *gin.Context) {
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

	q := h.DB.Model(&models.Doctor{}).Where("is_verified = ?", true)
	if spec := c.Query("specialization"); spec != "" {
		q = q.Where("specialization LIKE ?", "%"+spec+"%")
	}
	if search := c.Query("search"); search != "" {
		q = q.Where("specialization LIKE ? OR bio LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count doctors")
		slog.Error("doctors: count", "error", err)
		return
	}

	var doctors []models.Doctor
	err := q.Preload("User").
		Order("rating desc, total_appointments desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&doctors).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors")
		slog.Error("doctors: list", "error", err)
		return
	}

	views := make([]doctorView, 0, len(doctors))
	for i := range doctors {
		views = append(views, toDoctorView(&doctors[i]))
	}

	utils.Success(c, "Doctors fetched successfully", gin.H{
		"doctors": views,
		"total":   total,
		"pagination": gin.H{
			"page":  page,
			"pages": int(math.Ceil(float64(total) / float64(limit))),
			"limit": limit,
		},
	})
}

// GetDoctor fetches a single doctor's public profile.
func (h *DoctorHandler) GetDoctor(c *gin.Context) {
	doctor, err := h.Svc.DoctorByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	utils.Success(c, "Doctor fetched successfully", toDoctorView(doctor))
}

// GetAvailability returns the bookable slots for a doctor on a date. Public
// endpoint; an unconfigured day yields an empty list plus a message, not an
// error.
func (h *DoctorHandler) GetAvailability(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		utils.BadRequest(c, "Date is required")
		return
	}
	date, err := time.ParseInLocation(dateLayout, dateStr, time.Local)
	if err != nil {
		utils.BadRequest(c, "date must be in YYYY-MM-DD format")
		return
	}

	doctor, slots, configured, err := h.Svc.DayAvailability(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	if !configured {
		utils.Success(c, "No availability configured for this day", gin.H{
			"availability": []schedule.Slot{},
		})
		return
	}

	utils.Success(c, "Availability fetched successfully", gin.H{
		"availability": slots,
		"doctor":       doctor.Summary(),
	})
}

// GetMyAvailability lists the calling doctor's weekly rules.
func (h *DoctorHandler) GetMyAvailability(c *gin.Context) {
	doctor, ok := h.callerDoctor(c)
	if !ok {
		return
	}

	rules, err := h.Svc.RulesForDoctor(c.Request.Context(), doctor.ID)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	utils.Success(c, "Availability rules fetched successfully", gin.H{"availability": rules})
}

// UpdateAvailabilityRequest wraps the full weekly rule set.
type UpdateAvailabilityRequest struct {
	Availability []booking.RuleInput `json:"availability" binding:"required"`
}

// UpdateAvailability atomically replaces the calling doctor's weekly
// schedule. One invalid rule rejects the whole batch and leaves the previous
// schedule untouched.
func (h *DoctorHandler) UpdateAvailability(c *gin.Context) {
	doctor, ok := h.callerDoctor(c)
	if !ok {
		return
	}

	var req UpdateAvailabilityRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	rules, err := h.Svc.ReplaceRules(c.Request.Context(), doctor.ID, req.Availability)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	utils.Success(c, "Availability updated successfully", gin.H{"availability": rules})
}

// GetDashboard returns the calling doctor's schedule overview.
func (h *DoctorHandler) GetDashboard(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	dashboard, err := h.Svc.DoctorDashboard(c.Request.Context(), userID)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	utils.Success(c, "Dashboard fetched successfully", dashboard)
}

// callerDoctor resolves the doctor profile of the authenticated user and
// writes the error response itself when that fails.
func (h *DoctorHandler) callerDoctor(c *gin.Context) (*models.Doctor, bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return nil, false
	}

	doctor, err := h.Svc.DoctorByUserID(c.Request.Context(), userID)
	if err != nil {
		respondBookingError(c, err)
		return nil, false
	}
	return doctor, true
}
