package handlers

import (
	"errors"
	"log/slog"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medibook-server/internal/models"
	"medibook-server/internal/utils"
)

// AdminHandler covers administrative operations, primarily doctor account
// verification.
type AdminHandler struct {
	DB *gorm.DB
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{DB: db}
}

// GetDoctors lists all doctor profiles including unverified ones, with an
// optional verified filter.
func (h *AdminHandler) GetDoctors(c *gin.Context) {
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

	q := h.DB.Model(&models.Doctor{})
	if verified := c.Query("verified"); verified != "" {
		v, err := strconv.ParseBool(verified)
		if err != nil {
			utils.BadRequest(c, "verified must be true or false")
			return
		}
		q = q.Where("is_verified = ?", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count doctors")
		slog.Error("admin doctors: count", "error", err)
		return
	}

	var doctors []models.Doctor
	err := q.Preload("User").
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&doctors).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors")
		slog.Error("admin doctors: list", "error", err)
		return
	}

	utils.Success(c, "Doctors fetched successfully", gin.H{
		"doctors": doctors,
		"total":   total,
		"pagination": gin.H{
			"page":  page,
			"pages": int(math.Ceil(float64(total) / float64(limit))),
			"limit": limit,
		},
	})
}

// VerifyDoctor marks a doctor account as verified so it appears in the
// public directory.
func (h *AdminHandler) VerifyDoctor(c *gin.Context) {
	var doctor models.Doctor
	if err := h.DB.Preload("User").First(&doctor, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error")
			slog.Error("verify doctor: lookup", "error", err)
		}
		return
	}

	if doctor.IsVerified {
		utils.Success(c, "Doctor is already verified", doctor)
		return
	}

	doctor.IsVerified = true
	if err := h.DB.Save(&doctor).Error; err != nil {
		utils.InternalServerError(c, "Failed to verify doctor")
		slog.Error("verify doctor: save", "error", err)
		return
	}

	slog.Info("doctor verified", "doctorId", doctor.ID)
	utils.Success(c, "Doctor verified successfully", doctor)
}
