package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medibook-server/internal/config"
	"medibook-server/internal/middleware"
	"medibook-server/internal/models"
	"medibook-server/internal/utils"
)

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{DB: db, Cfg: cfg}
}

// RegisterRequest represents the request body for user registration.
// Doctors must provide their practice details; an admin later verifies the
// account before it appears in the public directory.
type RegisterRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Role      string `json:"role" binding:"required,oneof=patient doctor"`

	// Doctor profile fields, required when role is doctor
	Specialization    string  `json:"specialization"`
	LicenseNumber     string  `json:"licenseNumber"`
	Bio               string  `json:"bio"`
	YearsOfExperience int     `json:"yearsOfExperience"`
	ConsultationFee   float64 `json:"consultationFee"`
}

// Register handles user registration.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if req.Role == string(models.RoleDoctor) && req.Specialization == "" {
		utils.BadRequest(c, "Specialization is required for doctor accounts")
		return
	}

	var existingUser models.User
	if err := h.DB.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		utils.BadRequest(c, "User with this email already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.InternalServerError(c, "Database error")
		slog.Error("register: lookup existing user", "error", err)
		return
	}

	user := models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      models.Role(req.Role),
	}
	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password")
		slog.Error("register: hash password", "error", err)
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if user.Role == models.RoleDoctor {
			doctor := models.Doctor{
				UserID:            user.ID,
				Specialization:    req.Specialization,
				LicenseNumber:     req.LicenseNumber,
				Bio:               req.Bio,
				YearsOfExperience: req.YearsOfExperience,
				ConsultationFee:   req.ConsultationFee,
				IsVerified:        false,
			}
			if err := tx.Create(&doctor).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to create user")
		slog.Error("register: create user", "error", err)
		return
	}

	utils.Created(c, "User registered successfully", user.Sanitize())
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response body for successful login.
type LoginResponse struct {
	AccessToken  string               `json:"accessToken"`
	RefreshToken string               `json:"refreshToken"`
	User         models.UserSanitized `json:"user"`
}

// Login handles user login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Unauthorized(c, "Invalid email or password")
		} else {
			utils.InternalServerError(c, "Database error")
			slog.Error("login: lookup user", "error", err)
		}
		return
	}

	if !user.CheckPassword(req.Password) {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	accessToken, refreshTokenString, err := utils.GenerateTokens(&user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate tokens")
		slog.Error("login: generate tokens", "error", err)
		return
	}

	refreshToken := models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshTokenString,
		ExpiresAt: time.Now().Add(time.Duration(h.Cfg.JWTRefreshExpirationHours) * time.Hour),
	}
	if err := h.DB.Create(&refreshToken).Error; err != nil {
		utils.InternalServerError(c, "Failed to store refresh token")
		slog.Error("login: store refresh token", "error", err)
		return
	}

	h.setRefreshCookie(c, refreshTokenString, h.Cfg.JWTRefreshExpirationHours*60*60)

	utils.Success(c, "Login successful", LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenString,
		User:         user.Sanitize(),
	})
}

// RefreshTokenRequest represents the request body for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RefreshTokenResponse represents the response body for successful token refresh.
type RefreshTokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshToken rotates the refresh token and issues a fresh access token.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	tokenString, err := c.Cookie("refresh_token")
	if err != nil || tokenString == "" {
		var req RefreshTokenRequest
		if !utils.BindAndValidate(c, &req) {
			return
		}
		tokenString = req.RefreshToken
	}

	claims, err := utils.ValidateToken(tokenString, h.Cfg.JWTRefreshSecret)
	if err != nil {
		utils.Unauthorized(c, "Invalid refresh token")
		return
	}

	var storedToken models.RefreshToken
	err = h.DB.Where("token = ? AND user_id = ? AND is_revoked = ? AND expires_at > ?",
		tokenString, claims.UserID, false, time.Now()).First(&storedToken).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Unauthorized(c, "Refresh token not found, expired, or revoked")
		} else {
			utils.InternalServerError(c, "Database error")
			slog.Error("refresh: lookup token", "error", err)
		}
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", claims.UserID).Error; err != nil {
		utils.InternalServerError(c, "Failed to find user associated with token")
		slog.Error("refresh: lookup user", "error", err)
		return
	}

	// Rotate: revoke the old token before issuing a new one.
	storedToken.Revoke()
	h.DB.Save(&storedToken)

	newAccessToken, newRefreshTokenString, err := utils.GenerateTokens(&user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate new tokens")
		slog.Error("refresh: generate tokens", "error", err)
		return
	}

	newRefreshToken := models.RefreshToken{
		UserID:    user.ID,
		Token:     newRefreshTokenString,
		ExpiresAt: time.Now().Add(time.Duration(h.Cfg.JWTRefreshExpirationHours) * time.Hour),
	}
	if err := h.DB.Create(&newRefreshToken).Error; err != nil {
		utils.InternalServerError(c, "Failed to store new refresh token")
		slog.Error("refresh: store token", "error", err)
		return
	}

	h.setRefreshCookie(c, newRefreshTokenString, h.Cfg.JWTRefreshExpirationHours*60*60)

	utils.Success(c, "Access token refreshed successfully", RefreshTokenResponse{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshTokenString,
	})
}

// Logout revokes the presented refresh token.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		if cookie, cerr := c.Cookie("refresh_token"); cerr == nil {
			req.RefreshToken = cookie
		}
	}
	if req.RefreshToken == "" {
		utils.BadRequest(c, "Refresh token is required")
		return
	}

	var storedToken models.RefreshToken
	err := h.DB.Where("token = ? AND is_revoked = ?", req.RefreshToken, false).First(&storedToken).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Already invalid, which is fine for logout.
			utils.Success(c, "Logout successful", nil)
		} else {
			utils.InternalServerError(c, "Database error")
			slog.Error("logout: lookup token", "error", err)
		}
		return
	}

	storedToken.Revoke()
	if err := h.DB.Save(&storedToken).Error; err != nil {
		utils.InternalServerError(c, "Failed to revoke refresh token")
		slog.Error("logout: revoke token", "error", err)
		return
	}

	h.setRefreshCookie(c, "", -1)
	utils.Success(c, "Logout successful. Refresh token has been invalidated.", nil)
}

// GetProfile handles fetching the currently authenticated user's profile.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "User profile not found")
		} else {
			utils.InternalServerError(c, "Database error")
			slog.Error("profile: lookup user", "error", err)
		}
		return
	}

	utils.Success(c, "Profile fetched successfully", user.Sanitize())
}

// UpdateProfileRequest represents the request body for updating user profile.
type UpdateProfileRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
}

// UpdateProfile handles updating the currently authenticated user's profile.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.Address != "" {
		user.Address = req.Address
	}

	if err := h.DB.Save(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to update profile")
		slog.Error("profile: save user", "error", err)
		return
	}

	utils.Success(c, "Profile updated successfully", user.Sanitize())
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, value string, maxAge int) {
	c.SetCookie(
		"refresh_token",
		value,
		maxAge,
		"/",
		"",
		h.Cfg.Environment != "development",
		true,
	)
}
