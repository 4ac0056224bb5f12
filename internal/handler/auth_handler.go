package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gym-service/internal/middleware"
	"gym-service/internal/model"
	"gym-service/pkg/database"
	"gym-service/pkg/jwtutil"
	"gym-service/pkg/logger"
	"gym-service/prometheus"
)

// Register creates a new member account in the scoped tenant. Admin and
// superadmin accounts are provisioned out of band, never through this route.
func Register(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Phone    string `json:"phone"`
		TenantID string `json:"tenant_id"`
	}
	if err := c.Bind(&req); err != nil {
		prometheus.RecordAuthError("invalid_request")
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		prometheus.RecordAuthError("incomplete_registration")
		return jsonError(c, http.StatusBadRequest, "name, email and password are required")
	}
	if len(req.Password) < 6 {
		prometheus.RecordAuthError("weak_password")
		return jsonError(c, http.StatusBadRequest, "password must be at least 6 characters")
	}

	tenantID, ok := middleware.ScopeFromContext(c)
	if !ok {
		tenantID = req.TenantID
	}
	if tenantID == "" {
		prometheus.RecordAuthError("missing_tenant")
		return jsonError(c, http.StatusBadRequest, "tenant context required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "registration failed")
	}

	user := model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     model.RoleUser,
		TenantID: &tenantID,
		Phone:    req.Phone,
		IsActive: true,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := database.GetDB().Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			prometheus.RecordAuthError("email_already_exists")
			return jsonError(c, http.StatusBadRequest, "email already registered")
		}
		log.Error("Failed to create user", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "registration failed")
	}

	log.Info("User registered",
		zap.String("email", user.Email),
		zap.String("tenant_id", tenantID))

	return jsonSuccess(c, http.StatusCreated, "User registered successfully", echo.Map{"user": user})
}

// Login verifies credentials and issues a JWT carrying the principal's role
// and owning tenant
func Login(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		prometheus.RecordAuthError("invalid_request")
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	if err := database.GetDB().Where("email = ?", req.Email).First(&user).Error; err != nil {
		log.Warn("Login failed, user not found", zap.String("email", req.Email))
		prometheus.RecordAuthError("user_not_found")
		return jsonError(c, http.StatusUnauthorized, "invalid credentials")
	}

	if !user.IsActive {
		log.Warn("Login attempt for deactivated account", zap.String("email", req.Email))
		prometheus.RecordAuthError("account_inactive")
		return jsonError(c, http.StatusUnauthorized, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Warn("Login failed, invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return jsonError(c, http.StatusUnauthorized, "invalid credentials")
	}

	token, err := jwtutil.GenerateToken(user.Email, user.ID, string(user.Role), user.TenantID)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return jsonError(c, http.StatusInternalServerError, "token error")
	}

	log.Info("User logged in",
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)))

	return jsonSuccess(c, http.StatusOK, "", echo.Map{
		"token": token,
		"user":  user,
	})
}

// GetMe returns the authenticated principal's own record
func GetMe(c echo.Context) error {
	log := logger.FromEcho(c)

	claims := middleware.Principal(c)
	if claims == nil {
		return jsonError(c, http.StatusUnauthorized, "authentication required")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	if err := database.GetDB().First(&user, "id = ?", claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, http.StatusNotFound, "User not found")
		}
		log.Error("Failed to retrieve user", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to retrieve profile")
	}

	return jsonSuccess(c, http.StatusOK, "", echo.Map{"user": user})
}

// UpdateProfile updates the authenticated principal's name and phone
func UpdateProfile(c echo.Context) error {
	log := logger.FromEcho(c)

	claims := middleware.Principal(c)
	if claims == nil {
		return jsonError(c, http.StatusUnauthorized, "authentication required")
	}

	var req struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}

	var user model.User
	if err := database.GetDB().First(&user, "id = ?", claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, http.StatusNotFound, "User not found")
		}
		log.Error("Failed to retrieve user", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to update profile")
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := database.GetDB().Save(&user).Error; err != nil {
		log.Error("Failed to update profile", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to update profile")
	}

	return jsonSuccess(c, http.StatusOK, "Profile updated successfully", echo.Map{"user": user})
}

// ChangePassword verifies the current password and replaces it
func ChangePassword(c echo.Context) error {
	log := logger.FromEcho(c)

	claims := middleware.Principal(c)
	if claims == nil {
		return jsonError(c, http.StatusUnauthorized, "authentication required")
	}

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request body")
	}
	if len(req.NewPassword) < 6 {
		return jsonError(c, http.StatusBadRequest, "password must be at least 6 characters")
	}

	var user model.User
	if err := database.GetDB().First(&user, "id = ?", claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, http.StatusNotFound, "User not found")
		}
		log.Error("Failed to retrieve user", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to change password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		prometheus.RecordAuthError("invalid_password")
		return jsonError(c, http.StatusUnauthorized, "current password is incorrect")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to change password")
	}

	user.Password = string(hashedPassword)

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := database.GetDB().Save(&user).Error; err != nil {
		log.Error("Failed to change password", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, "failed to change password")
	}

	return jsonSuccess(c, http.StatusOK, "Password changed successfully", nil)
}
