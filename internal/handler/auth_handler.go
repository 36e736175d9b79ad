package handler

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"cmsapi/internal/model"
	"cmsapi/internal/rbac"
	"cmsapi/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterUserData is the account a visitor signs up with.
type RegisterUserData struct {
	Email     string     `json:"email" validate:"required,email"`
	Password  string     `json:"password" validate:"required,min=6,max=72"`
	FirstName string     `json:"firstName" validate:"required"`
	LastName  string     `json:"lastName" validate:"required"`
	Role      rbac.Role  `json:"role" validate:"omitempty,oneof=SuperAdmin ProjectAdmin Manager Client"`
	Location  string     `json:"location"`
	Status    *bool      `json:"status"`
	BirthAt   *time.Time `json:"birthAt"`
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	RegisterUserData *RegisterUserData `json:"registerUserData" validate:"required"`
}

// Credentials is an email and password pair.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	LoginUserData *Credentials `json:"loginUserData" validate:"required"`
}

// ValidPasswordRequest asks whether credentials match.
type ValidPasswordRequest struct {
	ValidPasswordData *Credentials `json:"validPasswordData" validate:"required"`
}

// RefreshRequest carries a refresh token for rotation or revocation.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// VerifyEmailData names the account that forgot its password.
type VerifyEmailData struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyEmailRequest starts the password reset flow.
type VerifyEmailRequest struct {
	VerifyEmail *VerifyEmailData `json:"verifyEmail" validate:"required"`
}

// ResetTokenData identifies a password reset link.
type ResetTokenData struct {
	ID    uint   `json:"id" validate:"required"`
	Token string `json:"token" validate:"required"`
}

// ResetLinkRequest checks a password reset link.
type ResetLinkRequest struct {
	PasswordResetToken *ResetTokenData `json:"passwordResetToken" validate:"required"`
}

// ChangePasswordRequest sets a new password through a reset link.
type ChangePasswordRequest struct {
	Password           string          `json:"password" validate:"required,min=6,max=72"`
	PasswordResetToken *ResetTokenData `json:"passwordResetToken" validate:"required"`
}

// TokenResponse carries a freshly issued token pair.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	Message string `json:"message"`
	TokenResponse
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	UserInfo model.PublicProfile `json:"userInfo"`
	TokenResponse
}

// MessageResponse carries a human readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidPasswordResponse reports whether credentials match.
type ValidPasswordResponse struct {
	ValidPassword bool `json:"validPassword"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} RegisterResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	data := req.RegisterUserData
	pair, _, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		Email:     data.Email,
		Password:  data.Password,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Role:      data.Role,
		Location:  data.Location,
		Status:    data.Status,
		BirthAt:   data.BirthAt,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, RegisterResponse{
		Message:       "user registered successfully",
		TokenResponse: TokenResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken},
	})
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	pair, user, err := h.authService.Login(c.Request().Context(), req.LoginUserData.Email, req.LoginUserData.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, LoginResponse{
		UserInfo:      user.Profile(),
		TokenResponse: TokenResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken},
	})
}

// Refresh godoc
// @Summary Rotate a refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 201 {object} TokenResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/refreshToken [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	pair, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, TokenResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

// Revoke godoc
// @Summary Logout by revoking a refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/revokeRefreshTokens [post]
func (h *AuthHandler) Revoke(c echo.Context) error {
	var req RefreshRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.authService.Revoke(c.Request().Context(), req.RefreshToken); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, MessageResponse{Message: "refresh token revoked"})
}

// ValidPassword godoc
// @Summary Check credentials without opening a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ValidPasswordRequest true "Credentials"
// @Success 201 {object} ValidPasswordResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/valid_password [post]
func (h *AuthHandler) ValidPassword(c echo.Context) error {
	var req ValidPasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	valid, err := h.authService.ValidPassword(c.Request().Context(), req.ValidPasswordData.Email, req.ValidPasswordData.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, ValidPasswordResponse{ValidPassword: valid})
}

// VerifyEmail godoc
// @Summary Send a password reset link
// @Tags auth
// @Accept json
// @Produce json
// @Param request body VerifyEmailRequest true "Account email"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/verify_email [post]
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	var req VerifyEmailRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.authService.ForgotPassword(c.Request().Context(), req.VerifyEmail.Email); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, MessageResponse{Message: "a password reset link has been sent to your email"})
}

// ResetPasswordLink godoc
// @Summary Check a password reset link
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetLinkRequest true "Reset link"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/reset_password_link [post]
func (h *AuthHandler) ResetPasswordLink(c echo.Context) error {
	var req ResetLinkRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	remaining, err := h.authService.CheckResetToken(c.Request().Context(), req.PasswordResetToken.ID, req.PasswordResetToken.Token)
	if err != nil {
		return err
	}

	minutes := int(math.Ceil(remaining.Minutes()))
	return c.JSON(http.StatusCreated, MessageResponse{
		Message: fmt.Sprintf("password reset link is valid for %d more minutes", minutes),
	})
}

// ChangePassword godoc
// @Summary Set a new password through a reset link
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ChangePasswordRequest true "New password and reset link"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/change_password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req ChangePasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	reset := req.PasswordResetToken
	if err := h.authService.ChangePassword(c.Request().Context(), reset.ID, reset.Token, req.Password); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, MessageResponse{Message: "password changed successfully"})
}
