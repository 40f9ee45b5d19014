package auth

import (
	"errors"
	"log"
	"net/http"
	"time"

	"b2bportal/internal/middleware"
	"b2bportal/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// CookieSettings controls how the session cookie is issued.
type CookieSettings struct {
	Secure   bool
	SameSite http.SameSite
	Domain   string
	TTL      time.Duration
}

// Handler manages all HTTP interactions for client authentication.
type Handler struct {
	service *Service
	cookie  CookieSettings
	devMode bool
}

func NewHandler(service *Service, cookie CookieSettings, devMode bool) *Handler {
	return &Handler{service: service, cookie: cookie, devMode: devMode}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", h.Logout)
		authGroup.POST("/forgot-password", h.ForgotPassword)
		authGroup.POST("/reset-password", h.ResetPassword)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/auth/me", h.GetMe)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	client, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailAlreadyExists):
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
		case errors.Is(err, ErrWeakPassword):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Password must be at least 8 characters")
		default:
			response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to register")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"client": client})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	client, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
		case errors.Is(err, ErrAccountSuspended):
			response.Error(c, http.StatusForbidden, "ACCOUNT_SUSPENDED", "Account is suspended")
		default:
			response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to login")
		}
		return
	}

	h.setSessionCookie(c, token, int(h.cookie.TTL.Seconds()))
	response.Success(c, http.StatusOK, gin.H{"client": client})
}

func (h *Handler) Logout(c *gin.Context) {
	token, _ := c.Cookie(middleware.ClientSessionCookie)
	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		response.Error(c, http.StatusInternalServerError, "LOGOUT_FAILED", "Failed to logout")
		return
	}

	h.setSessionCookie(c, "", -1)
	response.Success(c, http.StatusOK, gin.H{"message": "logged out"})
}

func (h *Handler) GetMe(c *gin.Context) {
	clientID := c.GetInt64(middleware.CtxClientID)

	client, err := h.service.GetCurrentClient(c.Request.Context(), clientID)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Client not found")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"client": client})
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	token, err := h.service.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "RESET_FAILED", "Failed to process request")
		return
	}

	// same body whether or not the email exists
	data := gin.H{"message": "If the email is registered, a reset link has been sent"}
	if token != "" {
		log.Printf("password reset token issued email=%s", req.Email)
		if h.devMode {
			data["reset_token"] = token
		}
	}
	response.Success(c, http.StatusOK, data)
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	err := h.service.ResetPassword(c.Request.Context(), req.Token, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidResetToken):
			response.Error(c, http.StatusUnauthorized, "INVALID_RESET_TOKEN", "Reset token is invalid or expired")
		case errors.Is(err, ErrWeakPassword):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Password must be at least 8 characters")
		default:
			response.Error(c, http.StatusInternalServerError, "RESET_FAILED", "Failed to reset password")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "password updated"})
}

func (h *Handler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(h.cookie.SameSite)
	c.SetCookie(middleware.ClientSessionCookie, value, maxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
}
