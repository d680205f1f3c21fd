package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jonylazarte/ecommerce-page/internal/service"
	"github.com/jonylazarte/ecommerce-page/pkg/middleware"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request parameters", gin.H{
			"validation_error": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, token, err := h.authService.Register(c.Request.Context(), strings.TrimSpace(req.Name), email, req.Password)
	if err != nil {
		failErr(c, "Registration failed", err)
		return
	}

	respond(c, http.StatusCreated, "User registered successfully", gin.H{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request parameters", gin.H{
			"validation_error": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, token, err := h.authService.Login(c.Request.Context(), email, req.Password)
	if err != nil {
		failErr(c, "Login failed", err)
		return
	}

	respond(c, http.StatusOK, "Login successful", gin.H{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")

	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		failErr(c, "Logout failed", err)
		return
	}
	respond(c, http.StatusOK, "Logged out successfully", nil)
}

// Me returns the session payload for the current token.
func (h *AuthHandler) Me(c *gin.Context) {
	respond(c, http.StatusOK, "Session valid", gin.H{
		"user_id": c.GetString(middleware.ContextUserID),
		"email":   c.GetString(middleware.ContextEmail),
		"role":    c.GetString(middleware.ContextRole),
	})
}
