package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plateful/plateful/internal/api/middleware"
	"github.com/plateful/plateful/internal/service"
)

// AuthHandler handles account and session endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler.
// Parameters:
//   - authService: auth service instance.
// Returns:
//   - *AuthHandler: initialized handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /api/v1/register.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) || errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Registration failed: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login handles POST /api/v1/login.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Login failed: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token.Key,
		"user":  user,
	})
}

// Logout handles POST /api/v1/logout.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.Token(c)
	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Logout failed: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}
