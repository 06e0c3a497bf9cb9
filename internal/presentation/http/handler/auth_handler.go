package handler

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scentworks/scentworks-api/internal/application/service"
	"github.com/scentworks/scentworks-api/internal/presentation/http/dto/request"
	"github.com/scentworks/scentworks-api/internal/presentation/http/dto/response"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.Register(c.Request.Context(), &service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Account created successfully", gin.H{
		"user":          output.User,
		"access_token":  output.AccessToken,
		"refresh_token": output.RefreshToken,
	})
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", gin.H{
		"user":          output.User,
		"access_token":  output.AccessToken,
		"refresh_token": output.RefreshToken,
	})
}

// RefreshToken handles token refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Token refreshed successfully", gin.H{
		"access_token":  output.AccessToken,
		"refresh_token": output.RefreshToken,
	})
}

// GoogleLogin redirects to the Google consent page
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	stateBytes := make([]byte, 16)
	if _, err := rand.Read(stateBytes); err != nil {
		response.ErrorWithCode(c, http.StatusInternalServerError, "Failed to generate state")
		return
	}
	state := hex.EncodeToString(stateBytes)

	url, err := h.authService.GoogleAuthURL(state)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.SetCookie("oauth_state", state, 600, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// GoogleCallback completes the Google OAuth flow
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	state, err := c.Cookie("oauth_state")
	if err != nil || state == "" || state != c.Query("state") {
		response.Unauthorized(c, "Invalid OAuth state")
		return
	}
	c.SetCookie("oauth_state", "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		response.BadRequest(c, "Missing authorization code")
		return
	}

	output, err := h.authService.GoogleLogin(c.Request.Context(), code)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", gin.H{
		"user":          output.User,
		"access_token":  output.AccessToken,
		"refresh_token": output.RefreshToken,
	})
}

// Profile returns the authenticated user's profile
func (h *AuthHandler) Profile(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved successfully", user)
}
