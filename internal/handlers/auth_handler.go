package handlers

import (
	"fmt"
	"net/http"

	"carpicks_backend/internal/config"
	"carpicks_backend/internal/services"
	"carpicks_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
		cfg:         cfg,
	}
}

// RegisterRoutes registers the authentication routes. The session-guarded
// profile route takes the middleware as argument so route wiring stays in
// one place.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, session gin.HandlerFunc) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/logout", h.Logout)
		auth.GET("/profile", session, h.Profile)
		auth.POST("/login/forgotPassword", h.ForgotPassword)
		auth.PATCH("/login/resetPassword/:token", h.ResetPassword)
	}
}

// setSessionCookie writes the session cookie. One attribute set, used for
// both setting and clearing, so the clear always matches the set.
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		h.cfg.Cookie.Name,
		token,
		maxAge,
		"/",
		"",
		h.cfg.Cookie.Secure,
		true, // httpOnly: unreadable from browser JavaScript
	)
}

// Register creates the account and logs it in in one step: the session
// cookie is set right away, no separate login call needed.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	user, token, err := h.authService.Register(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, token, h.cfg.Cookie.MaxAge)

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Status:  "success",
		Message: fmt.Sprintf("User %s created and logged in", user.Name),
		Data:    user,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	user, token, err := h.authService.Login(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, token, h.cfg.Cookie.MaxAge)

	c.JSON(http.StatusOK, dto.AuthResponse{
		Status:  "success",
		Message: "Logged in successfully with cookie",
		Data:    user,
	})
}

// Logout overwrites the session cookie with an empty value and a max-age in
// the past. The attribute set matches the one used at set-time, otherwise
// the browser would keep the cookie. Idempotent: succeeds with or without a
// live session.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Logged out successfully",
	})
}

// Profile returns the identity the session middleware attached
func (h *AuthHandler) Profile(c *gin.Context) {
	user, ok := h.RequireCurrentUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"user":   user,
	})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	// The reset link points back at the consumption endpoint on this host
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	resetURLBase := fmt.Sprintf("%s://%s/auth/login/resetPassword", scheme, c.Request.Host)

	if err := h.authService.RequestPasswordReset(db, req.Email, resetURLBase); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Token sent to email!",
	})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	token, err := h.authService.ResetPassword(db, c.Param("token"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	// Reset consumption logs the user in
	h.setSessionCookie(c, token, h.cfg.Cookie.MaxAge)

	c.JSON(http.StatusOK, dto.ResetPasswordResponse{
		Status: "success",
		Token:  token,
	})
}
