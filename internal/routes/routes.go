package routes

import (
	"fmt"
	"net/http"

	"carpicks_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything route registration needs
type Handlers struct {
	Auth   *handlers.AuthHandler
	Car    *handlers.CarHandler
	Admin  *handlers.AdminHandler
	Upload *handlers.UploadHandler

	// Session resolves the cookie to a user; AdminOnly additionally
	// requires the admin role and must run after Session.
	Session   gin.HandlerFunc
	AdminOnly gin.HandlerFunc
}

// RegisterRoutes wires every route group onto the router
func RegisterRoutes(router *gin.Engine, h Handlers) {
	root := router.Group("")

	h.Auth.RegisterRoutes(root, h.Session)
	h.Car.RegisterRoutes(root, h.Session)
	h.Admin.RegisterRoutes(root, h.Session, h.AdminOnly)
	h.Upload.RegisterRoutes(root)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "failed",
			"message": fmt.Sprintf("Route %s not found", c.Request.URL.Path),
		})
	})
}
