package handlers

import (
	"net/http"

	"carpicks_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewAdminHandler(base *BaseHandler, userService services.UserService) *AdminHandler {
	return &AdminHandler{
		BaseHandler: base,
		userService: userService,
	}
}

// RegisterRoutes registers the admin-only routes behind the session and the
// role guard.
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup, session, adminOnly gin.HandlerFunc) {
	admin := rg.Group("/admin", session, adminOnly)
	{
		admin.DELETE("/deleteUser/:id", h.DeleteUser)
	}
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	db := h.GetDB(c)

	if err := h.userService.DeleteUser(db, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "User deleted successfully",
	})
}
