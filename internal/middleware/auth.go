package middleware

import (
	"carpicks_backend/internal/auth"
	"carpicks_backend/internal/config"
	"carpicks_backend/internal/logger"
	"carpicks_backend/internal/models"
	"carpicks_backend/internal/repositories"
	"carpicks_backend/pkg/apperrors"
	"carpicks_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware is the session check: it reads the session cookie, verifies
// the token, resolves it to a live user record, and attaches the identity to
// the request. This is the only way downstream handlers learn who is
// calling.
func AuthMiddleware(cfg *config.Config, userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(cfg.Cookie.Name)
		if err != nil || tokenStr == "" {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("You are not logged in"))
			return
		}

		claims, err := auth.ParseToken(tokenStr, cfg.JWT.Secret)
		if err != nil {
			// Expired and invalid both surface as not-authenticated
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("You are not logged in"))
			return
		}

		db, ok := c.Value(string(contextkeys.DBContextKey)).(*gorm.DB)
		if !ok {
			apperrors.HandleError(c, apperrors.InternalError(errMissingDB))
			return
		}

		// Account deletion is the only token invalidation besides expiry
		user, err := userRepo.FindByID(db, claims.UserID)
		if err != nil {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("The user doesn't exist"))
			return
		}

		c.Set(contextkeys.UserIDKey, user.ID)
		c.Set(contextkeys.CurrentUserKey, user)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), user.ID))
		c.Next()
	}
}

// AdminMiddleware restricts a route to administrators. It must run after
// AuthMiddleware and fails closed when no identity made it into the context.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok {
			apperrors.HandleError(c, apperrors.NewForbiddenError("You don't have permission to perform this action"))
			return
		}

		if user.Role != models.UserRoleAdmin {
			apperrors.HandleError(c, apperrors.NewForbiddenError("You don't have permission to perform this action"))
			return
		}

		c.Next()
	}
}

// GetCurrentUser extracts the authenticated user attached by AuthMiddleware
func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	val, exists := c.Get(contextkeys.CurrentUserKey)
	if !exists {
		return nil, false
	}

	user, ok := val.(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// GetUserID extracts the authenticated user id from the gin context
func GetUserID(c *gin.Context) string {
	val, exists := c.Get(contextkeys.UserIDKey)
	if !exists {
		return ""
	}

	id, ok := val.(string)
	if !ok {
		return ""
	}
	return id
}
