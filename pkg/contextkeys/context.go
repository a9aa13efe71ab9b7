package contextkeys

// Custom key type so our context values cannot collide with other packages
type contextKey string

// DBContextKey is the key under which the per-request *gorm.DB handle lives
const DBContextKey = contextKey("db")

// CurrentUserKey is the key under which the authenticated user is stored
const CurrentUserKey = "currentUser"

// UserIDKey is the key under which the authenticated user id is stored
const UserIDKey = "userID"
