package helpers

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"carpicks_backend/internal/auth"
	"carpicks_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// UniqueEmail returns an email that no other test run has used
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, time.Now().UnixNano())
}

// CreateUser inserts a user row directly, hashing the password when the
// caller passed it in plaintext.
func CreateUser(t *testing.T, db *gorm.DB, user *models.User) {
	if user.PasswordHash != "" && !strings.HasPrefix(user.PasswordHash, "$2a$") {
		hashed, err := auth.HashPassword(user.PasswordHash)
		if err != nil {
			t.Fatalf("Failed to hash test password: %v", err)
		}
		user.PasswordHash = hashed
	}
	if user.Role == "" {
		user.Role = models.UserRoleUser
	}
	if user.Age == 0 {
		user.Age = 25
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user %s: %v", user.Email, err)
	}
}

// CreateAndLoginUser creates an account directly in the database and logs
// it in through the API. The returned client carries the session cookie.
func CreateAndLoginUser(ts *TestServer, t *testing.T, name, email, password string, role models.UserRole) (*http.Client, *models.User) {
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: password,
		Role:         role,
	}
	CreateUser(t, ts.DB, user)

	client := ts.NewClient(t)
	loginBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}
	res, bodyStr := ts.SendRequest(t, client, http.MethodPost, "/auth/login", loginBody)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Login should succeed. Response: "+bodyStr)

	return client, user
}

// CreateAndLoginAdmin creates an admin account directly (the API never
// grants the admin role) and logs it in.
func CreateAndLoginAdmin(ts *TestServer, t *testing.T) (*http.Client, *models.User) {
	email := UniqueEmail("admin")
	return CreateAndLoginUser(ts, t, "Test Admin", email, "Password1!", models.UserRoleAdmin)
}

// CreateCarViaAPI creates a listing through the API as the given client's
// session user and returns the created car id.
func CreateCarViaAPI(ts *TestServer, t *testing.T, client *http.Client) string {
	carBody := map[string]interface{}{
		"carBrand":    "Toyota",
		"carModel":    "Corolla",
		"bodyType":    "sedan",
		"year":        2020,
		"fuelType":    "gasoline",
		"consumption": 6.5,
		"color":       "White",
		"dailyPrice":  45.0,
	}
	res, bodyStr := ts.SendRequest(t, client, http.MethodPost, "/cars", carBody)
	assert.Equal(t, http.StatusCreated, res.StatusCode, "Car creation should succeed. Response: "+bodyStr)

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	DecodeJSON(t, bodyStr, &created)
	assert.NotEmpty(t, created.Data.ID, "Created car should have an id")
	return created.Data.ID
}
