package integration_test

import (
	"net/http"
	"testing"
	"time"

	"carpicks_backend/internal/auth"
	"carpicks_backend/internal/models"
	"carpicks_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

// TestRegisterAndProfile - registration sets the session cookie and the
// profile endpoint works immediately, without a separate login.
func TestRegisterAndProfile(t *testing.T) {
	ts := GetTestServer(t)
	client := ts.NewClient(t)
	email := helpers.UniqueEmail("register")

	registerBody := map[string]interface{}{
		"name":            "Test Driver",
		"age":             30,
		"email":           email,
		"password":        "Password1!",
		"confirmPassword": "Password1!",
		"role":            "admin", // must be ignored
	}

	regRes, regBodyStr := ts.SendRequest(t, client, http.MethodPost, "/auth/register", registerBody)
	assert.Equal(t, http.StatusCreated, regRes.StatusCode, "Response: "+regBodyStr)
	assert.Contains(t, regBodyStr, email)
	assert.NotContains(t, regBodyStr, "passwordHash")
	assert.NotContains(t, regBodyStr, "Password1!")

	profRes, profBodyStr := ts.SendRequest(t, client, http.MethodGet, "/auth/profile", nil)
	assert.Equal(t, http.StatusOK, profRes.StatusCode, "Response: "+profBodyStr)
	assert.Contains(t, profBodyStr, email)

	// A submitted role is never honored
	var stored models.User
	err := ts.DB.Where("email = ?", email).First(&stored).Error
	assert.NoError(t, err)
	assert.Equal(t, models.UserRoleUser, stored.Role)
}

// TestRegister_DuplicateEmail - re-registering an email fails with 400
func TestRegister_DuplicateEmail(t *testing.T) {
	ts := GetTestServer(t)
	email := helpers.UniqueEmail("duplicate")
	helpers.CreateUser(t, ts.DB, &models.User{
		Name:         "User One",
		Email:        email,
		PasswordHash: "Password1!",
	})

	client := ts.NewClient(t)
	registerBody := map[string]interface{}{
		"name":            "User Two",
		"age":             25,
		"email":           email,
		"password":        "Password1!",
		"confirmPassword": "Password1!",
	}
	regRes, regBodyStr := ts.SendRequest(t, client, http.MethodPost, "/auth/register", registerBody)
	assert.Equal(t, http.StatusBadRequest, regRes.StatusCode)
	assert.Contains(t, regBodyStr, "You are already registered")
}

// TestRegister_WeakPassword - the password rule rejects passwords without a
// digit or special character.
func TestRegister_WeakPassword(t *testing.T) {
	ts := GetTestServer(t)
	client := ts.NewClient(t)

	registerBody := map[string]interface{}{
		"name":            "Weak Password",
		"age":             25,
		"email":           helpers.UniqueEmail("weakpw"),
		"password":        "justletters",
		"confirmPassword": "justletters",
	}
	regRes, regBodyStr := ts.SendRequest(t, client, http.MethodPost, "/auth/register", registerBody)
	assert.Equal(t, http.StatusBadRequest, regRes.StatusCode)
	assert.Contains(t, regBodyStr, "password")
}

// TestLogin_FailuresAreIndistinguishable - an unknown email and a wrong
// password produce byte-identical error responses.
func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	ts := GetTestServer(t)
	email := helpers.UniqueEmail("enum")
	helpers.CreateUser(t, ts.DB, &models.User{
		Name:         "Enum Target",
		Email:        email,
		PasswordHash: "Password1!",
	})

	client := ts.NewClient(t)

	wrongPwRes, wrongPwBody := ts.SendRequest(t, client, http.MethodPost, "/auth/login", map[string]interface{}{
		"email":    email,
		"password": "WrongPassword1!",
	})
	unknownRes, unknownBody := ts.SendRequest(t, client, http.MethodPost, "/auth/login", map[string]interface{}{
		"email":    helpers.UniqueEmail("nobody"),
		"password": "WrongPassword1!",
	})

	assert.Equal(t, http.StatusBadRequest, wrongPwRes.StatusCode)
	assert.Equal(t, http.StatusBadRequest, unknownRes.StatusCode)
	assert.Equal(t, wrongPwBody, unknownBody, "Both failures must look the same to the caller")
	assert.Contains(t, wrongPwBody, "Incorrect email or password")
}

// TestLogin_MissingCredentials - empty email or password is a 400, not 401
func TestLogin_MissingCredentials(t *testing.T) {
	ts := GetTestServer(t)
	client := ts.NewClient(t)

	res, bodyStr := ts.SendRequest(t, client, http.MethodPost, "/auth/login", map[string]interface{}{
		"email": "someone@test.com",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "Please provide email and password for login")
}

// TestLogout - logging out invalidates the cookie for subsequent requests
func TestLogout(t *testing.T) {
	ts := GetTestServer(t)
	client, _ := helpers.CreateAndLoginUser(ts, t, "Logout User", helpers.UniqueEmail("logout"), "Password1!", models.UserRoleUser)

	outRes, outBody := ts.SendRequest(t, client, http.MethodGet, "/auth/logout", nil)
	assert.Equal(t, http.StatusOK, outRes.StatusCode, "Response: "+outBody)

	profRes, _ := ts.SendRequest(t, client, http.MethodGet, "/auth/profile", nil)
	assert.Equal(t, http.StatusUnauthorized, profRes.StatusCode)

	// Logging out twice is fine
	againRes, _ := ts.SendRequest(t, client, http.MethodGet, "/auth/logout", nil)
	assert.Equal(t, http.StatusOK, againRes.StatusCode)
}

// TestForgotPassword_UnknownEmail - requesting a reset for an unknown
// address is a 404.
func TestForgotPassword_UnknownEmail(t *testing.T) {
	ts := GetTestServer(t)
	client := ts.NewClient(t)

	res, bodyStr := ts.SendRequest(t, client, http.MethodPost, "/auth/login/forgotPassword", map[string]interface{}{
		"email": helpers.UniqueEmail("ghost"),
	})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, bodyStr, "There is no user with this email address")
}

// TestForgotPassword_StoresDigestOnly - a successful request persists the
// token digest and expiry, never a plaintext code.
func TestForgotPassword_StoresDigestOnly(t *testing.T) {
	ts := GetTestServer(t)
	email := helpers.UniqueEmail("forgot")
	user := &models.User{
		Name:         "Forgetful",
		Email:        email,
		PasswordHash: "Password1!",
	}
	helpers.CreateUser(t, ts.DB, user)

	res, bodyStr := ts.SendRequest(t, ts.NewClient(t), http.MethodPost, "/auth/login/forgotPassword", map[string]interface{}{
		"email": email,
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, "Response: "+bodyStr)
	assert.Contains(t, bodyStr, "Token sent to email!")

	var stored models.User
	assert.NoError(t, ts.DB.First(&stored, "id = ?", user.ID).Error)
	assert.Len(t, stored.PasswordResetToken, 64, "Only the hex sha256 digest is stored")
	assert.NotNil(t, stored.PasswordResetExpires)
	assert.True(t, stored.PasswordResetExpires.After(time.Now()))
}

// TestResetPasswordFlow - consuming a valid reset code changes the
// password, logs the user in and burns the code.
func TestResetPasswordFlow(t *testing.T) {
	ts := GetTestServer(t)
	email := helpers.UniqueEmail("reset")
	user := &models.User{
		Name:         "Reset User",
		Email:        email,
		PasswordHash: "OldPassword1!",
	}
	helpers.CreateUser(t, ts.DB, user)

	// Plant a known reset code the way the request-reset path stores it:
	// only the digest, with a future expiry.
	code := "123456"
	expires := time.Now().Add(10 * time.Minute)
	err := ts.DB.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"password_reset_token":   auth.HashResetCode(code),
		"password_reset_expires": expires,
	}).Error
	assert.NoError(t, err)

	client := ts.NewClient(t)
	resetBody := map[string]interface{}{
		"password":        "NewPassword1!",
		"confirmPassword": "NewPassword1!",
	}
	res, bodyStr := ts.SendRequest(t, client, http.MethodPatch, "/auth/login/resetPassword/"+code, resetBody)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Response: "+bodyStr)
	assert.Contains(t, bodyStr, "token")

	// The reset logged us in
	profRes, _ := ts.SendRequest(t, client, http.MethodGet, "/auth/profile", nil)
	assert.Equal(t, http.StatusOK, profRes.StatusCode)

	// Old password no longer works, new one does
	oldRes, _ := ts.SendRequest(t, ts.NewClient(t), http.MethodPost, "/auth/login", map[string]interface{}{
		"email":    email,
		"password": "OldPassword1!",
	})
	assert.Equal(t, http.StatusBadRequest, oldRes.StatusCode)

	newRes, _ := ts.SendRequest(t, ts.NewClient(t), http.MethodPost, "/auth/login", map[string]interface{}{
		"email":    email,
		"password": "NewPassword1!",
	})
	assert.Equal(t, http.StatusOK, newRes.StatusCode)

	// The code is single use
	replayRes, replayBody := ts.SendRequest(t, ts.NewClient(t), http.MethodPatch, "/auth/login/resetPassword/"+code, resetBody)
	assert.Equal(t, http.StatusBadRequest, replayRes.StatusCode)
	assert.Contains(t, replayBody, "Token is invalid or has expired")
}

// TestResetPassword_ExpiredCode - an expired code is rejected with the same
// message as an unknown one.
func TestResetPassword_ExpiredCode(t *testing.T) {
	ts := GetTestServer(t)
	email := helpers.UniqueEmail("expired")
	user := &models.User{
		Name:         "Expired Reset",
		Email:        email,
		PasswordHash: "Password1!",
	}
	helpers.CreateUser(t, ts.DB, user)

	code := "654321"
	expires := time.Now().Add(-time.Minute)
	err := ts.DB.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"password_reset_token":   auth.HashResetCode(code),
		"password_reset_expires": expires,
	}).Error
	assert.NoError(t, err)

	res, bodyStr := ts.SendRequest(t, ts.NewClient(t), http.MethodPatch, "/auth/login/resetPassword/"+code, map[string]interface{}{
		"password":        "NewPassword1!",
		"confirmPassword": "NewPassword1!",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "Token is invalid or has expired")
}
