package email

import "fmt"

// Provider defines the outbound email capability. The auth flow depends on
// this interface only; the SMTP implementation and the test mock are
// interchangeable.
type Provider interface {
	// Send delivers a single message
	Send(email *Email) error

	// SendPasswordReset delivers the plaintext reset code to the user
	SendPasswordReset(to, code, resetURL string) error

	// Close releases transport resources
	Close() error
}

// BuildPasswordResetEmail renders the reset message around the one-time code
func BuildPasswordResetEmail(to, code, resetURL string) *Email {
	body := fmt.Sprintf(
		"Forgot your password?\n\n"+
			"Submit a PATCH request with your new password and confirmPassword to: %s.\n\n"+
			"Your reset code is: %s\n\n"+
			"If you didn't forget your password, please ignore this email!",
		resetURL, code,
	)

	return &Email{
		To:      []string{to},
		Subject: "Your password reset token (valid for 10min)",
		Body:    body,
		HTML:    fmt.Sprintf("<h1>Reset your password</h1><p>Your reset code is: <b>%s</b></p>", code),
	}
}
