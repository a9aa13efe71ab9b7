package app

import "carpicks_backend/internal/email"

// MockEmailProvider is used for tests and local development without SMTP.
type MockEmailProvider struct{}

func (m *MockEmailProvider) Send(emailMsg *email.Email) error { return nil }
func (m *MockEmailProvider) SendPasswordReset(to, code, resetURL string) error {
	return nil
}
func (m *MockEmailProvider) Close() error { return nil }
