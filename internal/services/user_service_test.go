package services

import (
	"testing"

	"carpicks_backend/internal/models"
	"carpicks_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
)

func TestUserService_GetByID(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo)
	user := userRepo.add(&models.User{Name: "Someone", Email: "someone@test.com"})

	found, err := svc.GetByID(nil, user.ID)
	assert.NoError(t, err)
	assert.Equal(t, "someone@test.com", found.Email)

	_, err = svc.GetByID(nil, "missing")
	var appErr *apperrors.AppError
	assert.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestUserService_DeleteUser(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo)
	user := userRepo.add(&models.User{Name: "Victim", Email: "victim@test.com"})

	assert.NoError(t, svc.DeleteUser(nil, user.ID))
	_, ok := userRepo.users[user.ID]
	assert.False(t, ok)

	err := svc.DeleteUser(nil, user.ID)
	var appErr *apperrors.AppError
	assert.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 404, appErr.HTTPCode)
}
