package services

import (
	"fmt"

	"carpicks_backend/internal/models"
	"carpicks_backend/internal/repositories"
	"carpicks_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type UserService interface {
	GetByID(db *gorm.DB, id string) (*models.User, error)
	DeleteUser(db *gorm.DB, id string) error
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

func (s *UserServiceImpl) GetByID(db *gorm.DB, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("No user found with id %s", id))
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

// DeleteUser removes the account. Cars the user created stay behind with a
// now-dangling creator reference; listings outlive their author.
func (s *UserServiceImpl) DeleteUser(db *gorm.DB, id string) error {
	if err := s.userRepo.Delete(db, id); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError(fmt.Sprintf("No user found with id %s", id))
		}
		return apperrors.InternalError(err)
	}
	return nil
}
