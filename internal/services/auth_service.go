package services

import (
	"fmt"
	"strings"
	"time"

	"carpicks_backend/internal/auth"
	"carpicks_backend/internal/config"
	"carpicks_backend/internal/email"
	"carpicks_backend/internal/logger"
	"carpicks_backend/internal/models"
	"carpicks_backend/internal/repositories"
	"carpicks_backend/internal/services/dto"
	"carpicks_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*models.User, string, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*models.User, string, error)
	RequestPasswordReset(db *gorm.DB, emailAddr, resetURLBase string) error
	ResetPassword(db *gorm.DB, code string, req *dto.ResetPasswordRequest) (string, error)
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	emailProvider email.Provider
	cfg           *config.Config
}

func NewAuthService(userRepo repositories.UserRepository, emailProvider email.Provider, cfg *config.Config) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		emailProvider: emailProvider,
		cfg:           cfg,
	}
}

// Register creates the account and logs it in at the same time: the caller
// receives a session token without a separate login call.
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) (*models.User, string, error) {
	// Hashing happens here and only here for this plaintext; the stored
	// digest is never run through bcrypt again.
	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Age:          req.Age,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hashedPassword,
		// Role is force-set on every create that carries a password, no
		// matter what the payload claimed.
		Role: models.UserRoleUser,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, "", apperrors.NewConflictError("You are already registered")
		}
		return nil, "", apperrors.InternalError(err)
	}

	token, err := auth.GenerateToken(user.ID, s.cfg.JWT.Secret, s.cfg.TokenTTL())
	if err != nil {
		return nil, "", apperrors.InternalError(err)
	}

	return user, token, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password return the identical error so the endpoint cannot be used to
// probe which accounts exist.
func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*models.User, string, error) {
	if req.Email == "" || req.Password == "" {
		return nil, "", apperrors.NewMissingCredentialsError()
	}

	user, err := s.userRepo.FindByEmail(db, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, "", apperrors.NewInvalidCredentialsError()
		}
		return nil, "", apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, "", apperrors.NewInvalidCredentialsError()
	}

	token, err := auth.GenerateToken(user.ID, s.cfg.JWT.Secret, s.cfg.TokenTTL())
	if err != nil {
		return nil, "", apperrors.InternalError(err)
	}

	return user, token, nil
}

// RequestPasswordReset moves the user into the pending-reset state: a
// 6-digit code is generated, only its sha256 is persisted (10 minute
// expiry), and the plaintext goes out by email. A failed send rolls the
// token fields back so the user is never left holding a code that was never
// sent.
func (s *AuthServiceImpl) RequestPasswordReset(db *gorm.DB, emailAddr, resetURLBase string) error {
	user, err := s.userRepo.FindByEmail(db, strings.ToLower(strings.TrimSpace(emailAddr)))
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("There is no user with this email address")
		}
		return apperrors.InternalError(err)
	}

	code, err := auth.GenerateResetCode()
	if err != nil {
		return apperrors.InternalError(err)
	}

	// Overwrites any previous pending token: at most one outstanding reset
	// code per user.
	expires := time.Now().Add(auth.ResetCodeTTL)
	if err := s.userRepo.SetResetToken(db, user.ID, auth.HashResetCode(code), expires); err != nil {
		return apperrors.InternalError(err)
	}

	resetURL := fmt.Sprintf("%s/%s", strings.TrimSuffix(resetURLBase, "/"), code)
	if err := s.emailProvider.SendPasswordReset(user.Email, code, resetURL); err != nil {
		// Roll back before reporting: a pending token whose code was never
		// delivered must not stay live.
		if clearErr := s.userRepo.ClearResetToken(db, user.ID); clearErr != nil {
			logger.Error("failed to clear reset token after delivery failure",
				"user_id", user.ID, "error", clearErr)
		}
		return apperrors.NewEmailDeliveryError(err)
	}

	return nil
}

// ResetPassword exchanges a valid code for a password change and a fresh
// session token. Wrong code and expired code are indistinguishable to the
// caller; a consumed code cannot be used again because the stored hash is
// cleared.
func (s *AuthServiceImpl) ResetPassword(db *gorm.DB, code string, req *dto.ResetPasswordRequest) (string, error) {
	user, err := s.userRepo.FindByResetTokenHash(db, auth.HashResetCode(code), time.Now())
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return "", apperrors.NewInvalidResetTokenError()
		}
		return "", apperrors.InternalError(err)
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	// UpdatePassword also forces the role back to 'user'
	if err := s.userRepo.UpdatePassword(db, user.ID, hashedPassword); err != nil {
		return "", apperrors.InternalError(err)
	}

	if err := s.userRepo.ClearResetToken(db, user.ID); err != nil {
		return "", apperrors.InternalError(err)
	}

	// Consuming the code logs the user in
	token, err := auth.GenerateToken(user.ID, s.cfg.JWT.Secret, s.cfg.TokenTTL())
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	return token, nil
}
