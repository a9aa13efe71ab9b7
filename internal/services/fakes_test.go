package services

import (
	"errors"
	"time"

	"carpicks_backend/internal/config"
	"carpicks_backend/internal/email"
	"carpicks_backend/internal/models"
	"carpicks_backend/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. The services take the db handle per call and
// hand it straight to the repository, so the fakes can ignore it and the
// tests pass nil.

type fakeUserRepo struct {
	users map[string]*models.User

	updateErr         error
	updatePasswordErr error
	setResetErr       error
	clearResetErr     error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (f *fakeUserRepo) add(user *models.User) *models.User {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserRepo) FindByID(db *gorm.DB, id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) FindByEmail(db *gorm.DB, emailAddr string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == emailAddr {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) Create(db *gorm.DB, user *models.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	f.add(user)
	return nil
}

func (f *fakeUserRepo) Update(db *gorm.DB, user *models.User) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	stored, ok := f.users[user.ID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	stored.Name = user.Name
	stored.Age = user.Age
	stored.Email = user.Email
	stored.Role = user.Role
	stored.AddedCars = user.AddedCars
	return nil
}

func (f *fakeUserRepo) Delete(db *gorm.DB, userID string) error {
	if _, ok := f.users[userID]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(f.users, userID)
	return nil
}

func (f *fakeUserRepo) UpdatePassword(db *gorm.DB, userID, passwordHash string) error {
	if f.updatePasswordErr != nil {
		return f.updatePasswordErr
	}
	stored, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	stored.PasswordHash = passwordHash
	stored.Role = models.UserRoleUser
	return nil
}

func (f *fakeUserRepo) SetResetToken(db *gorm.DB, userID, tokenHash string, expires time.Time) error {
	if f.setResetErr != nil {
		return f.setResetErr
	}
	stored, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	stored.PasswordResetToken = tokenHash
	stored.PasswordResetExpires = &expires
	return nil
}

func (f *fakeUserRepo) ClearResetToken(db *gorm.DB, userID string) error {
	if f.clearResetErr != nil {
		return f.clearResetErr
	}
	stored, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	stored.PasswordResetToken = ""
	stored.PasswordResetExpires = nil
	return nil
}

func (f *fakeUserRepo) FindByResetTokenHash(db *gorm.DB, tokenHash string, now time.Time) (*models.User, error) {
	if tokenHash == "" {
		return nil, repositories.ErrUserNotFound
	}
	for _, user := range f.users {
		if user.PasswordResetToken == tokenHash &&
			user.PasswordResetExpires != nil &&
			user.PasswordResetExpires.After(now) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

type fakeCarRepo struct {
	cars map[string]*models.Car

	createErr error
	deleteErr error
}

func newFakeCarRepo() *fakeCarRepo {
	return &fakeCarRepo{cars: map[string]*models.Car{}}
}

func (f *fakeCarRepo) Create(db *gorm.DB, car *models.Car) error {
	if f.createErr != nil {
		return f.createErr
	}
	if car.ID == "" {
		car.ID = uuid.NewString()
	}
	f.cars[car.ID] = car
	return nil
}

func (f *fakeCarRepo) FindByID(db *gorm.DB, id string) (*models.Car, error) {
	car, ok := f.cars[id]
	if !ok {
		return nil, repositories.ErrCarNotFound
	}
	copied := *car
	return &copied, nil
}

func (f *fakeCarRepo) Update(db *gorm.DB, id string, updates map[string]interface{}) (*models.Car, error) {
	car, ok := f.cars[id]
	if !ok {
		return nil, repositories.ErrCarNotFound
	}
	if v, ok := updates["color"]; ok {
		car.Color = v.(string)
	}
	if v, ok := updates["daily_price"]; ok {
		car.DailyPrice = v.(float64)
	}
	if v, ok := updates["model"]; ok {
		car.Model = v.(string)
	}
	copied := *car
	return &copied, nil
}

func (f *fakeCarRepo) Delete(db *gorm.DB, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.cars[id]; !ok {
		return repositories.ErrCarNotFound
	}
	delete(f.cars, id)
	return nil
}

func (f *fakeCarRepo) FindAll(db *gorm.DB) ([]models.Car, error) {
	var out []models.Car
	for _, car := range f.cars {
		out = append(out, *car)
	}
	return out, nil
}

func (f *fakeCarRepo) GroupByBrand(db *gorm.DB) ([]repositories.BrandAggregate, error) {
	sums := map[string]struct {
		total float64
		count int
	}{}
	for _, car := range f.cars {
		agg := sums[string(car.Brand)]
		agg.total += car.DailyPrice
		agg.count++
		sums[string(car.Brand)] = agg
	}
	var out []repositories.BrandAggregate
	for brand, agg := range sums {
		out = append(out, repositories.BrandAggregate{
			Brand:        brand,
			AveragePrice: agg.total / float64(agg.count),
		})
	}
	return out, nil
}

// fakeEmailProvider records outbound sends and can be told to fail
type fakeEmailProvider struct {
	sent    []string // recipient addresses
	codes   []string // plaintext codes handed to SendPasswordReset
	failure error
}

func (f *fakeEmailProvider) Send(msg *email.Email) error {
	if f.failure != nil {
		return f.failure
	}
	f.sent = append(f.sent, msg.To...)
	return nil
}

func (f *fakeEmailProvider) SendPasswordReset(to, code, resetURL string) error {
	if f.failure != nil {
		return f.failure
	}
	f.sent = append(f.sent, to)
	f.codes = append(f.codes, code)
	return nil
}

func (f *fakeEmailProvider) Close() error { return nil }

var errBoom = errors.New("boom")

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "unit-test-secret"
	cfg.JWT.TTLMinutes = 60
	return cfg
}
