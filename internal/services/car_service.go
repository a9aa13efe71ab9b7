package services

import (
	"fmt"

	"carpicks_backend/internal/logger"
	"carpicks_backend/internal/models"
	"carpicks_backend/internal/repositories"
	"carpicks_backend/internal/services/dto"
	"carpicks_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CarService interface {
	Create(db *gorm.DB, userID string, req *dto.CreateCarRequest) (*models.Car, error)
	GetByID(db *gorm.DB, id string) (*models.Car, error)
	Update(db *gorm.DB, id string, req *dto.UpdateCarRequest) (*models.Car, error)
	Delete(db *gorm.DB, userID, id string) error
	List(db *gorm.DB) ([]models.Car, error)
	GroupByBrand(db *gorm.DB) ([]repositories.BrandAggregate, error)
}

type CarServiceImpl struct {
	carRepo  repositories.CarRepository
	userRepo repositories.UserRepository
}

func NewCarService(carRepo repositories.CarRepository, userRepo repositories.UserRepository) CarService {
	return &CarServiceImpl{
		carRepo:  carRepo,
		userRepo: userRepo,
	}
}

// Create persists the listing with the session user as its immutable
// creator and appends the car id to the owner's back-reference list.
func (s *CarServiceImpl) Create(db *gorm.DB, userID string, req *dto.CreateCarRequest) (*models.Car, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("No user found with id %s", userID))
		}
		return nil, apperrors.InternalError(err)
	}

	images := req.Images
	if len(images) == 0 {
		images = []string{models.DefaultCarImage}
	}

	car := &models.Car{
		Brand:       models.CarBrand(req.Brand),
		Model:       req.Model,
		BodyType:    models.BodyType(req.BodyType),
		Year:        req.Year,
		FuelType:    models.FuelType(req.FuelType),
		Consumption: req.Consumption,
		Color:       req.Color,
		Images:      datatypes.NewJSONSlice(images),
		DailyPrice:  req.DailyPrice,
		AddedBy:     user.ID,
	}

	if err := s.carRepo.Create(db, car); err != nil {
		return nil, apperrors.InternalError(err)
	}

	user.AddedCars = append(user.AddedCars, car.ID)
	if err := s.userRepo.Update(db, user); err != nil {
		// The two writes are not transactional; compensate so we do not
		// leave a car its owner can never delete.
		if delErr := s.carRepo.Delete(db, car.ID); delErr != nil {
			logger.Error("failed to compensate car create", "car_id", car.ID, "error", delErr)
		}
		return nil, apperrors.InternalError(err)
	}

	return car, nil
}

func (s *CarServiceImpl) GetByID(db *gorm.DB, id string) (*models.Car, error) {
	car, err := s.carRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCarNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("No car found with id %s", id))
		}
		return nil, apperrors.InternalError(err)
	}
	return car, nil
}

// Update applies a partial update of the mutable fields. The creator
// reference is never touched.
func (s *CarServiceImpl) Update(db *gorm.DB, id string, req *dto.UpdateCarRequest) (*models.Car, error) {
	updates := map[string]interface{}{}
	if req.Brand != nil {
		updates["brand"] = *req.Brand
	}
	if req.Model != nil {
		updates["model"] = *req.Model
	}
	if req.BodyType != nil {
		updates["body_type"] = *req.BodyType
	}
	if req.Year != nil {
		updates["year"] = *req.Year
	}
	if req.FuelType != nil {
		updates["fuel_type"] = *req.FuelType
	}
	if req.Consumption != nil {
		updates["consumption"] = *req.Consumption
	}
	if req.Color != nil {
		updates["color"] = *req.Color
	}
	if req.Images != nil {
		updates["images"] = datatypes.NewJSONSlice(*req.Images)
	}
	if req.DailyPrice != nil {
		updates["daily_price"] = *req.DailyPrice
	}

	if len(updates) == 0 {
		return s.GetByID(db, id)
	}

	car, err := s.carRepo.Update(db, id, updates)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCarNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("No car found with id %s", id))
		}
		return nil, apperrors.InternalError(err)
	}
	return car, nil
}

// Delete removes a listing after the ownership check. Only the creator may
// delete it; admins get no exemption here (account administration and
// listing ownership are separate concerns). The owner's back-reference is
// removed and persisted BEFORE the car row goes away, so a failure in the
// final step cannot leave a dangling reference.
func (s *CarServiceImpl) Delete(db *gorm.DB, userID, id string) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError(fmt.Sprintf("No user found with id %s", userID))
		}
		return apperrors.InternalError(err)
	}

	car, err := s.carRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCarNotFound) {
			return apperrors.NewNotFoundError(fmt.Sprintf("No car found with id %s", id))
		}
		return apperrors.InternalError(err)
	}

	if !user.HasCar(car.ID) {
		return apperrors.NewForbiddenError("You are not authorized to delete this car")
	}

	user.RemoveCar(car.ID)
	if err := s.userRepo.Update(db, user); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.carRepo.Delete(db, car.ID); err != nil {
		// Degraded state: the back-reference is gone but the car row
		// survived. Readers tolerate the asymmetry; report the failure.
		return apperrors.InternalError(err)
	}

	return nil
}

func (s *CarServiceImpl) List(db *gorm.DB) ([]models.Car, error) {
	cars, err := s.carRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return cars, nil
}

func (s *CarServiceImpl) GroupByBrand(db *gorm.DB) ([]repositories.BrandAggregate, error) {
	rows, err := s.carRepo.GroupByBrand(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return rows, nil
}
