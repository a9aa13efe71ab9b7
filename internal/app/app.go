package app

import (
	"errors"
	"fmt"

	"carpicks_backend/database"
	"carpicks_backend/internal/auth"
	"carpicks_backend/internal/config"
	"carpicks_backend/internal/email"
	"carpicks_backend/internal/handlers"
	"carpicks_backend/internal/logger"
	"carpicks_backend/internal/middleware"
	"carpicks_backend/internal/models"
	"carpicks_backend/internal/repositories"
	"carpicks_backend/internal/routes"
	"carpicks_backend/internal/services"
	"carpicks_backend/internal/storage"
	"carpicks_backend/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ServiceContainer holds every service the handlers depend on
type ServiceContainer struct {
	AuthService  services.AuthService
	CarService   services.CarService
	UserService  services.UserService
	EmailService email.Provider
}

// Run loads the configuration, connects to the database, seeds the first
// admin and serves until the process dies.
func Run() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := OpenDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected", "driver", cfg.Database.Driver)

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// OpenDatabase opens a GORM handle for the configured driver and verifies
// the connection with a ping.
func OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.Database.DSN)
	case "postgres", "":
		dialector = postgres.Open(cfg.Database.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	return gormDB, nil
}

// SetupRouter builds the fully wired gin engine. Split out of Run so the
// integration tests can spin up the same router against their own database
// handle.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "base_path", cfg.Storage.BasePath)

	serviceContainer := initializeServices(cfg)

	appHandlers := initializeHandlers(cfg, serviceContainer, storageInstance)

	ginRouter := initializeGinRouter(cfg, gormDB)

	routes.RegisterRoutes(ginRouter, appHandlers)

	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return ginRouter
}

func initializeServices(cfg *config.Config) *ServiceContainer {
	var emailService email.Provider
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP host is not configured. Outbound email uses a mock provider.")
		emailService = &MockEmailProvider{}
	} else {
		provider, err := email.NewGomailProvider(email.Config{
			Host:        cfg.Email.SMTPHost,
			Port:        cfg.Email.SMTPPort,
			Username:    cfg.Email.SMTPUsername,
			Password:    cfg.Email.SMTPPassword,
			FromEmail:   cfg.Email.FromEmail,
			FromName:    cfg.Email.FromName,
			SendTimeout: cfg.EmailSendTimeout(),
		})
		if err != nil {
			logger.Fatal("Failed to initialize email provider", "error", err)
		}
		emailService = provider
	}

	userRepo := repositories.NewUserRepository()
	carRepo := repositories.NewCarRepository()

	authService := services.NewAuthService(userRepo, emailService, cfg)
	carService := services.NewCarService(carRepo, userRepo)
	userService := services.NewUserService(userRepo)

	return &ServiceContainer{
		AuthService:  authService,
		CarService:   carService,
		UserService:  userService,
		EmailService: emailService,
	}
}

func initializeHandlers(cfg *config.Config, container *ServiceContainer, storageInstance storage.Storage) routes.Handlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	userRepo := repositories.NewUserRepository()

	return routes.Handlers{
		Auth:      handlers.NewAuthHandler(baseHandler, container.AuthService, cfg),
		Car:       handlers.NewCarHandler(baseHandler, container.CarService),
		Admin:     handlers.NewAdminHandler(baseHandler, container.UserService),
		Upload:    handlers.NewUploadHandler(baseHandler, storageInstance),
		Session:   middleware.AuthMiddleware(cfg, userRepo),
		AdminOnly: middleware.AdminMiddleware(),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigin))
	router.Use(middleware.DBMiddleware(db))
	return router
}

// seedFirstAdmin creates the initial admin account on a fresh database.
// Every account created through the API gets the user role, so the only
// way to get an admin is this seed (or a manual database update).
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("first_admin_email or first_admin_password is not set. Skipping admin seeding.")
		return nil
	}

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var adminUser models.User
	result := tx.Where("email = ?", adminEmail).First(&adminUser)

	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		tx.Rollback()
		return nil
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	hashedPassword, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Name:         "Administrator",
		Age:          30,
		Email:        adminEmail,
		PasswordHash: hashedPassword,
		Role:         models.UserRoleAdmin,
	}

	if err := tx.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user in database: %w", err)
	}

	logger.Info("Successfully created first admin user", "email", adminEmail)

	return tx.Commit().Error
}
