package app

import (
	"fmt"

	"github.com/desperadoclub/desperado/internal/config"
	"github.com/desperadoclub/desperado/internal/db"
	"github.com/desperadoclub/desperado/internal/repository"
	"github.com/desperadoclub/desperado/internal/service"
	"github.com/jmoiron/sqlx"
)

type App struct {
	Cfg                 *config.Config
	DB                  *sqlx.DB
	AuthService         *service.AuthService
	UserService         *service.UserService
	EmailService        *service.EmailService
	NotifyService       *service.NotifyService
	HouseholdService    *service.HouseholdService
	LookupService       *service.LookupService
	HabitService        *service.HabitService
	GoalService         *service.GoalService
	GamificationService *service.GamificationService
	FeedbackService     *service.FeedbackService
	ShoppingService     *service.ShoppingService
	TaskService         *service.TaskService
	FinanceService      *service.FinanceService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	householdRepository := repository.NewHouseholdRepository(database)
	lookupRepository := repository.NewLookupRepository(database)
	habitRepository := repository.NewHabitRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	partyGoalRepository := repository.NewPartyGoalRepository(database)
	feedbackRepository := repository.NewFeedbackRepository(database)
	shoppingRepository := repository.NewShoppingRepository(database)
	taskRepository := repository.NewTaskRepository(database)
	financeRepository := repository.NewFinanceRepository(database)

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	notifyService := service.NewNotifyService(cfg.DiscordWebhookURL, cfg.PipelineChannelID)
	authService := service.NewAuthService(
		userRepository,
		cfg.JWTSecret,
		cfg.JWTExpiry,
		cfg.IsProduction(),
	)
	userService := service.NewUserService(userRepository)
	householdService := service.NewHouseholdService(householdRepository, emailService)
	lookupService := service.NewLookupService(lookupRepository, userRepository)
	gamificationService := service.NewGamificationService(partyGoalRepository, goalRepository, householdRepository)
	habitService := service.NewHabitService(habitRepository, gamificationService, notifyService)
	goalService := service.NewGoalService(goalRepository, gamificationService)
	feedbackService := service.NewFeedbackService(feedbackRepository, notifyService)
	shoppingService := service.NewShoppingService(shoppingRepository)
	taskService := service.NewTaskService(taskRepository)
	financeService := service.NewFinanceService(
		financeRepository,
		cfg.PlaidClientID,
		cfg.PlaidSecret,
		cfg.PlaidEnvironment,
		cfg.AppName,
	)

	return &App{
		Cfg:                 cfg,
		DB:                  database,
		AuthService:         authService,
		UserService:         userService,
		EmailService:        emailService,
		NotifyService:       notifyService,
		HouseholdService:    householdService,
		LookupService:       lookupService,
		HabitService:        habitService,
		GoalService:         goalService,
		GamificationService: gamificationService,
		FeedbackService:     feedbackService,
		ShoppingService:     shoppingService,
		TaskService:         taskService,
		FinanceService:      financeService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
