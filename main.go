// File: mindwell/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mindwell/config"
	"mindwell/cron"
	"mindwell/database"
	appointmentRepoPkg "mindwell/database/repository/appointment"
	notificationRepoPkg "mindwell/database/repository/notification"
	providerRepoPkg "mindwell/database/repository/provider"
	userRepoPkg "mindwell/database/repository/user"
	"mindwell/handlers"
	"mindwell/middleware"
	"mindwell/routes"
	"mindwell/services/availability"
	"mindwell/services/booking"
	"mindwell/services/notification"
	"mindwell/services/provider"
	"mindwell/services/tasks"
	"mindwell/services/user"
	"mindwell/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.StartHealthMonitor(database.MongoClient, utils.CacheClient, utils.AuthCacheClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	provRepo := providerRepoPkg.NewMongoProviderRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	apptRepo := appointmentRepoPkg.NewMongoAppointmentRepo()
	notifRepo := notificationRepoPkg.NewMongoNotificationRepo()

	if repo, ok := provRepo.(*providerRepoPkg.MongoProviderRepo); ok {
		if err := repo.EnsureIndexes(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure provider indexes: %v", err)
		}
	}
	if repo, ok := userRepo.(*userRepoPkg.MongoUserRepo); ok {
		if err := repo.EnsureIndexes(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure user indexes: %v", err)
		}
	}
	if repo, ok := apptRepo.(*appointmentRepoPkg.MongoAppointmentRepo); ok {
		if err := repo.EnsureIndexes(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure appointment indexes: %v", err)
		}
	}

	// asynq client for deferred reminders.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer asynqClient.Close()

	// services.
	userService := &user.DefaultUserService{Repo: userRepo}
	handlers.SetUserService(userService)

	providerService := &provider.DefaultProviderService{Repo: provRepo}
	availabilityService := &availability.DefaultAvailabilityService{ProviderRepo: provRepo}
	notificationService := &notification.DefaultNotificationService{Repo: notifRepo}

	bookingService := &booking.DefaultBookingService{
		ProviderRepo:    provRepo,
		UserRepo:        userRepo,
		AppointmentRepo: apptRepo,
		Notifier:        notificationService,
		Reminders:       &tasks.AsynqReminderScheduler{Client: asynqClient},
		ReminderLead:    time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute,
	}

	providerHandler := handlers.NewProviderHandler(providerService, availabilityService)
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		ProviderRepo: provRepo,
		UserRepo:     userRepo,

		RegisterUserHandler:     handlers.RegisterUserHandler,
		AuthenticateUserHandler: handlers.AuthenticateUserHandler,
		GetUserByIDHandler:      handlers.GetUserByIDHandler,

		ProviderHandler:     providerHandler,
		BookingHandler:      bookingHandler,
		NotificationHandler: notificationHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the reminder worker.
	cron.InitReminderWorker(apptRepo, notificationService)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
