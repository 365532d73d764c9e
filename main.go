package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotwise/config"
	"slotwise/cron"
	"slotwise/database"
	assignmentRepo "slotwise/database/repository/assignment"
	availabilityRepo "slotwise/database/repository/availability"
	bookingRepo "slotwise/database/repository/booking"
	providerRepo "slotwise/database/repository/provider"
	teamRepo "slotwise/database/repository/team"
	"slotwise/handlers"
	"slotwise/routes"
	"slotwise/services/assignment"
	"slotwise/services/availability"
	"slotwise/services/booking"
	"slotwise/services/calendar"
	"slotwise/services/notification"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitHoldCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	// repositories.
	provRepo := providerRepo.NewMongoProviderRepo()
	availRepo := availabilityRepo.NewMongoAvailabilityRepo()
	bookRepo := bookingRepo.NewMongoBookingRepo()
	tmRepo := teamRepo.NewMongoTeamRepo()
	asgRepo := assignmentRepo.NewMongoAssignmentRepo()

	// services.
	var busySource calendar.BusySource
	if gb := calendar.NewGoogleBusySource(); gb != nil {
		busySource = gb
	} else {
		logger.Info("Google Calendar client not configured, external busy times disabled")
	}

	engine := &availability.DefaultAvailabilityEngine{
		Providers:          provRepo,
		Rules:              availRepo,
		Bookings:           bookRepo,
		Busy:               busySource,
		MinimumNoticeHours: config.AppConfig.MinimumNoticeHours,
		DefaultDaysAhead:   config.AppConfig.DateLookaheadDays,
	}

	resolver := &assignment.DefaultAssignmentResolver{
		Teams:       tmRepo,
		Bookings:    bookRepo,
		Assignments: asgRepo,
	}

	notificationService := &notification.LogNotificationService{}

	reminderClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	})
	defer reminderClient.Close()

	bookingService := &booking.DefaultBookingService{
		Engine:       engine,
		Resolver:     resolver,
		Bookings:     bookRepo,
		Notification: notificationService,
		Holds: booking.NewHoldStore(
			utils.GetHoldCacheClient(),
			time.Duration(config.AppConfig.HoldTTLSeconds)*time.Second,
		),
		Reminders: reminderClient,
	}

	// handlers.
	handlers.AvailabilityEngine = engine
	handlers.BookingService = bookingService
	handlers.ProviderRepo = provRepo
	handlers.AvailabilityRepo = availRepo

	routes.RegisterRoutes(router)

	// Background workers and monitors.
	cron.InitReminderWorker(notificationService)
	utils.StartHealthMonitor(utils.GetHoldCacheClient(), database.MongoClient)

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
