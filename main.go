package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shutterbook/config"
	"shutterbook/cron"
	"shutterbook/database"
	bookingRepoPkg "shutterbook/database/repository/booking"
	rulesRepoPkg "shutterbook/database/repository/rules"
	"shutterbook/handlers"
	"shutterbook/middleware"
	"shutterbook/routes"
	"shutterbook/services/booking"
	"shutterbook/services/notification"
	"shutterbook/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.Default())

	// repositories.
	rulesRepo := rulesRepoPkg.NewMongoBookingRulesRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	if err := rulesRepo.EnsureIndexes(); err != nil {
		logger.Fatal("failed to ensure bookingRules indexes", zap.Error(err))
	}
	if err := bookingRepo.EnsureIndexes(); err != nil {
		logger.Fatal("failed to ensure booking indexes", zap.Error(err))
	}

	// special-day calendar from configuration.
	seasons := make([]booking.SeasonRange, 0, len(config.AppConfig.SeasonRanges))
	for _, s := range config.AppConfig.SeasonRanges {
		seasons = append(seasons, booking.SeasonRange{Start: s.Start, End: s.End})
	}
	dayTypes := booking.NewCalendarResolver(config.AppConfig.Holidays, seasons)

	// services.
	notificationService := &notification.LogNotificationService{}
	reminderClient := cron.NewReminderClient()
	bookingService := &booking.DefaultBookingService{
		RulesRepo:   rulesRepo,
		BookingRepo: bookingRepo,
		CacheClient: utils.GetCacheClient(),
		QuoteCache:  utils.GetQuoteCacheClient(),
		Reminders:   reminderClient,
		DayTypes:    dayTypes,
		Logger:      logger,
	}

	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	rulesHandler := handlers.NewRulesHandler(bookingService, logger)
	routes.RegisterRoutes(router, bookingHandler, rulesHandler)

	// background workers and health monitoring.
	cron.InitReminderWorker(notificationService)
	utils.StartHealthMonitor(utils.GetCacheClient(), utils.GetQuoteCacheClient(), utils.GetReminderPingClient(), database.MongoClient)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Info("starting server", zap.String("port", config.AppConfig.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	if err := reminderClient.Close(); err != nil {
		logger.Warn("failed to close reminder client", zap.Error(err))
	}
	if err := database.MongoClient.Disconnect(ctx); err != nil {
		logger.Warn("failed to disconnect mongo", zap.Error(err))
	}
}
