package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/quitmate/quitmate-backend/internal/clients/redis"
	"github.com/quitmate/quitmate-backend/internal/db"
	"github.com/quitmate/quitmate-backend/internal/handlers"
	"github.com/quitmate/quitmate-backend/internal/logger"
	"github.com/quitmate/quitmate-backend/internal/observability"
	"github.com/quitmate/quitmate-backend/internal/repos"
	"github.com/quitmate/quitmate-backend/internal/server"
	"github.com/quitmate/quitmate-backend/internal/services"
	"github.com/quitmate/quitmate-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Tracing
	shutdownOtel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: utils.GetEnv("SERVICE_NAME", "quitmate-backend", log),
		Environment: utils.GetEnv("ENVIRONMENT", "development", log),
		Version:     utils.GetEnv("SERVICE_VERSION", "dev", log),
	})
	if shutdownOtel != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownOtel(ctx)
		}()
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	progressEntryRepo := repos.NewProgressEntryRepo(thePG, log)
	achievementRepo := repos.NewAchievementRepo(thePG, log)
	unlockedAchievementRepo := repos.NewUnlockedAchievementRepo(thePG, log)
	membershipPlanRepo := repos.NewMembershipPlanRepo(thePG, log)
	appointmentRepo := repos.NewAppointmentRepo(thePG, log)
	chatMessageRepo := repos.NewChatMessageRepo(thePG, log)
	coachFeedbackRepo := repos.NewCoachFeedbackRepo(thePG, log)

	// Unlock event bus
	var unlockNotifier services.UnlockNotifier
	if utils.GetEnvAsBool("UNLOCK_EVENTS_ENABLED", false, log) {
		unlockBus, busErr := redis.NewUnlockBus(log)
		if busErr != nil {
			log.Warn("Could not init redis unlock bus, unlock events disabled", "error", busErr)
			unlockNotifier = services.NewNopUnlockNotifier()
		} else {
			defer unlockBus.Close()
			unlockNotifier = unlockBus
		}
	} else {
		unlockNotifier = services.NewNopUnlockNotifier()
	}

	// Services
	log.Info("Setting up Services from main...")
	achievementService := services.NewAchievementService(thePG, log, progressEntryRepo, achievementRepo, unlockedAchievementRepo, unlockNotifier)
	if utils.GetEnvAsBool("SEED_DEFAULT_ACHIEVEMENTS", true, log) {
		if err := achievementService.SeedDefaultAchievements(context.Background()); err != nil {
			log.Warn("Seeding default achievements failed", "error", err)
		}
	}
	progressService := services.NewProgressService(thePG, log, progressEntryRepo, userRepo, achievementService)
	userService := services.NewUserService(thePG, log, userRepo)
	appointmentService := services.NewAppointmentService(thePG, log, appointmentRepo, userRepo)
	chatService := services.NewChatService(thePG, log, chatMessageRepo, userRepo)
	membershipService := services.NewMembershipService(thePG, log, membershipPlanRepo, userRepo)
	feedbackService := services.NewFeedbackService(thePG, log, coachFeedbackRepo, appointmentRepo, userRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	userHandler := handlers.NewUserHandler(userService)
	progressHandler := handlers.NewProgressHandler(progressService)
	achievementHandler := handlers.NewAchievementHandler(achievementService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	chatHandler := handlers.NewChatHandler(chatService)
	membershipHandler := handlers.NewMembershipHandler(membershipService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		ServiceName:        "quitmate-backend",
		UserHandler:        userHandler,
		ProgressHandler:    progressHandler,
		AchievementHandler: achievementHandler,
		AppointmentHandler: appointmentHandler,
		ChatHandler:        chatHandler,
		MembershipHandler:  membershipHandler,
		FeedbackHandler:    feedbackHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
