package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/quitmate/quitmate-backend/internal/handlers"
)

type RouterConfig struct {
	ServiceName        string
	UserHandler        *handlers.UserHandler
	ProgressHandler    *handlers.ProgressHandler
	AchievementHandler *handlers.AchievementHandler
	AppointmentHandler *handlers.AppointmentHandler
	ChatHandler        *handlers.ChatHandler
	MembershipHandler  *handlers.MembershipHandler
	FeedbackHandler    *handlers.FeedbackHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "quitmate"
	}
	router.Use(otelgin.Middleware(serviceName))

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Users and rosters
		api.POST("/users", cfg.UserHandler.CreateUser)
		api.GET("/users", cfg.UserHandler.ListUsers)
		api.GET("/users/:id", cfg.UserHandler.GetUser)
		api.POST("/users/:id/coach", cfg.UserHandler.AssignCoach)
		api.GET("/coaches/:id/clients", cfg.UserHandler.ListClients)

		// Progress tracking
		api.POST("/users/:id/progress", cfg.ProgressHandler.RecordEntry)
		api.GET("/users/:id/progress", cfg.ProgressHandler.ListEntries)
		api.GET("/users/:id/progress/summary", cfg.ProgressHandler.GetSummary)

		// Achievements
		api.GET("/achievements", cfg.AchievementHandler.ListCatalog)
		api.POST("/users/:id/achievements/check", cfg.AchievementHandler.CheckAndUnlock)
		api.GET("/users/:id/achievements", cfg.AchievementHandler.ListUnlocked)

		// Appointments
		api.POST("/appointments", cfg.AppointmentHandler.Book)
		api.GET("/members/:id/appointments", cfg.AppointmentHandler.ListForMember)
		api.GET("/coaches/:id/appointments", cfg.AppointmentHandler.ListForCoach)
		api.POST("/appointments/:id/confirm", cfg.AppointmentHandler.Confirm)
		api.POST("/appointments/:id/complete", cfg.AppointmentHandler.Complete)
		api.POST("/appointments/:id/cancel", cfg.AppointmentHandler.Cancel)

		// Chat (persistence only)
		api.POST("/messages", cfg.ChatHandler.SendMessage)
		api.GET("/messages", cfg.ChatHandler.ListConversation)
		api.POST("/messages/read", cfg.ChatHandler.MarkConversationRead)

		// Membership plans
		api.GET("/plans", cfg.MembershipHandler.ListActivePlans)
		api.POST("/users/:id/plan", cfg.MembershipHandler.AssignPlan)

		// Coach feedback
		api.POST("/feedback", cfg.FeedbackHandler.LeaveFeedback)
		api.GET("/coaches/:id/feedback", cfg.FeedbackHandler.ListForCoach)
		api.GET("/members/:id/feedback", cfg.FeedbackHandler.ListByMember)
	}

	admin := router.Group("/api/admin")
	{
		admin.GET("/plans", cfg.MembershipHandler.ListAllPlans)
		admin.POST("/plans", cfg.MembershipHandler.CreatePlan)
		admin.PUT("/plans/:id", cfg.MembershipHandler.UpdatePlan)
		admin.DELETE("/plans/:id", cfg.MembershipHandler.DeletePlan)

		admin.POST("/achievements", cfg.AchievementHandler.CreateAchievement)
		admin.PUT("/achievements/:id", cfg.AchievementHandler.UpdateAchievement)
		admin.POST("/achievements/:id/active", cfg.AchievementHandler.SetAchievementActive)
		admin.DELETE("/users/:id/achievements", cfg.AchievementHandler.ResetUserAchievements)
	}

	return router
}
