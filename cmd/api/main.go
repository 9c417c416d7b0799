package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/medihire/medihire/internal/auth"
	"github.com/medihire/medihire/internal/config"
	"github.com/medihire/medihire/internal/database"
	"github.com/medihire/medihire/internal/handlers"
	"github.com/medihire/medihire/internal/logger"
	"github.com/medihire/medihire/internal/router"
	"github.com/medihire/medihire/internal/services"
)

func main() {
	// 1. Load Environment Variables (.env is optional outside development)
	_ = godotenv.Load()
	cfg := config.Load()

	// 2. Logger
	log := logger.Init(cfg.Env, cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 3. Database Connection
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}

	// 4. Initialize Core Services
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)
	notificationService := services.NewNotificationService(db)
	authService := services.NewAuthService(db, tokens)
	resumeService := services.NewResumeService(db)
	jobService := services.NewJobService(db)
	applicationService := services.NewApplicationService(db, notificationService)
	scoutService := services.NewScoutService(db, notificationService)
	verificationService := services.NewVerificationService(db)
	billingService := services.NewBillingService(db)
	reportService := services.NewReportService(db)
	adminService := services.NewAdminService(db)
	favoriteService := services.NewFavoriteService(db)

	// 5. Initialize Handlers
	deps := router.Deps{
		Tokens:  tokens,
		Auth:    handlers.NewAuthHandler(authService),
		Jobs:    handlers.NewJobHandler(jobService, applicationService),
		Me:      handlers.NewMeHandler(resumeService, applicationService, scoutService, notificationService, favoriteService),
		Biz:     handlers.NewBizHandler(jobService, applicationService, scoutService, verificationService, reportService),
		Billing: handlers.NewBillingHandler(billingService),
		Admin:   handlers.NewAdminHandler(adminService, verificationService, reportService),
	}

	// 6. Setup Router & CORS
	r := gin.Default()
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsCfg))

	// 7. Define Routes
	router.Register(r, deps)

	log.Info("server starting", zap.String("addr", cfg.ListenAddr))
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}
