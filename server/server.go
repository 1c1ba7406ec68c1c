package server

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"waterbill-server/auth"
	"waterbill-server/confs"
	"waterbill-server/db"
	httpHandler "waterbill-server/handlers/http"
	"waterbill-server/mailer"
	"waterbill-server/pdf"
	"waterbill-server/repositories"
	"waterbill-server/usecases"
)

type Server struct {
	app    *gin.Engine
	db     db.Database
	cfg    *confs.Config
	logger zerolog.Logger
}

func NewServer(database db.Database, cfg *confs.Config, logger zerolog.Logger) *Server {
	return &Server{
		app:    gin.Default(),
		db:     database,
		cfg:    cfg,
		logger: logger,
	}
}

func (s *Server) Start() {
	// Setup CORS middleware
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	s.app.Use(cors.New(corsConfig))

	// Setup healthcheck route
	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "OK",
		})
	})

	// Initialize repositories
	userRepo := repositories.NewUserPgRepository(s.db)
	gpRepo := repositories.NewGramPanchayatPgRepository(s.db)
	billRepo := repositories.NewWaterBillPgRepository(s.db)

	// Token issuer and notifier
	tokens := auth.NewTokenManager(s.cfg.JWTSecret, s.cfg.JWTIssuer, s.cfg.JWTExpiresIn)
	notifier := s.buildNotifier()

	// Initialize use cases
	authUseCase := usecases.NewAuthUseCase(userRepo, gpRepo, notifier, tokens, s.cfg, s.logger.With().Str("component", "auth").Logger())
	billUseCase := usecases.NewBillUseCase(billRepo, gpRepo)
	gpUseCase := usecases.NewGramPanchayatUseCase(gpRepo)

	// Initialize handlers
	renderer := pdf.NewRenderer(s.logger.With().Str("component", "pdf").Logger())
	authHandler := httpHandler.NewAuthHandler(authUseCase)
	billHandler := httpHandler.NewBillHandler(billUseCase, userRepo, renderer, s.logger.With().Str("component", "bills").Logger())
	gpHandler := httpHandler.NewGramPanchayatHandler(gpUseCase, userRepo)
	middleware := httpHandler.NewMiddleware(tokens)

	// OTP issuance is throttled per client; everything else is unlimited.
	otpLimit := middleware.RateLimitPerIP(rate.Limit(0.2), 3)

	// Setup API routes
	api := s.app.Group("/api/v1")
	{
		// Auth routes
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/request-otp", otpLimit, authHandler.RequestOTP)
			authGroup.POST("/verify-login-otp", authHandler.VerifyLoginOTP)
			authGroup.POST("/forgot-password", otpLimit, authHandler.ForgotPassword)
			authGroup.POST("/verify-otp", authHandler.VerifyOTP)
			authGroup.POST("/reset-password", authHandler.ResetPassword)
			authGroup.GET("/profile", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Bill routes
		bills := api.Group("/bills", middleware.AuthRequired())
		{
			bills.GET("/:id/download", billHandler.DownloadBill)
		}

		// Gram panchayat routes
		gps := api.Group("/gram-panchayats", middleware.AuthRequired())
		{
			gps.POST("", gpHandler.Create)
			gps.GET("", gpHandler.GetAll)
			gps.GET("/:id", gpHandler.GetByID)
		}
	}

	if err := s.app.Run(s.cfg.HTTPAddress()); err != nil {
		panic(err)
	}
}

func (s *Server) buildNotifier() mailer.Notifier {
	logger := s.logger.With().Str("component", "mailer").Logger()
	if s.cfg.NotifierProvider == confs.NotifierGmail {
		return mailer.NewGmailNotifier(context.Background(), s.cfg, logger)
	}
	return mailer.NewSMTPNotifier(s.cfg, logger)
}
