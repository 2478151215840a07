// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/designly/marketplace-backend/internal/config"
	"github.com/designly/marketplace-backend/internal/handlers"
	"github.com/designly/marketplace-backend/internal/middleware"
	"github.com/designly/marketplace-backend/internal/services"
	"github.com/designly/marketplace-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(db, cfg)
	storageService, _ := services.NewStorageService(cfg)

	authService := services.NewAuthService(db, cfg, notificationService)
	socialService := services.NewSocialService(db)
	userService := services.NewUserService(db, socialService)
	designService := services.NewDesignService(db)
	entitlementService := services.NewEntitlementService(db)
	purchaseService := services.NewPurchaseService(db, cfg, notificationService)
	downloadService := services.NewDownloadService(db, entitlementService, storageService,
		time.Duration(cfg.Payment.DownloadURLTTL)*time.Second)
	paymentService := services.NewPaymentService(cfg)
	jobService := services.NewJobService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, socialService)
	designHandler := handlers.NewDesignHandler(designService, socialService, downloadService, storageService)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService, paymentService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	jobHandler := handlers.NewJobHandler(jobService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS([]string{cfg.Frontend.BaseURL}))
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// User routes
		users := v1.Group("/users")
		{
			users.GET("/:id", middleware.OptionalAuth(), userHandler.GetPublicProfile)
			users.GET("/:id/followers", userHandler.GetFollowers)

			protected := users.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.PUT("/profile", userHandler.UpdateProfile)
				protected.POST("/:id/follow", userHandler.ToggleFollow)
			}
		}

		// Design routes
		designs := v1.Group("/designs")
		{
			designs.GET("", middleware.OptionalAuth(), designHandler.SearchDesigns)
			designs.GET("/popular", designHandler.GetPopularDesigns)
			designs.GET("/:id", middleware.OptionalAuth(), designHandler.GetDesign)
			designs.GET("/:id/download", middleware.OptionalAuth(), middleware.DownloadRateLimit(), designHandler.DownloadDesign)

			protected := designs.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", designHandler.CreateDesign)
				protected.PUT("/:id", designHandler.UpdateDesign)
				protected.DELETE("/:id", designHandler.DeleteDesign)
				protected.POST("/:id/like", designHandler.ToggleLike)
			}
		}

		// Upload route
		v1.POST("/uploads", middleware.AuthRequired(), designHandler.UploadFile)

		// Purchase routes
		purchases := v1.Group("/purchases")
		purchases.Use(middleware.AuthRequired())
		{
			purchases.POST("/:rail", middleware.PurchaseRateLimit(), purchaseHandler.RecordPurchase)
			purchases.GET("/history", purchaseHandler.GetHistory)
			purchases.GET("/balance", purchaseHandler.GetBalance)
		}

		// Payment routes
		payments := v1.Group("/payments")
		payments.Use(middleware.AuthRequired())
		{
			payments.POST("/intent", paymentHandler.CreatePaymentIntent)
		}

		// Job routes
		jobs := v1.Group("/jobs")
		{
			jobs.GET("", jobHandler.SearchJobs)
			jobs.GET("/:id", jobHandler.GetJob)

			protected := jobs.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", jobHandler.CreateJob)
				protected.PUT("/:id", jobHandler.UpdateJob)
				protected.DELETE("/:id", jobHandler.DeleteJob)
			}
		}
	}

	return r
}
