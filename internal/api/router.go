package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"rentdesk/internal/api/handlers"
	"rentdesk/internal/api/middleware"
	"rentdesk/internal/config"
	"rentdesk/internal/notify"
	"rentdesk/internal/services"
	"rentdesk/internal/storage"
	"rentdesk/internal/store"
)

// SetupRouter configures and returns the main Gin engine.
func SetupRouter(cfg *config.Config, stores *store.Stores, sink notify.Sink) *gin.Engine {
	// Initialize services needed by API handlers HERE
	propertyService := services.NewPropertyService(stores, sink)
	tenantService := services.NewTenantService(stores, propertyService, sink)
	leaseService := services.NewLeaseService(stores, propertyService, sink)
	transactionService := services.NewTransactionService(stores, sink, cfg.PaymentProcessingDelay)
	queryService := services.NewQueryService(stores)
	userService := services.NewUserService(stores, cfg)

	// S3 is optional. Without a bucket, uploads fall back to inline data URLs
	// and the presign endpoint reports S3 as unconfigured.
	var s3Storage storage.IS3Storage
	if cfg.AwsS3Bucket != "" {
		var err error
		s3Storage, err = storage.NewS3Storage(cfg)
		if err != nil {
			log.Fatalf("CRITICAL: Failed to initialize S3 storage for API: %v", err)
		}
	}
	mediaService := services.NewMediaService(cfg, s3Storage, propertyService, sink)

	r := gin.Default()

	// Initialize Middleware
	rateLimiter := middleware.NewRateLimiterMiddleware(cfg)

	// Apply global middleware first (order matters)
	r.Use(middleware.CORSMiddleware())
	r.Use(rateLimiter.Limit())

	// Initialize handlers
	restAuthHandler := handlers.NewRestAuthHandler(userService)
	restPropertyHandler := handlers.NewRestPropertyHandler(propertyService, queryService, mediaService)
	restTenantHandler := handlers.NewRestTenantHandler(tenantService)
	restLeaseHandler := handlers.NewRestLeaseHandler(leaseService)
	restTransactionHandler := handlers.NewRestTransactionHandler(transactionService)
	restDashboardHandler := handlers.NewRestDashboardHandler(queryService)

	v1 := r.Group("/v1")
	{
		// Public Routes (Rate limiting already applied globally)
		v1.POST("/auth/register", restAuthHandler.Register)
		v1.POST("/auth/login", restAuthHandler.Login)

		// Property search stays public; register before /property/:id to
		// avoid route conflicts.
		v1.GET("/property/search", restPropertyHandler.SearchProperties)

		v1.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})

		// Authenticated Routes (already have rate limiting from global middleware)
		authRequired := v1.Group("/")
		authRequired.Use(middleware.AuthMiddleware(cfg.JwtSecret, userService))
		{
			authRequired.POST("/auth/logout", restAuthHandler.Logout)
			authRequired.GET("/auth/me", restAuthHandler.GetProfile)
			authRequired.PUT("/auth/me", restAuthHandler.UpdateProfile)

			authRequired.GET("/property", restPropertyHandler.ListProperties)
			authRequired.POST("/property", restPropertyHandler.CreateProperty)
			authRequired.GET("/property/:id", restPropertyHandler.GetPropertyByID)
			authRequired.PUT("/property/:id", restPropertyHandler.UpdateProperty)
			authRequired.DELETE("/property/:id", restPropertyHandler.DeleteProperty)
			authRequired.POST("/property/:id/media", restPropertyHandler.UploadMedia)
			authRequired.POST("/property/:id/media/presign", restPropertyHandler.PresignMedia)

			authRequired.GET("/tenant", restTenantHandler.ListTenants)
			authRequired.POST("/tenant", restTenantHandler.CreateTenant)
			authRequired.GET("/tenant/:id", restTenantHandler.GetTenantByID)
			authRequired.PUT("/tenant/:id", restTenantHandler.UpdateTenant)
			authRequired.DELETE("/tenant/:id", restTenantHandler.DeleteTenant)
			authRequired.POST("/tenant/:id/document", restTenantHandler.AddDocument)
			authRequired.POST("/tenant/:id/payment", restTenantHandler.AddPayment)

			authRequired.GET("/lease", restLeaseHandler.ListLeases)
			authRequired.POST("/lease", restLeaseHandler.CreateLease)
			authRequired.GET("/lease/:id", restLeaseHandler.GetLeaseByID)
			authRequired.PUT("/lease/:id", restLeaseHandler.UpdateLease)
			authRequired.DELETE("/lease/:id", restLeaseHandler.DeleteLease)
			authRequired.POST("/lease/:id/payment", restLeaseHandler.AddPayment)
			authRequired.PUT("/lease/:id/payment/:payment_id", restLeaseHandler.UpdatePayment)
			authRequired.POST("/lease/:id/document", restLeaseHandler.AddDocument)
			authRequired.POST("/payments/check-overdue", restLeaseHandler.CheckOverduePayments)

			authRequired.GET("/transaction", restTransactionHandler.ListTransactions)
			authRequired.POST("/transaction", restTransactionHandler.CreateTransaction)
			authRequired.POST("/transaction/process", restTransactionHandler.ProcessPayment)
			authRequired.GET("/transaction/:id", restTransactionHandler.GetTransactionByID)
			authRequired.DELETE("/transaction/:id", restTransactionHandler.DeleteTransaction)
			authRequired.POST("/transaction/:id/receipt", restTransactionHandler.GenerateReceipt)

			authRequired.GET("/dashboard", restDashboardHandler.GetDashboard)
		}
	}

	return r
}
