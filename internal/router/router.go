package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "procura/docs"
	"procura/internal/config"
	"procura/internal/domain"
	"procura/internal/handler"
	"procura/internal/middleware"
	"procura/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	supplierH *handler.SupplierHandler,
	catalogH *handler.CatalogHandler,
	contractH *handler.ContractHandler,
	orderH *handler.OrderHandler,
	debtH *handler.DebtHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.Refresh)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	protected.GET("/auth/me", authH.Me)

	// Supplier directory
	suppliers := protected.Group("/suppliers")
	suppliers.POST("", middleware.RequireRole(domain.RoleAdmin, domain.RoleManager), supplierH.Create)
	suppliers.GET("", supplierH.List)
	suppliers.GET("/:id", supplierH.GetByID)
	suppliers.PUT("/:id", middleware.RequireRole(domain.RoleAdmin, domain.RoleManager), supplierH.Update)
	suppliers.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), supplierH.Delete)

	// Product catalog
	products := protected.Group("/products")
	products.POST("", middleware.RequireRole(domain.RoleAdmin, domain.RoleManager), catalogH.Create)
	products.GET("", catalogH.List)
	products.GET("/options", catalogH.Options)
	products.GET("/:id", catalogH.GetByID)
	products.PUT("/:id", middleware.RequireRole(domain.RoleAdmin, domain.RoleManager), catalogH.Update)
	products.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), catalogH.Delete)

	// Supply contracts
	contracts := protected.Group("/contracts")
	contracts.POST("", contractH.Create)
	contracts.GET("", contractH.List)
	contracts.GET("/:id", contractH.GetByID)
	contracts.PUT("/:id", contractH.Update)
	contracts.POST("/:id/transition", middleware.RequireRole(domain.RoleAdmin, domain.RoleManager), contractH.Transition)
	contracts.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), contractH.Delete)
	contracts.POST("/:id/attachments", contractH.UploadAttachment)
	contracts.GET("/:id/attachments", contractH.ListAttachments)

	attachments := protected.Group("/attachments")
	attachments.GET("/:id", contractH.GetAttachment)
	attachments.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin, domain.RoleManager), contractH.DeleteAttachment)

	// Purchase orders
	orders := protected.Group("/orders")
	orders.POST("", orderH.Create)
	orders.GET("", orderH.List)
	orders.GET("/:id", orderH.GetByID)
	orders.PUT("/:id", orderH.Update)
	orders.POST("/:id/approve", middleware.RequireRole(domain.RoleAdmin, domain.RoleManager), orderH.Approve)
	orders.POST("/:id/complete", middleware.RequireRole(domain.RoleAdmin, domain.RoleManager), orderH.Complete)
	orders.POST("/:id/cancel", middleware.RequireRole(domain.RoleAdmin, domain.RoleManager), orderH.Cancel)
	orders.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), orderH.Delete)
	orders.POST("/:id/receipts", orderH.RecordReceipt)
	orders.GET("/:id/receipts", orderH.ListReceipts)

	// Supplier debts
	debts := protected.Group("/debts")
	debts.GET("", debtH.List)
	debts.GET("/export", middleware.RequireRole(domain.RoleAdmin, domain.RoleManager), debtH.ExportAging)
	debts.POST("/reminders", middleware.RequireRole(domain.RoleAdmin, domain.RoleManager), debtH.SendReminders)
	debts.GET("/:id", debtH.GetByID)
	debts.POST("/:id/payments", debtH.RecordPayment)
	debts.GET("/:id/payments", debtH.ListPayments)
	debts.POST("/:id/cancel", middleware.RequireRole(domain.RoleAdmin, domain.RoleManager), debtH.Cancel)

	// Admin routes - user management
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(authSvc))
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	admin.POST("/users", authH.Register)
	admin.GET("/users", authH.ListUsers)
	admin.PUT("/users/:id", authH.UpdateUser)
	admin.DELETE("/users/:id", authH.DeleteUser)

	return r
}
