package api

import (
	"strings"
	"time"

	"github.com/aquatrack/backend-go/internal/api/handlers"
	"github.com/aquatrack/backend-go/internal/auth"
	"github.com/aquatrack/backend-go/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	Users      *service.UserService
	Sales      *service.SaleService
	Inventory  *service.InventoryService
	Expenses   *service.ExpenseService
	Profits    *service.ProfitService
	Deliveries *service.DeliveryService
	JWTSecret  string
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	authHandler := handlers.NewAuthHandler(services.Users)
	authGroup := apiGroup.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	deliveryHandler := handlers.NewDeliveryHandler(services.Deliveries)
	// Left outside the auth gate so a cron scheduler can trigger it.
	apiGroup.GET("/cleanup", deliveryHandler.Cleanup)

	protected := apiGroup.Group("")
	protected.Use(auth.Middleware(services.JWTSecret))

	saleHandler := handlers.NewSaleHandler(services.Sales)
	saleGroup := protected.Group("/sales")
	{
		saleGroup.POST("", saleHandler.CreateSale)
		saleGroup.GET("", saleHandler.ListSales)
		saleGroup.GET("/lending", saleHandler.GetLendingLedger)
		saleGroup.GET("/today_total", saleHandler.GetTodayTotal)
		saleGroup.POST("/:id/payments", saleHandler.RecordPayment)
		saleGroup.POST("/:id/mark_pending", saleHandler.MarkPending)
	}

	protected.GET("/customers", saleHandler.GetCustomerLedger)

	inventoryHandler := handlers.NewInventoryHandler(services.Inventory)
	inventoryGroup := protected.Group("/inventory")
	{
		inventoryGroup.POST("/stock", inventoryHandler.AddStock)
		inventoryGroup.GET("/history", inventoryHandler.GetHistory)
		inventoryGroup.GET("/current", inventoryHandler.GetCurrent)
		inventoryGroup.GET("/available", inventoryHandler.GetAvailable)
	}

	expenseHandler := handlers.NewExpenseHandler(services.Expenses)
	expenseGroup := protected.Group("/expenses")
	{
		expenseGroup.POST("", expenseHandler.AddExpense)
		expenseGroup.GET("", expenseHandler.ListExpenses)
		expenseGroup.GET("/monthly_summary", expenseHandler.GetMonthlySummary)
	}

	profitHandler := handlers.NewProfitHandler(services.Profits)
	profitGroup := protected.Group("/profits")
	{
		profitGroup.GET("/daily", profitHandler.GetDaily)
		profitGroup.GET("/monthly", profitHandler.GetMonthly)
		profitGroup.GET("/total", profitHandler.GetTotal)
		profitGroup.GET("/sizes", profitHandler.GetSizeBreakdown)
		profitGroup.GET("/monthly/export", profitHandler.ExportMonthly)
	}

	deliveryGroup := protected.Group("/deliveries")
	{
		deliveryGroup.POST("", deliveryHandler.UploadRecord)
		deliveryGroup.GET("", deliveryHandler.ListRecords)
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
