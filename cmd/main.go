package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ledgerhawk/invoicing-api/internal/auth"
	"github.com/ledgerhawk/invoicing-api/internal/cache"
	"github.com/ledgerhawk/invoicing-api/internal/config"
	"github.com/ledgerhawk/invoicing-api/internal/events"
	"github.com/ledgerhawk/invoicing-api/internal/handler"
	"github.com/ledgerhawk/invoicing-api/internal/middleware"
	"github.com/ledgerhawk/invoicing-api/internal/models"
	"github.com/ledgerhawk/invoicing-api/internal/repository"
	"github.com/ledgerhawk/invoicing-api/internal/service"
)

const companyViewTTL = 5 * time.Minute

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	db, err := repository.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := repository.Migrate(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	if err := repository.SeedDemo(context.Background(), db); err != nil {
		logger.Fatal("failed to seed demo data", zap.Error(err))
	}

	// Redis is optional. Without it events and cached views are disabled and
	// everything is served from Postgres.
	var redisConn *goredis.Client
	if cfg.RedisAddr != "" {
		redisConn, err = cache.Connect(cfg.RedisAddr)
		if err != nil {
			logger.Fatal("failed to connect to Redis", zap.Error(err))
		}
		defer redisConn.Close()
	}

	var publisher *events.Publisher
	var companyViews *cache.ViewCache[models.Company]
	if redisConn != nil {
		publisher = events.NewPublisher(redisConn)
		companyViews = cache.NewViewCache[models.Company](redisConn, companyViewTTL, logger)
	}

	users := repository.NewUserRepository(db)
	tokens := repository.NewRefreshTokenRepository(db)
	companies := repository.NewCompanyRepository(db)
	clients := repository.NewClientRepository(db)
	products := repository.NewProductRepository(db)
	invoices := repository.NewInvoiceRepository(db)
	items := repository.NewInvoiceItemRepository(db)

	issuer := auth.NewTokenIssuer(cfg.JWT)
	authSvc := auth.NewService(users, tokens, issuer, publisher, logger)
	companySvc := service.NewCompanyService(companies, users, companyViews, publisher, logger)
	clientSvc := service.NewClientService(clients, companies)
	productSvc := service.NewProductService(products, companies)
	invoiceSvc := service.NewInvoiceService(invoices, clients, companies, publisher, logger)
	itemSvc := service.NewInvoiceItemService(items, invoices, products)
	userSvc := service.NewUserService(users)

	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc)
	companyHandler := handler.NewCompanyHandler(companySvc)
	clientHandler := handler.NewClientHandler(clientSvc)
	productHandler := handler.NewProductHandler(productSvc)
	invoiceHandler := handler.NewInvoiceHandler(invoiceSvc)
	itemHandler := handler.NewInvoiceItemHandler(itemSvc)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/users", authHandler.Register)
	router.POST("/users/login", authHandler.Login)
	router.POST("/users/login/refresh", authHandler.RefreshLogin)

	authed := router.Group("", middleware.RequireAuth(cfg.JWT))
	{
		authed.DELETE("/users/:id/refresh-tokens", authHandler.RevokeAll)
		authed.GET("/users", userHandler.Get)
		authed.PATCH("/users/:id", userHandler.Update)
		authed.DELETE("/users/:id", userHandler.Delete)

		authed.POST("/companies", companyHandler.Create)
		authed.GET("/companies", companyHandler.Get)
		authed.PATCH("/companies/:id", companyHandler.Update)
		authed.DELETE("/companies/:id", companyHandler.Delete)
		authed.POST("/companies/:id/users/:userId", companyHandler.AddUser)
		authed.DELETE("/companies/:id/users/:userId", companyHandler.RemoveUser)

		authed.POST("/clients", clientHandler.Create)
		authed.GET("/clients", clientHandler.Get)
		authed.PATCH("/clients/:id", clientHandler.Update)
		authed.DELETE("/clients/:id", clientHandler.Delete)

		authed.POST("/products", productHandler.Create)
		authed.GET("/products", productHandler.Get)
		authed.PATCH("/products/:id", productHandler.Update)
		authed.DELETE("/products/:id", productHandler.Delete)

		authed.POST("/invoices", invoiceHandler.Create)
		authed.GET("/invoices", invoiceHandler.Get)
		authed.PATCH("/invoices/:id", invoiceHandler.Update)
		authed.DELETE("/invoices/:id", invoiceHandler.Delete)

		authed.POST("/invoice-items", itemHandler.Create)
		authed.GET("/invoice-items", itemHandler.Get)
		authed.PATCH("/invoice-items/:id", itemHandler.Update)
		authed.DELETE("/invoice-items/:id", itemHandler.Delete)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		logger.Info("shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("shutdown error", zap.Error(err))
		}
	}()

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
