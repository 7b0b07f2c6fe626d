package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"procura/internal/config"
	"procura/internal/email/noop"
	"procura/internal/email/ses"
	"procura/internal/handler"
	"procura/internal/port"
	"procura/internal/repository/postgres"
	"procura/internal/router"
	"procura/internal/service"
	s3storage "procura/internal/storage/s3"
)

// @title Procura API
// @version 1.0
// @description Procurement backend: suppliers, contracts, purchase orders, and supplier debts.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	supplierRepo := postgres.NewSupplierRepo(db)
	productRepo := postgres.NewProductRepo(db)
	contractRepo := postgres.NewContractRepo(db)
	orderRepo := postgres.NewOrderRepo(db)
	debtRepo := postgres.NewDebtRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email delivery
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender()
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	supplierSvc := service.NewSupplierService(supplierRepo)
	catalogSvc := service.NewCatalogService(productRepo, contractRepo)
	contractSvc := service.NewContractService(contractRepo, supplierRepo, productRepo, s3Client, cfg.S3)
	orderSvc := service.NewOrderService(orderRepo, contractRepo, supplierRepo, productRepo, debtRepo)
	debtSvc := service.NewDebtService(debtRepo, supplierRepo, orderRepo, userRepo, emailSender)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc, userRepo)
	supplierH := handler.NewSupplierHandler(supplierSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc)
	contractH := handler.NewContractHandler(contractSvc)
	orderH := handler.NewOrderHandler(orderSvc)
	debtH := handler.NewDebtHandler(debtSvc, cfg.Reminder)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, authSvc, authH, supplierH, catalogH, contractH, orderH, debtH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Printf("Received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
