package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"tsrfashion-backend/internal/config"
	"tsrfashion-backend/internal/db"
	"tsrfashion-backend/internal/httpserver"
	"tsrfashion-backend/internal/localstore"
	cartrepo "tsrfashion-backend/internal/repository/cart"
	contactrepo "tsrfashion-backend/internal/repository/contact"
	customerrepo "tsrfashion-backend/internal/repository/customer"
	orderrepo "tsrfashion-backend/internal/repository/order"
	productrepo "tsrfashion-backend/internal/repository/product"
	tokenrepo "tsrfashion-backend/internal/repository/token"
	"tsrfashion-backend/internal/seed"
	authsvc "tsrfashion-backend/internal/service/auth"
	cartsvc "tsrfashion-backend/internal/service/cart"
	checkoutsvc "tsrfashion-backend/internal/service/checkout"
	contactsvc "tsrfashion-backend/internal/service/contact"
	ordersvc "tsrfashion-backend/internal/service/order"
	productsvc "tsrfashion-backend/internal/service/product"
	profilesvc "tsrfashion-backend/internal/service/profile"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("parse config: %v", err)
	}
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	local := localstore.New()
	seed.WarmSampleOrders(local, time.Now().UTC())

	customerRepo := customerrepo.NewPostgres(dbpool, logger)
	tokenRepo := tokenrepo.NewPostgres(dbpool)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	contactRepo := contactrepo.NewPostgres(dbpool)

	authService := authsvc.New(customerRepo, tokenRepo, logger)
	profileService := profilesvc.New(customerRepo, local, logger)
	productService := productsvc.New(productRepo)
	cartService := cartsvc.New(cartRepo, productRepo)
	checkoutService := checkoutsvc.New(cartService, orderRepo, authService, profileService, local, cfg.DeliveryLeadDays, logger)
	orderService := ordersvc.New(orderRepo, local)
	contactService := contactsvc.New(contactRepo)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		AuthSvc:     authService,
		ProfileSvc:  profileService,
		ProductSvc:  productService,
		CartSvc:     cartService,
		CheckoutSvc: checkoutService,
		OrderSvc:    orderService,
		ContactSvc:  contactService,
	}, cfg.Origins())
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
