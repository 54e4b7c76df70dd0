package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rentkart/rentkart-backend/api/routes"
	"github.com/rentkart/rentkart-backend/internal/auth"
	"github.com/rentkart/rentkart-backend/internal/bookings"
	"github.com/rentkart/rentkart-backend/internal/cart"
	"github.com/rentkart/rentkart-backend/internal/coupons"
	"github.com/rentkart/rentkart-backend/internal/homeservices"
	"github.com/rentkart/rentkart-backend/internal/notifications"
	"github.com/rentkart/rentkart-backend/internal/orders"
	"github.com/rentkart/rentkart-backend/internal/payments"
	"github.com/rentkart/rentkart-backend/internal/products"
	"github.com/rentkart/rentkart-backend/internal/settings"
	"github.com/rentkart/rentkart-backend/internal/support"
	"github.com/rentkart/rentkart-backend/internal/users"
	"github.com/rentkart/rentkart-backend/internal/wishlist"
	"github.com/rentkart/rentkart-backend/pkg/config"
	"github.com/rentkart/rentkart-backend/pkg/db"
	"github.com/rentkart/rentkart-backend/pkg/logger"
	"github.com/rentkart/rentkart-backend/pkg/metrics"
	"github.com/rentkart/rentkart-backend/pkg/migrate"
	"github.com/rentkart/rentkart-backend/pkg/razorpay"
	"github.com/rentkart/rentkart-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gdb := dbClient.DB()
	usersRepo := users.NewRepository(gdb)
	productsRepo := products.NewRepository(gdb)
	homeServicesRepo := homeservices.NewRepository(gdb)
	ordersRepo := orders.NewRepository(gdb)
	paymentsRepo := payments.NewRepository(gdb)
	couponsRepo := coupons.NewRepository(gdb)
	settingsRepo := settings.NewRepository(gdb)
	bookingsRepo := bookings.NewRepository(gdb)
	cartRepo := cart.NewRepository(gdb)
	wishlistRepo := wishlist.NewRepository(gdb)
	supportRepo := support.NewRepository(gdb)

	authService, err := auth.NewService(usersRepo, cfg.JWT, cfg.Password)
	if err != nil {
		fatal(logg, "failed to create auth service", err)
	}
	usersService, err := users.NewService(usersRepo)
	if err != nil {
		fatal(logg, "failed to create users service", err)
	}
	productsService, err := products.NewService(productsRepo, logg)
	if err != nil {
		fatal(logg, "failed to create products service", err)
	}
	homeServicesService, err := homeservices.NewService(homeServicesRepo, logg)
	if err != nil {
		fatal(logg, "failed to create home services service", err)
	}
	couponsService, err := coupons.NewService(couponsRepo, logg)
	if err != nil {
		fatal(logg, "failed to create coupons service", err)
	}
	settingsService, err := settings.NewService(settingsRepo, redisClient, logg)
	if err != nil {
		fatal(logg, "failed to create settings service", err)
	}
	bookingsService, err := bookings.NewService(bookingsRepo, logg)
	if err != nil {
		fatal(logg, "failed to create bookings service", err)
	}
	cartService, err := cart.NewService(cartRepo, productsRepo, homeServicesRepo)
	if err != nil {
		fatal(logg, "failed to create cart service", err)
	}
	wishlistService, err := wishlist.NewService(wishlistRepo, productsRepo)
	if err != nil {
		fatal(logg, "failed to create wishlist service", err)
	}
	supportService, err := support.NewService(supportRepo)
	if err != nil {
		fatal(logg, "failed to create support service", err)
	}

	mailer, err := notifications.NewMailer(cfg.SMTP)
	if err != nil {
		fatal(logg, "failed to create mailer", err)
	}
	var notifyService *notifications.Service
	if mailer != nil {
		notifyService, err = notifications.NewService(mailer, usersRepo, cfg.SMTP.AdminEmail, logg)
	} else {
		logg.Warn(context.Background(), "smtp not configured, notifications are log-only")
		notifyService, err = notifications.NewService(nil, usersRepo, cfg.SMTP.AdminEmail, logg)
	}
	if err != nil {
		fatal(logg, "failed to create notifications service", err)
	}
	defer notifyService.Flush()

	ordersService, err := orders.NewService(
		ordersRepo,
		dbClient,
		productsRepo,
		homeServicesRepo,
		settingsService,
		couponsService,
		bookingsRepo,
		notifyService,
		logg,
	)
	if err != nil {
		fatal(logg, "failed to create orders service", err)
	}

	registry := prometheus.NewRegistry()
	paymentMetrics := metrics.NewPaymentMetrics(registry)

	var paymentsService payments.Service
	if cfg.Razorpay.Configured() {
		gatewayClient, gwErr := razorpay.NewClient(cfg.Razorpay)
		if gwErr != nil {
			fatal(logg, "failed to create razorpay client", gwErr)
		}
		paymentsService, err = payments.NewService(paymentsRepo, ordersRepo, ordersService, dbClient, gatewayClient, productsRepo, notifyService, cfg.Razorpay, paymentMetrics, logg)
	} else {
		logg.Warn(context.Background(), "razorpay credentials missing, payment intents disabled")
		paymentsService, err = payments.NewService(paymentsRepo, ordersRepo, ordersService, dbClient, nil, productsRepo, notifyService, cfg.Razorpay, paymentMetrics, logg)
	}
	if err != nil {
		fatal(logg, "failed to create payments service", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			routes.Services{
				Auth:         authService,
				Users:        usersService,
				Products:     productsService,
				HomeServices: homeServicesService,
				Cart:         cartService,
				Wishlist:     wishlistService,
				Orders:       ordersService,
				Payments:     paymentsService,
				Coupons:      couponsService,
				Settings:     settingsService,
				Bookings:     bookingsService,
				Support:      supportService,
			},
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func fatal(logg *logger.Logger, msg string, err error) {
	logg.Error(context.Background(), msg, err)
	os.Exit(1)
}
