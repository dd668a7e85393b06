package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/config"
	_ "github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/docs"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/cache"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/checkout"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/handlers"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/hashing"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/pricing"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/producer"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/repository"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/router"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/service"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/token"
	gtransport "github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/transport/grpc"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/pkg/database"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// @Title Trynex Orders API
// @Version 1.0
// @Description Оформление заказов, расчёт итога, промокоды и трекинг
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)

	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	redisClient, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
	if err != nil {
		log.Fatal("Не удалось подключиться к Redis", zap.Error(err))
	}
	defer redisClient.Close()

	table, err := pricing.LoadDeliveryTable(cfg.DeliveryTablePath, log)
	if err != nil {
		log.Fatal("Не удалось загрузить таблицу доставки", zap.Error(err))
	}
	calc := pricing.NewCalculator(table)

	var events service.EventBus
	if len(cfg.KafkaBrokers) > 0 {
		prod := producer.NewOrderEventProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer prod.Close()
		events = prod
	} else {
		log.Warn("KAFKA_BROKERS не задан, события заказов не публикуются")
	}

	repos := repository.New(db)
	svc := service.NewOrderService(repos.Orders, repos.Promos, calc, redisClient, events, service.Options{
		TrackingTTL: cfg.Tracking.CacheTTL,
		ListTTL:     cfg.Tracking.ListCacheTTL,
	}, log)

	co := checkout.New(
		cache.NewSessionStore(redisClient, cfg.Checkout.SessionTTL),
		checkout.NewAssembler(calc),
		svc, svc, svc,
		cfg.Checkout.SubmitTimeout,
		log,
	)

	tokens := token.NewHSProvider(cfg.Admin.Secret, cfg.Admin.Issuer, cfg.Admin.Audience)

	var authHandler *handlers.AuthHandler
	if cfg.Admin.PasswordHash != "" {
		if err := hashing.Check(cfg.Admin.PasswordHash); err != nil {
			log.Fatal("ADMIN_PASSWORD_HASH не похож на bcrypt-хэш", zap.Error(err))
		}
		adminAuth := service.NewAdminAuth(cfg.Admin.Username, cfg.Admin.PasswordHash,
			hashing.NewBcrypt(0), tokens, cfg.Admin.TokenTTL, log)
		authHandler = handlers.NewAuthHandler(adminAuth, log)
	}

	ready := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	}

	r := router.Router(router.Deps{
		Orders: handlers.NewOrderHandler(svc, handlers.WatchOptions{
			Interval:        cfg.Tracking.Interval,
			NotFoundRetries: cfg.Tracking.NotFoundRetries,
			BaseBackoff:     cfg.Tracking.BaseBackoff,
			MaxBackoff:      cfg.Tracking.MaxBackoff,
		}, log),
		Checkout: handlers.NewCheckoutHandler(co, log),
		Auth:     authHandler,
		Tokens:   tokens,
		Ready:    ready,
	}, log)

	httpSrv := &http.Server{
		Addr:              cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lis, err := net.Listen("tcp", cfg.GRPCPort)
	if err != nil {
		log.Fatal("failed to listen", zap.Error(err))
	}
	grpcServer, healthSrv := gtransport.NewServer(tokens, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go gtransport.WatchReadiness(ctx, healthSrv, ready, 10*time.Second, log)

	go func() {
		log.Info("Starting gRPC health server", zap.String("addr", cfg.GRPCPort))
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatal("gRPC server failed", zap.Error(err))
		}
	}()

	go func() {
		log.Info("Starting HTTP server", zap.String("addr", cfg.Port))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to run http server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down...")
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 15*time.Second)
	defer stop()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
	grpcServer.GracefulStop()
	log.Info("Servers stopped gracefully")
}
