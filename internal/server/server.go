// Package server boots every subsystem and runs the HTTP server until
// a shutdown signal arrives.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/vastra/app/controllers"
	"github.com/shashiranjanraj/vastra/app/graph"
	"github.com/shashiranjanraj/vastra/app/jobs"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/app/routes"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/config"
	"github.com/shashiranjanraj/vastra/pkg/auth"
	"github.com/shashiranjanraj/vastra/pkg/cache"
	"github.com/shashiranjanraj/vastra/pkg/database"
	"github.com/shashiranjanraj/vastra/pkg/event"
	grpcserver "github.com/shashiranjanraj/vastra/pkg/grpc"
	"github.com/shashiranjanraj/vastra/pkg/logger"
	"github.com/shashiranjanraj/vastra/pkg/metrics"
	"github.com/shashiranjanraj/vastra/pkg/middleware"
	"github.com/shashiranjanraj/vastra/pkg/migration"
	"github.com/shashiranjanraj/vastra/pkg/queue"
	"github.com/shashiranjanraj/vastra/pkg/reqid"
	"github.com/shashiranjanraj/vastra/pkg/router"
	"github.com/shashiranjanraj/vastra/pkg/storage"
	"github.com/shashiranjanraj/vastra/pkg/ws"
)

// Run boots the application and blocks until SIGINT/SIGTERM.
func Run() error {
	if err := config.Load(); err != nil {
		return err
	}

	if config.LogDriver() == "mongo" {
		mh, err := logger.EnableMongo(config.MongoURI(), config.MongoDatabase(), config.MongoLogCollection())
		if err != nil {
			return fmt.Errorf("enable mongo logging: %w", err)
		}
		defer mh.Close()
	}

	if err := database.Connect(); err != nil {
		return err
	}
	if err := migration.New(database.DB).Run(); err != nil {
		return err
	}

	// Redis backs cache, blacklist, and queue when reachable; the
	// in-memory drivers keep a dev box working without it.
	store, err := cache.NewRedis(config.RedisAddr(), config.RedisPassword(), "vastra")
	if err != nil {
		logger.Warn("redis unavailable, using in-memory cache", "error", err)
		store = cache.NewMemory()
	} else {
		rdb := redis.NewClient(&redis.Options{
			Addr:     config.RedisAddr(),
			Password: config.RedisPassword(),
		})
		queue.SetDriver(queue.NewRedisDriver(rdb))
	}

	storage.Connect()
	queue.UseDB(database.DB)

	// Wiring: repositories → services → controllers.
	userRepo := repositories.NewUserRepository(database.DB)
	categoryRepo := repositories.NewCategoryRepository(database.DB)
	productRepo := repositories.NewProductRepository(database.DB)
	cartRepo := repositories.NewCartRepository(database.DB)
	orderRepo := repositories.NewOrderRepository(database.DB)

	tokens := auth.NewManager(config.JWTSecret())
	blacklist := auth.NewBlacklist(store)

	authService := services.NewAuthService(userRepo, tokens, blacklist)
	catalogService := services.NewCatalogService(categoryRepo, productRepo, store)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(orderRepo)
	contactService := services.NewContactService(nil)

	schema, err := graph.NewSchema(catalogService)
	if err != nil {
		return err
	}

	orderHub := ws.NewHub()
	go orderHub.Run()

	jobs.Init(orderRepo, userRepo)
	registerOrderListeners(orderHub)

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	queue.StartWorkers(workerCtx, 4)

	// gRPC health endpoint for infrastructure probes.
	grpcSrv, _, err := grpcserver.Start(config.GRPCPort(), func() bool {
		sqlDB, err := database.DB.DB()
		return err == nil && sqlDB.Ping() == nil
	})
	if err != nil {
		return err
	}
	defer grpcserver.Stop(grpcSrv)

	r := router.New()
	r.Use(
		chimw.StripSlashes, // API routes are canonical without trailing slash
		metrics.Middleware(),
		reqid.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
	)

	routes.RegisterAPI(r, routes.Controllers{
		Auth:    controllers.NewAuthController(authService),
		Catalog: controllers.NewCatalogController(catalogService),
		Product: controllers.NewProductController(catalogService),
		Cart:    controllers.NewCartController(cartService),
		Order:   controllers.NewOrderController(orderService, orderHub),
		Contact: controllers.NewContactController(contactService),
		Tokens:  tokens,
		Schema:  schema,
	})

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// registerOrderListeners connects order events to their side effects:
// a websocket push to the buyer and a queued confirmation email.
func registerOrderListeners(hub *ws.Hub) {
	event.Listen(services.EventOrderPlaced, func(payload interface{}) {
		ev, ok := payload.(services.OrderEvent)
		if !ok {
			return
		}
		pushOrderEvent(hub, ev)
		if err := queue.Dispatch(&jobs.OrderConfirmationJob{OrderID: ev.OrderID}); err != nil {
			logger.Error("order confirmation dispatch failed", "order_id", ev.OrderID, "error", err)
		}
	})

	event.Listen(services.EventOrderStatusUpdated, func(payload interface{}) {
		ev, ok := payload.(services.OrderEvent)
		if !ok {
			return
		}
		pushOrderEvent(hub, ev)
	})
}

func pushOrderEvent(hub *ws.Hub, ev services.OrderEvent) {
	msg, err := json.Marshal(ev)
	if err != nil {
		return
	}
	hub.SendTo(services.UserKey(ev.UserID), msg)
}
