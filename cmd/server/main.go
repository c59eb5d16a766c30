package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/storefront/internal/config"
	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/httpserver"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/search"
	"github.com/Skotchmaster/storefront/internal/service"
	pkgdb "github.com/Skotchmaster/storefront/pkg/db"
	"github.com/Skotchmaster/storefront/pkg/logging"
	middleware "github.com/Skotchmaster/storefront/pkg/middleware/auth"
	loggingmw "github.com/Skotchmaster/storefront/pkg/middleware/logging"
	pkgmongo "github.com/Skotchmaster/storefront/pkg/mongodb"
	"github.com/Skotchmaster/storefront/pkg/tokens"
)

// store is what every backend provides to the services.
type store interface {
	service.ProductStore
	service.CartStore
	service.OrderStore
	service.UserStore
	middleware.SessionStore
	Ping(ctx context.Context) error
}

type eventSink interface {
	service.Publisher
	Close() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	st, closeStore, err := openStore(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("store open: %v", err)
	}
	logger.Info("store_ready", "driver", cfg.StoreDriver)

	var sink eventSink = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := events.EnsureTopics(ctx, cfg.KafkaBrokers[0], cfg.KafkaPartitions, events.Topics...); err != nil {
			logger.Warn("ensure_topics_failed", "reason", "writer will auto-create topics", "error", err)
		}
		cancel()
		sink = events.NewProducer(cfg.KafkaBrokers)
		logger.Info("events_enabled", "brokers", cfg.KafkaBrokers)
	}

	products := &service.ProductService{Repo: st, Events: sink}
	if cfg.ESURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		es, err := search.NewClient(ctx, search.Config{
			URL: cfg.ESURL, User: cfg.ESUser, Password: cfg.ESPassword, Index: cfg.ESIndex,
		})
		cancel()
		if err != nil {
			logger.Warn("search_disabled", "reason", "elasticsearch unreachable", "error", err)
		} else {
			products.Index = es
		}
	}

	cartLock := &sync.Mutex{}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		Products: &httpserver.ProductHTTP{Svc: products},
		Carts:    &httpserver.CartHTTP{Svc: &service.CartService{Repo: st, Events: sink, Lock: cartLock}},
		Orders: &httpserver.OrderHTTP{Svc: &service.OrderService{
			Carts: st, Products: st, Orders: st, Events: sink, Lock: cartLock,
		}},
		Users: &httpserver.UserHTTP{Svc: &service.UserService{
			Repo: st, Tokens: tokens.NewIssuer(cfg.JWTSecret, cfg.TokenTTL), Events: sink,
		}},
		Auth:  middleware.NewSigninMiddleware(cfg.JWTSecret, st),
		Ready: st.Ping,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
	}
	if err := sink.Close(); err != nil {
		logger.Error("events_close_failed", "error", err)
	}
	if err := closeStore(shutdownCtx); err != nil {
		logger.Error("store_close_failed", "error", err)
	}

	logger.Info("stopped")
}

// openStore connects the configured backend and prepares its schema.
func openStore(ctx context.Context, cfg config.Config) (store, func(context.Context) error, error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		db, err := pkgmongo.Connect(ctx, cfg.DatabaseURL, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		r := repo.NewMongoRepo(db)
		if err := r.CreateIndexes(ctx); err != nil {
			_ = pkgmongo.Disconnect(ctx, db)
			return nil, nil, fmt.Errorf("create indexes: %w", err)
		}
		return r, func(ctx context.Context) error { return pkgmongo.Disconnect(ctx, db) }, nil

	case config.StorePostgres, config.StoreSQLite:
		db, err := pkgdb.Open(ctx, cfg.StoreDriver, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		r := repo.NewGormRepo(db)
		if err := r.Migrate(ctx); err != nil {
			_ = pkgdb.Close(db)
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		return r, func(context.Context) error { return pkgdb.Close(db) }, nil
	}
	return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
}
