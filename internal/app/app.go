package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	sdkapp "github.com/go-faster/sdk/app"
	"go.uber.org/zap"

	"github.com/electrocart/storefront/internal/domain/cart"
	"github.com/electrocart/storefront/internal/domain/order"
	"github.com/electrocart/storefront/internal/domain/wishlist"
	"github.com/electrocart/storefront/internal/handler"
	"github.com/electrocart/storefront/internal/storage/postgres"
	"github.com/electrocart/storefront/pkg/health"
	"github.com/electrocart/storefront/pkg/httpmiddleware"
	"github.com/electrocart/storefront/pkg/keymutex"
)

// Run wires all application components and serves the API until ctx is
// cancelled. It is intended to be called from the sdk app runner.
func Run(ctx context.Context, lg *zap.Logger, t *sdkapp.Telemetry, cfg *Config) error {
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return errors.Wrap(err, "connect database")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}
	lg.Info("Database schema ready")

	checker := health.New()
	checker.AddLivenessCheck("goroutine-count", 5*time.Second, health.GoroutineCountCheck(10_000))
	checker.AddReadinessCheck("postgres", 5*time.Second, func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	checker.Start(ctx, 15*time.Second)
	defer checker.Stop()

	products := postgres.NewProductRepository(pool)
	carts := postgres.NewCartRepository(pool)
	wishlists := postgres.NewWishlistRepository(pool)
	orders := postgres.NewOrderRepository(pool)

	// Cart mutations and checkout contend on the same per-user locks so a
	// checkout cannot interleave with a concurrent cart update.
	userLocks := keymutex.New()
	cartSvc := cart.NewService(carts, products, userLocks)
	wishlistSvc := wishlist.NewService(wishlists)
	orderSvc := order.NewService(orders, carts, products, userLocks)

	api := handler.NewHandler(products, cartSvc, wishlistSvc, orderSvc)

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", checker.LiveEndpoint)
	mux.HandleFunc("/readyz", checker.ReadyEndpoint)
	mux.Handle("/api/", http.StripPrefix("/api", api.Routes()))

	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: httpmiddleware.Wrap(mux,
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins:     cfg.CORS.Origins,
				AllowCredentials: cfg.CORS.AllowCredentials,
			}),
			httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
				Max:    cfg.RateLimit.Max,
				Window: cfg.RateLimit.Window,
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(lg.Named("http")),
			httpmiddleware.Instrument("storefront", t),
			httpmiddleware.LogRequests(),
		),
		ReadHeaderTimeout: 5 * time.Second,
	}

	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		// Flip readiness first so load balancers drain traffic before the
		// listener stops accepting.
		checker.SetReady(false)
		lg.Info("Shutting down", zap.Duration("readiness_delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()
		done <- srv.Shutdown(shutdownCtx)
	}()

	checker.SetReady(true)
	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "listen")
	}
	return <-done
}
