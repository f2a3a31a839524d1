package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/suyeshs/tandoor-pos/internal/catalog"
	"github.com/suyeshs/tandoor-pos/internal/kds"
	"github.com/suyeshs/tandoor-pos/internal/metrics"
	"github.com/suyeshs/tandoor-pos/internal/pricing"
	"github.com/suyeshs/tandoor-pos/internal/queue"
	"github.com/suyeshs/tandoor-pos/internal/ratelimiter"
	"github.com/suyeshs/tandoor-pos/internal/service"
	"github.com/suyeshs/tandoor-pos/internal/store/mongo"
	possync "github.com/suyeshs/tandoor-pos/internal/sync"
	"github.com/suyeshs/tandoor-pos/internal/worker"
	"go.uber.org/zap"
)

type application struct {
	config      config
	logger      *zap.SugaredLogger
	rateLimiter ratelimiter.Limiter
	storage     *mongo.Storage
	broker      queue.Broker
	peers       possync.PeerPublisher
	metrics     *metrics.Registry

	catalog *catalog.Service
	tables  *service.TableService
	pickup  *service.PickupService
	alerts  *service.AlertService

	kitchenWorker *worker.KitchenStatusWorker
	stockWorker   *worker.StockAlertWorker
}

type config struct {
	addr       string
	env        string
	tenantID   string
	terminalID string

	taxRate    float64
	packing    pricing.PackingRules
	gatePolicy kds.GatePolicy

	rateLimiter ratelimiter.Config
	mongo       mongoConfig
	rabbitMQ    rabbitMQConfig
	natsURL     string
}

type mongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type rabbitMQConfig struct {
	URL           string
	MaxRetries    int
	RetryDelay    time.Duration
	PrefetchCount int
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.RateLimiterMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.Handle("/metrics", app.metrics.Handler())

		r.Route("/tables", func(r chi.Router) {
			r.Get("/", app.listTablesHandler)
			r.Delete("/", app.clearAllTablesHandler)

			r.Route("/{table_no}", func(r chi.Router) {
				r.Post("/open", app.openTableHandler)
				r.Get("/", app.getTableHandler)
				r.Delete("/", app.clearTableHandler)

				r.Post("/cart", app.addTableCartHandler)
				r.Get("/cart", app.getTableCartHandler)
				r.Patch("/cart/{line_id}", app.setTableCartQuantityHandler)
				r.Delete("/cart/{line_id}", app.removeTableCartLineHandler)

				r.Post("/kot", app.sendTableKOTHandler)
				r.Get("/can-bill", app.canBillTableHandler)
				r.Post("/bill", app.billTableHandler)
				r.Post("/payment", app.payTableHandler)
			})
		})

		r.Route("/pickup", func(r chi.Router) {
			r.Post("/", app.createPickupHandler)
			r.Get("/", app.listPickupHandler)
			r.Get("/selected", app.selectedPickupHandler)

			r.Route("/{order_no}", func(r chi.Router) {
				r.Get("/", app.getPickupHandler)
				r.Post("/select", app.selectPickupHandler)
				r.Delete("/", app.clearPickupHandler)

				r.Post("/cart", app.addPickupCartHandler)
				r.Get("/cart", app.getPickupCartHandler)
				r.Patch("/cart/{line_id}", app.setPickupCartQuantityHandler)
				r.Delete("/cart/{line_id}", app.removePickupCartLineHandler)

				r.Post("/kot", app.sendPickupKOTHandler)
				r.Post("/bill", app.billPickupHandler)
				r.Post("/payment", app.payPickupHandler)
			})
		})

		r.Route("/alerts", func(r chi.Router) {
			r.Post("/", app.raiseAlertHandler)
			r.Get("/", app.listAlertsHandler)
			r.Get("/next", app.nextAlertHandler)
			r.Post("/{alert_id}/ack", app.ackAlertHandler)
		})
	})

	return r
}

func (app *application) RateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.config.rateLimiter.Enabled {
			allow, retryAfter := app.rateLimiter.Allow(r.RemoteAddr)
			if !allow {
				app.rateLimitExceededResponse(w, r, retryAfter.String())
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (app *application) run(mux http.Handler) error {
	if app.kitchenWorker != nil {
		if err := app.kitchenWorker.Start(); err != nil {
			return err
		}
	}
	if app.stockWorker != nil {
		if err := app.stockWorker.Start(); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		if app.kitchenWorker != nil {
			app.kitchenWorker.Stop()
		}
		if app.stockWorker != nil {
			app.stockWorker.Stop()
		}

		if app.storage != nil {
			if err := app.storage.Close(ctx); err != nil {
				app.logger.Errorw("error closing MongoDB", "error", err)
			} else {
				app.logger.Info("MongoDB connection closed gracefully")
			}
		}

		if app.broker != nil {
			if err := app.broker.Close(); err != nil {
				app.logger.Errorw("error closing RabbitMQ", "error", err)
			} else {
				app.logger.Info("RabbitMQ connection closed gracefully")
			}
		}

		if app.peers != nil {
			if err := app.peers.Close(); err != nil {
				app.logger.Errorw("error closing NATS", "error", err)
			}
		}

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env, "terminal", app.config.terminalID)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
