package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"

	"invoicedash/internal/action"
	"invoicedash/internal/auth"
	"invoicedash/internal/cache"
	"invoicedash/internal/config"
	"invoicedash/internal/database"
	"invoicedash/internal/handler"
	"invoicedash/internal/mw"
	"invoicedash/internal/service"
	"invoicedash/internal/worker"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server and the revenue worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	db, err := database.NewDB(ctx, cfg.DatabaseURI)
	if err != nil {
		slog.Error("failed to connect to DB", "error", err)
		return err
	}
	defer database.CloseDB(db)

	if err := database.InitSchema(ctx, db); err != nil {
		slog.Error("failed to init DB schema", "error", err)
		return err
	}

	// Services
	authSvc := service.NewAuthService(db)
	invoiceSvc := service.NewInvoiceService(db)
	customerSvc := service.NewCustomerService(db)
	revenueSvc := service.NewRevenueService(db)

	renders := cache.NewRenderCache(cfg.RenderCacheSize)
	renders.Fanout(action.InvoicesPath, handler.DashboardPath)

	invoiceActions := action.NewInvoiceActions(invoiceSvc, renders)
	authActions := action.NewAuthActions(auth.NewProvider(authSvc, cfg.AuthSecret, cfg.SessionTTL))

	// Worker
	revenueWorker := worker.NewRevenueWorker(revenueSvc, renders, handler.RevenuePath, cfg.RevenueSchedule)

	// Router
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public routes
	r.Post("/login", handler.LoginHandler(authActions, cfg.SecureCookies))
	r.Post("/logout", handler.LogoutHandler())

	// Protected routes
	r.Route(handler.DashboardPath, func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.AuthSecret))

		r.Get("/", handler.OverviewHandler(invoiceSvc, renders))
		r.Get("/revenue", handler.RevenueHandler(revenueSvc, renders))
		r.Get("/customers", handler.ListCustomersHandler(customerSvc))

		r.Get("/invoices", handler.ListInvoicesHandler(invoiceSvc, renders))
		r.Post("/invoices", handler.CreateInvoiceHandler(invoiceActions))
		r.Get("/invoices/{id}", handler.GetInvoiceHandler(invoiceSvc))
		r.Post("/invoices/{id}/edit", handler.UpdateInvoiceHandler(invoiceActions))
		r.Post("/invoices/{id}/delete", handler.DeleteInvoiceHandler(invoiceActions))
	})

	srv := &http.Server{
		Addr:         cfg.RunAddress,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	workerCtx, cancel := context.WithCancel(ctx)
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		if err := revenueWorker.Start(workerCtx); err != nil {
			slog.Error("revenue worker failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	slog.Info("starting server", "addr", cfg.RunAddress)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-quit:
		slog.Info("shutting down...")
	case err = <-serverErr:
		slog.Error("server failed", "error", err)
	}

	cancel() // stop worker
	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := srv.Shutdown(ctxShut); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	<-workerDone

	slog.Info("server stopped")
	return err
}
