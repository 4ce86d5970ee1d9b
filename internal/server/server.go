// Package server exposes recipes, ingredients and meal plans as a JSON API.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/mealplan/internal/constants"
	"github.com/julianstephens/mealplan/internal/logger"
	"github.com/julianstephens/mealplan/internal/service"
)

type Server struct {
	svc      *service.Service
	metrics  *Metrics
	validate *validator.Validate
	router   *chi.Mux
	http     *http.Server
}

func New(svc *service.Service, addr string) *Server {
	s := &Server{
		svc:      svc,
		metrics:  NewMetrics(),
		validate: newValidator(),
	}
	s.router = s.routes()
	s.http = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  constants.ServerReadTimeout,
		WriteTimeout: constants.ServerWriteTimeout,
		IdleTimeout:  constants.ServerIdleTimeout,
	}
	return s
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(s.metrics))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(constants.ServerRequestTimeout))

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/ingredients", func(r chi.Router) {
		r.Post("/", s.handleCreateIngredient)
		r.Get("/", s.handleListIngredients)
	})

	r.Route("/recipes", func(r chi.Router) {
		r.Post("/", s.handleCreateRecipe)
		r.Get("/", s.handleListRecipes)
		r.Get("/{id}", s.handleGetRecipe)
	})

	r.Route("/meal-plans", func(r chi.Router) {
		r.Post("/", s.handleCreatePlan)
		r.Get("/", s.handleListPlans)
		r.Get("/{id}", s.handleGetPlan)
		r.Get("/{id}/grocery-list", s.handleGroceryList)
	})

	return r
}

// Handler returns the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", s.http.Addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ServerShutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
