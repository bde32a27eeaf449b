package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tillerhq/farmops/internal/cropplan"
	"github.com/tillerhq/farmops/internal/database"
	"github.com/tillerhq/farmops/internal/handler"
	"github.com/tillerhq/farmops/internal/logger"
	"github.com/tillerhq/farmops/internal/metrics"
	"github.com/tillerhq/farmops/internal/monitor"
	"github.com/tillerhq/farmops/internal/ordergen"
	"github.com/tillerhq/farmops/internal/repository"
	"github.com/tillerhq/farmops/internal/stagetask"
)

// Services bundles everything the API surface needs
type Services struct {
	Generator ordergen.Service
	Deriver   cropplan.Service
	StageTask stagetask.Service
	Monitor   monitor.Service
	Orders    repository.Order
	Plans     repository.Plan
	Crops     repository.Crop
	Tasks     repository.Task
	Recipes   repository.Recipe
}

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, dbPool database.Pool, svcs Services) *Server {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.MetricsMiddleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/templates", func(r chi.Router) {
			r.Get("/", handler.HandleListTemplates(svcs.Orders))
			r.Post("/backfill", handler.HandleBackfillAll(svcs.Generator))
			r.Post("/{id}/backfill", handler.HandleBackfillTemplate(svcs.Generator))
			r.Post("/{id}/deactivate", handler.HandleDeactivateTemplate(svcs.Orders))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/{id}/derive", handler.HandleDeriveOrder(svcs.Deriver))
			r.Post("/{id}/cancel", handler.HandleCancelOrder(svcs.Orders, svcs.StageTask))
		})

		r.Route("/plans", func(r chi.Router) {
			r.Get("/", handler.HandleListPlans(svcs.Plans))
			r.Post("/derive", handler.HandleDerivePlans(svcs.Deriver))
			r.Get("/{id}/crops", handler.HandleListPlanCrops(svcs.Crops))
			r.Post("/{id}/start", handler.HandleStartProduction(svcs.Deriver))
		})

		r.Route("/crops", func(r chi.Router) {
			r.Post("/{id}/advance", handler.HandleAdvanceCrop(svcs.StageTask))
			r.Post("/{id}/rollback", handler.HandleRollbackCrop(svcs.StageTask))
			r.Delete("/{id}", handler.HandleDeleteCrop(svcs.Crops, svcs.Tasks))
		})

		r.Get("/recipes", handler.HandleListRecipes(svcs.Recipes))

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/due", handler.HandleListDueTasks(svcs.Tasks))
			r.Post("/reschedule", handler.HandleRescheduleTasks(svcs.StageTask))
		})

		r.Post("/monitor/sweep", handler.HandleSweep(svcs.Monitor))
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool: dbPool,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		runID := logger.GenerateRunID()
		ctx := logger.WithRunID(r.Context(), runID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
