package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/sandeepkv93/catalog-api/internal/health"
	"github.com/sandeepkv93/catalog-api/internal/http/handler"
	"github.com/sandeepkv93/catalog-api/internal/http/middleware"
	"github.com/sandeepkv93/catalog-api/internal/http/response"
)

const maxBodyBytes = 1 << 20

type Dependencies struct {
	CategoryHandler   *handler.CategoryHandler
	ProductHandler    *handler.ProductHandler
	TokenValidator    middleware.TokenValidator
	CORSOrigins       []string
	APIRateLimitRPM   int
	GlobalRateLimiter GlobalRateLimiterFunc
	Readiness         *health.ProbeRunner
	EnableOTelHTTP    bool
}

type GlobalRateLimiterFunc func(http.Handler) http.Handler

// crudHandler is the route set shared by every catalog entity.
type crudHandler interface {
	List(http.ResponseWriter, *http.Request)
	GetByID(http.ResponseWriter, *http.Request)
	Create(http.ResponseWriter, *http.Request)
	Update(http.ResponseWriter, *http.Request)
	Delete(http.ResponseWriter, *http.Request)
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.StructuredRequestLogger)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(dep.CORSOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))
	if dep.GlobalRateLimiter != nil {
		r.Use(dep.GlobalRateLimiter)
	} else {
		r.Use(middleware.NewRateLimiter(dep.APIRateLimitRPM, time.Minute).Middleware())
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, r, http.StatusNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, r, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})

	r.Get("/health/live", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, r, "Service is live", map[string]string{"state": "ok"})
	})
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		ready, results := dep.Readiness.Ready(r.Context())
		if results == nil {
			results = []health.CheckResult{}
		}
		data := map[string]any{"checks": results}
		if ready {
			response.Success(w, r, "Service is ready", data)
			return
		}
		response.Error(w, r, http.StatusServiceUnavailable, "Dependencies are not ready", data)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RequireAPIToken(dep.TokenValidator))
		r.Route("/categories", func(r chi.Router) { mountCRUD(r, dep.CategoryHandler) })
		r.Route("/products", func(r chi.Router) { mountCRUD(r, dep.ProductHandler) })
	})

	var h http.Handler = r
	if dep.EnableOTelHTTP {
		h = otelhttp.NewHandler(r, "http.server")
	}
	return h
}

func mountCRUD(r chi.Router, h crudHandler) {
	r.Get("/get", h.List)
	r.Get("/{id}/get", h.GetByID)
	r.Post("/create", h.Create)
	r.Put("/{id}/update", h.Update)
	r.Delete("/{id}/delete", h.Delete)
}
