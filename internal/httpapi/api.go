// Package httpapi exposes the catalog query service over REST.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"kloth-be/internal/carousel"
	"kloth-be/internal/category"
	"kloth-be/internal/logger"
	"kloth-be/internal/metrics"
	"kloth-be/internal/middleware"
	"kloth-be/internal/product"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// Pinger reports database reachability; *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Dependencies struct {
	ProductService  product.Service
	CategoryService category.Service
	CarouselService carousel.Service
	DB              Pinger
	Limiter         *middleware.RateLimiter
	CORSOrigin      string
}

type API struct {
	productSvc  product.Service
	categorySvc category.Service
	carouselSvc carousel.Service
	db          Pinger
	limiter     *middleware.RateLimiter
	corsOrigin  string
	validator   *validator.Validate
}

func NewAPI(deps Dependencies) *API {
	limiter := deps.Limiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter()
	}
	return &API{
		productSvc:  deps.ProductService,
		categorySvc: deps.CategoryService,
		carouselSvc: deps.CarouselService,
		db:          deps.DB,
		limiter:     limiter,
		corsOrigin:  deps.CORSOrigin,
		validator:   validator.New(),
	}
}

// corsOptions lets the storefront origin call the catalog API; "" allows any origin.
func corsOptions(origin string) cors.Options {
	if origin == "" {
		origin = "*"
	}
	return cors.Options{
		AllowedOrigins: []string{origin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID", "X-Device-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(corsOptions(a.corsOrigin)))
	r.Use(a.limiter.Middleware)

	r.Get("/health", a.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/category/get-category", a.handleListCategories)

		r.Get("/craousel", a.handleListCarousel)
		r.Get("/craousel/image/{id}", a.handleCarouselImage)

		r.Route("/product", func(pr chi.Router) {
			pr.Get("/product-list/{page}", a.handleProductList)
			pr.Get("/product-count", a.handleProductCount)
			pr.Post("/product-filters", a.handleProductFilters)
			pr.Get("/product-image/{id}", a.handleProductImage)
			pr.Get("/get-product/{slug}", a.handleGetProduct)
		})
	})

	return r
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{"status": "ok", "database": "up"}
	if a.db == nil || a.db.PingContext(r.Context()) != nil {
		status["status"] = "degraded"
		status["database"] = "down"
	}
	status["metrics"] = metrics.Snapshot()
	writeJSON(w, http.StatusOK, status)
}

func (a *API) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		return err
	}
	return a.validator.Struct(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	body := errorResponse{Success: false, Message: message}
	if err != nil && status < http.StatusInternalServerError {
		body.Error = err.Error()
	}
	writeJSON(w, status, body)
}

func handleDomainError(w http.ResponseWriter, r *http.Request, message string, err error) {
	switch {
	case errors.Is(err, product.ErrInvalidPage),
		errors.Is(err, product.ErrInvalidPriceRange),
		errors.Is(err, product.ErrInvalidCategoryID):
		respondError(w, http.StatusBadRequest, message, err)
	case errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, product.ErrImageNotFound),
		errors.Is(err, carousel.ErrImageNotFound):
		respondError(w, http.StatusNotFound, message, err)
	default:
		logger.FromCtx(r.Context()).Error(message, zap.Error(err))
		respondError(w, http.StatusInternalServerError, message, err)
	}
}
