package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fjod/go_skincare/internal/cart"
	"github.com/fjod/go_skincare/internal/catalog"
	"github.com/fjod/go_skincare/internal/metrics"
	"github.com/fjod/go_skincare/internal/search"
)

// Deps are the components the gateway serves. Metrics and MetricsHandler
// are optional.
type Deps struct {
	Catalog        *catalog.Catalog
	Engine         *search.Engine
	Carts          *cart.Registry
	Recent         *search.RecentSearches
	Metrics        *metrics.Metrics
	MetricsHandler http.Handler
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

func NewRouter(d Deps) http.Handler {
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = 30 * time.Second
	}

	var observer SearchObserver
	if d.Metrics != nil {
		observer = d.Metrics
	}
	products := NewProductHandler(d.Catalog)
	searches := NewSearchHandler(d.Engine, d.Recent, observer, d.RequestTimeout)
	carts := NewCartHandler(d.Carts, d.Catalog, d.RequestTimeout)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if d.Logger != nil {
		r.Use(requestLogger(d.Logger))
	}
	r.Use(middleware.Recoverer)
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}
	r.Use(middleware.Timeout(d.RequestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if d.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", d.MetricsHandler)
	}

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", products.List)
			r.Get("/featured", products.Featured)
			r.Get("/categories", products.Categories)
			r.Get("/{slug}", products.Get)
			r.Get("/{slug}/price", products.Price)
			r.Get("/{slug}/stock", products.Stock)
		})

		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware)

			r.Route("/search", func(r chi.Router) {
				r.Get("/", searches.Search)
				r.Get("/suggestions", searches.Suggestions)
				r.Get("/quick", searches.Quick)
				r.Get("/filters", searches.FilterOptions)
				r.Get("/trending", searches.Trending)
				r.Get("/recent", searches.Recent)
				r.Delete("/recent", searches.ClearRecent)
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", carts.GetCart)
				r.Delete("/", carts.ClearCart)
				r.Post("/items", carts.AddItem)
				r.Put("/items/{id}", carts.UpdateQuantity)
				r.Delete("/items/{id}", carts.RemoveItem)
				r.Post("/toggle", carts.Toggle)
				r.Post("/open", carts.Open)
				r.Post("/close", carts.Close)
			})
		})
	})

	return r
}

// requestLogger logs one structured line per request.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.InfoContext(r.Context(), "request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", middleware.GetReqID(r.Context())))
		})
	}
}
