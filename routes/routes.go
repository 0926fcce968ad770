package routes

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"gstinvoice/handlers"
	"gstinvoice/logger"
)

type Handlers struct {
	Invoice  *handlers.InvoiceHandler
	Cloud    *handlers.CloudHandler
	Auth     *handlers.AuthHandler
	Seller   *handlers.SellerHandler
	Sessions *handlers.SessionManager
}

// Limits bound how hard clients can drive the PDF renderer.
type Limits struct {
	RatePerSecond float64
	Burst         int
	MaxRenders    int
}

// CORS middleware
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// withLogging attaches a request scoped logger and writes one access line per request.
func withLogging(base zerolog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			log := base.With().Str("request_id", uuid.NewString()).Logger()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r.WithContext(logger.WithContext(r.Context(), log)))

			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rec.status).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}

// renderGuard rate limits PDF producing routes and caps how many render at once.
type renderGuard struct {
	limiter   *rate.Limiter
	semaphore chan struct{}
}

func newRenderGuard(l Limits) *renderGuard {
	limit := rate.Limit(l.RatePerSecond)
	if l.RatePerSecond <= 0 {
		limit = rate.Inf
	}
	burst := l.Burst
	if burst <= 0 {
		burst = 1
	}
	n := l.MaxRenders
	if n <= 0 {
		n = 1
	}
	return &renderGuard{
		limiter:   rate.NewLimiter(limit, burst),
		semaphore: make(chan struct{}, n),
	}
}

func (g *renderGuard) wrap(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.limiter.Allow() {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		select {
		case g.semaphore <- struct{}{}:
			defer func() { <-g.semaphore }()
		case <-r.Context().Done():
			http.Error(w, "request cancelled", http.StatusServiceUnavailable)
			return
		}
		next(w, r)
	})
}

// NewRouter wires every route of the invoice app.
func NewRouter(h Handlers, log zerolog.Logger, limits Limits) http.Handler {
	r := mux.NewRouter()
	r.Use(withLogging(log))
	r.Use(handlers.RecoverWrapper)
	r.Use(h.Sessions.Middleware)

	guard := newRenderGuard(limits)

	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)
	r.HandleFunc("/login", h.Auth.LoginPage).Methods(http.MethodGet)
	r.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost)
	r.HandleFunc("/logout", h.Auth.Logout).Methods(http.MethodGet)
	// the consent redirect returns here without any app state beyond the session
	r.HandleFunc("/oauth2callback", h.Cloud.OAuth2Callback).Methods(http.MethodGet)

	app := r.NewRoute().Subrouter()
	app.Use(h.Auth.RequireLogin)

	app.HandleFunc("/", h.Invoice.Home).Methods(http.MethodGet)
	app.HandleFunc("/new-invoice", h.Invoice.NewInvoiceForm).Methods(http.MethodGet)
	app.HandleFunc("/new-invoice", h.Invoice.CreateInvoice).Methods(http.MethodPost)
	app.HandleFunc("/preview/{invoice_no:.+}", h.Invoice.Preview).Methods(http.MethodGet)
	app.Handle("/generate-pdf/{invoice_no:.+}", guard.wrap(h.Invoice.GeneratePDF)).Methods(http.MethodGet)
	app.HandleFunc("/export-xlsx/{invoice_no:.+}", h.Invoice.ExportXLSX).Methods(http.MethodGet)

	app.HandleFunc("/authorize/{invoice_no:.+}", h.Cloud.Authorize).Methods(http.MethodGet)
	app.Handle("/upload-to-drive/{invoice_no:.+}", guard.wrap(h.Cloud.UploadToDrive)).Methods(http.MethodGet)
	app.Handle("/upload/{invoice_no:.+}", guard.wrap(h.Cloud.Upload)).Methods(http.MethodGet)

	app.HandleFunc("/seller", h.Seller.GetSeller).Methods(http.MethodGet)
	app.HandleFunc("/seller", h.Seller.SaveSeller).Methods(http.MethodPost)

	// outside the router so preflights reach it before method matching
	return withCORS(r)
}
