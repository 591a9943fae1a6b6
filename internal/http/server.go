package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	applog "txdash/internal/log"
	"txdash/internal/middleware/ratelimit"
	"txdash/internal/middleware/security"
	"txdash/internal/middleware/trace"
	"txdash/internal/source"
	appweb "txdash/web"
)

// Options tunes the middleware stack of a Server. Zero values fall back to defaults.
type Options struct {
	RateLimitRPM      int
	CORSAllowedOrigin string
	Logger            *applog.Logger
}

type Server struct {
	http.Server
	templates *template.Template
	source    source.Source
	logger    *applog.Logger
	started   time.Time

	rateLimiter      *ratelimit.Limiter
	traceMiddleware  *trace.Middleware
	securityDetector *security.Detector

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
// Every API request fetches src once.
func NewServer(addr string, src source.Source, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	logger = logger.WithComponent(applog.ComponentHTTP)

	mux := http.NewServeMux()
	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		source:           src,
		logger:           logger,
		started:          time.Now(),
		rateLimiter:      ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitRPM}),
		securityDetector: security.NewDetector(),
	}
	s.traceMiddleware = trace.NewMiddleware(s.securityDetector.ExtractClientIP)

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		logger.Warn("Failed parsing templates", applog.FieldError, err)
	}
	s.templates = t

	cors := security.DefaultCORSConfig()
	if opts.CORSAllowedOrigin != "" {
		cors.AllowedOrigin = opts.CORSAllowedOrigin
	}
	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())

	// Shared by every route
	common := []func(http.Handler) http.Handler{
		s.traceMiddleware.Middleware,
		applog.Middleware(logger),
		applog.RequestIDMiddleware(func(r *http.Request) string { return trace.GetRequestID(r.Context()) }),
		s.securityDetector.Middleware,
		headers.Middleware,
	}
	api := append(common[:len(common):len(common)],
		security.CORS(cors),
		s.rateLimiter.Middleware(s.securityDetector.ExtractClientIP, s.handleRateLimited),
		allowGET,
	)
	page := append(common[:len(common):len(common)], allowGET)

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", chain(static, append(page, security.StaticAssetMiddleware(3600))...))
	} else {
		logger.Warn("Failed to mount embedded static FS", applog.FieldError, err)
	}

	mux.Handle("/", chain(http.HandlerFunc(s.handleIndex), page...))
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/metrics", s.handleMetrics)

	mux.Handle("/transactions", chain(http.HandlerFunc(s.handleTransactions), api...))
	mux.Handle("/transactions/statistics", chain(http.HandlerFunc(s.handleStatistics), api...))
	mux.Handle("/transactions/price-ranges", chain(http.HandlerFunc(s.handlePriceRanges), api...))
	mux.Handle("/transactions/categories", chain(http.HandlerFunc(s.handleCategories), api...))
	mux.Handle("/transactions/dashboard", chain(http.HandlerFunc(s.handleDashboard), api...))
	mux.Handle("/transactions/export", chain(http.HandlerFunc(s.handleExport), api...))

	return s
}

// chain wraps h so that the first middleware is outermost.
func chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// allowGET rejects every method except GET with 405.
func allowGET(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}
