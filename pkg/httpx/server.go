package httpx

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"
)

// Defaults applied by NewRouter when the corresponding ServerConfig field is
// zero.
const (
	defaultRateLimitPerMin = 100
	defaultBodyLimit       = 10 << 20
	defaultRequestTimeout  = 30 * time.Second
)

// ServerConfig tunes the shared middleware stack.
type ServerConfig struct {
	ServiceName   string
	IsDevelopment bool
	// CORSAllowedOrigins is comma-separated; "*" (dev only) allows everything.
	CORSAllowedOrigins string
	// RateLimitPerMin caps requests per client IP per minute.
	RateLimitPerMin int
	// BodyLimit caps the request body in bytes.
	BodyLimit int64
	// RequestTimeout is the per-request handler deadline.
	RequestTimeout time.Duration
}

// Middlewares are the app-supplied layers NewRouter mounts ahead of the
// chi built-ins. All four are required.
type Middlewares struct {
	Recovery func(http.Handler) http.Handler // outermost, catches re-panics from sentry
	Sentry   func(http.Handler) http.Handler // captures panics, then re-panics
	Otel     func(http.Handler) http.Handler // one trace span per request
	Logger   func(http.Handler) http.Handler // request log with trace/span IDs
}

// NewRouter assembles the router every propstack binary serves from.
//
// Order, outermost first: recovery, sentry, request ID, otel, logger,
// real IP, rate limit, CORS, body limit, timeout, security headers.
// Recovery sits outside sentry on purpose: sentry re-panics after capture
// and recovery turns that into a 500.
func NewRouter(cfg ServerConfig, mw Middlewares) *chi.Mux {
	if cfg.RateLimitPerMin <= 0 {
		cfg.RateLimitPerMin = defaultRateLimitPerMin
	}
	if cfg.BodyLimit <= 0 {
		cfg.BodyLimit = defaultBodyLimit
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	r := chi.NewRouter()
	r.Use(
		mw.Recovery,
		mw.Sentry,
		middleware.RequestID,
		mw.Otel,
		mw.Logger,
		middleware.RealIP,
		httprate.LimitByIP(cfg.RateLimitPerMin, time.Minute),
		CORSMiddleware(cfg.CORSAllowedOrigins),
		RequestBodyLimit(cfg.BodyLimit),
		middleware.Timeout(cfg.RequestTimeout),
		securityHeaders(cfg.IsDevelopment).Handler,
	)
	return r
}

func securityHeaders(isDevelopment bool) *secure.Secure {
	return secure.New(secure.Options{
		STSSeconds:            63072000,
		STSIncludeSubdomains:  true,
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'",
		PermissionsPolicy:     "geolocation=(), microphone=(), camera=(), usb=(), magnetometer=(), gyroscope=()",
		IsDevelopment:         isDevelopment,
	})
}

// CORSMiddleware restricts cross-origin requests to allowedOrigins, a
// comma-separated list such as "https://app.propstack.example.com".
func CORSMiddleware(allowedOrigins string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   splitOrigins(allowedOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

func splitOrigins(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// RequestBodyLimit caps request bodies at maxBytes. Reads past the cap fail;
// handlers surface that as 413.
func RequestBodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// NewServer wraps handler in an *http.Server with sane production timeouts.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:           addr,
		Handler:        handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
}
