package web

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const requestIDHeader = "X-Request-ID"

var traceContext = propagation.TraceContext{}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) loggerMiddleware() func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now().UTC()

			requestID := r.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, requestID)

			ctx := traceContext.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			r = r.WithContext(ctx)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			var traceID string

			if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
				traceID = sc.TraceID().String()
			}

			s.l.With(
				zap.String("type", "access"),
				zap.String("request_id", requestID),
				zap.String("trace_id", traceID),
				zap.String("method", r.Method),
				zap.String("url", r.URL.Path),
				zap.String("proto", r.Proto),
				zap.String("user_agent", r.Header.Get("User-Agent")),
				zap.Int("status", rec.status),
				zap.Duration("latency", time.Since(start)),
			).LogInfo("%s %s %d", r.Method, r.URL.Path, rec.status)
		})
	}
}

func (s *Server) recoverMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if re := recover(); re != nil {
					err, ok := re.(error)
					if !ok {
						err = fmt.Errorf("%v: %w", re, ErrPanic)
					}
					s.l.LogErrorf("type: panic, error: %v\n", err)
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// limiterIdle is how long a client may stay quiet before its limiter is
// dropped. Its bucket is full again by then.
const limiterIdle = 3 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterStore struct {
	mu        sync.Mutex
	perMin    int
	limiters  map[string]*clientLimiter
	lastSweep time.Time
	now       func() time.Time
}

func newLimiterStore(perMin int) *limiterStore {
	return &limiterStore{
		perMin:   perMin,
		limiters: make(map[string]*clientLimiter),
		now:      time.Now,
	}
}

func (ls *limiterStore) get(ip string) *rate.Limiter {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	now := ls.now()

	if now.Sub(ls.lastSweep) >= limiterIdle {
		ls.sweep(now)
	}

	cl, exists := ls.limiters[ip]
	if !exists {
		cl = &clientLimiter{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(ls.perMin)), ls.perMin),
		}
		ls.limiters[ip] = cl
	}

	cl.lastSeen = now

	return cl.limiter
}

// sweep must be called with mu held.
func (ls *limiterStore) sweep(now time.Time) {
	for ip, cl := range ls.limiters {
		if now.Sub(cl.lastSeen) >= limiterIdle {
			delete(ls.limiters, ip)
		}
	}

	ls.lastSweep = now
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}

func (s *Server) rateLimitMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if s.limiters.perMin <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			if !s.limiters.get(ip).Allow() {
				s.l.With(zap.String("ip", ip)).LogWarn("Rate limit exceeded")
				writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "Rate limit exceeded. Try again later."})

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) applyMiddlewares(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for _, middleware := range middlewares {
		h = middleware(h)
	}

	return h
}
