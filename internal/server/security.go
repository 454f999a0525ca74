package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/osse101/CaseSim_Go/internal/logger"
	"github.com/osse101/CaseSim_Go/internal/metrics"
)

// RateLimits bounds per-IP traffic inside a fixed window
type RateLimits struct {
	Window          time.Duration
	MaxRequests     int
	FailedAuthAlert int
}

// DefaultRateLimits allows 1000 requests per IP every five minutes and
// alerts from the fifth failed key in the same window
func DefaultRateLimits() RateLimits {
	return RateLimits{
		Window:          DefaultRateWindow,
		MaxRequests:     DefaultMaxRequests,
		FailedAuthAlert: DefaultFailedAuthAlert,
	}
}

func (l RateLimits) withDefaults() RateLimits {
	d := DefaultRateLimits()
	if l.Window <= 0 {
		l.Window = d.Window
	}
	if l.MaxRequests <= 0 {
		l.MaxRequests = d.MaxRequests
	}
	if l.FailedAuthAlert <= 0 {
		l.FailedAuthAlert = d.FailedAuthAlert
	}
	return l
}

// SuspiciousActivityDetector counts requests and failed keys per IP
type SuspiciousActivityDetector struct {
	limits RateLimits
	now    func() time.Time

	mu          sync.Mutex
	requests    map[string]int
	failedAuth  map[string]int
	windowStart time.Time
}

// NewSuspiciousActivityDetector creates a detector; zero fields in limits
// fall back to DefaultRateLimits
func NewSuspiciousActivityDetector(limits RateLimits) *SuspiciousActivityDetector {
	d := &SuspiciousActivityDetector{
		limits: limits.withDefaults(),
		now:    time.Now,
	}
	d.resetLocked()
	return d
}

func (d *SuspiciousActivityDetector) resetLocked() {
	d.requests = make(map[string]int)
	d.failedAuth = make(map[string]int)
	d.windowStart = d.now()
}

func (d *SuspiciousActivityDetector) rollLocked() {
	if d.now().Sub(d.windowStart) > d.limits.Window {
		d.resetLocked()
	}
}

// RecordFailedAuth counts a rejected key and reports whether the IP has
// crossed the alert threshold
func (d *SuspiciousActivityDetector) RecordFailedAuth(ip string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.rollLocked()
	d.failedAuth[ip]++
	n := d.failedAuth[ip]
	if n < d.limits.FailedAuthAlert {
		return false
	}
	slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", n)
	return true
}

// RecordRequest counts a request and returns false once the IP is over
// its budget for the current window
func (d *SuspiciousActivityDetector) RecordRequest(ip string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.rollLocked()
	d.requests[ip]++
	n := d.requests[ip]
	if n <= d.limits.MaxRequests {
		return true
	}
	// one line per hundred rejections
	if n%100 == 0 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count_in_window", n, "window", d.limits.Window)
	}
	return false
}

func (d *SuspiciousActivityDetector) requestCount(ip string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.requests[ip]
}

// AuthMiddleware requires the API key on every non-public path. The key is
// read from the header first, then the query string. An empty apiKey
// disables the check.
func AuthMiddleware(apiKey string, trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if apiKey == "" {
			return next
		}
		want := []byte(apiKey)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			got := r.Header.Get(HeaderAPIKey)
			if got == "" {
				got = r.URL.Query().Get(QueryParamAPIKey)
			}
			if subtle.ConstantTimeCompare([]byte(got), want) == 1 {
				next.ServeHTTP(w, r)
				return
			}

			ip := extractIP(r, trustedProxies)
			detector.RecordFailedAuth(ip)
			metrics.RequestsRejected.WithLabelValues(metrics.RejectReasonAuth).Inc()
			logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
				"ip", ip,
				"path", r.URL.Path,
				"has_key", got != "")

			http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
		})
	}
}

func isPublicPath(path string) bool {
	return slices.ContainsFunc(PublicPaths, func(prefix string) bool {
		return strings.HasPrefix(path, prefix)
	})
}

// RequestSizeLimitMiddleware caps request bodies at maxBytes
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityLoggingMiddleware rejects clients over their request budget
func SecurityLoggingMiddleware(trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !detector.RecordRequest(extractIP(r, trustedProxies)) {
				metrics.RequestsRejected.WithLabelValues(metrics.RejectReasonRateLimit).Inc()
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractIP returns the client address. X-Forwarded-For is honoured only
// when the direct peer is a trusted proxy, and then only its last hop.
func extractIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}
	if !slices.Contains(trustedProxies, remoteIP) {
		return remoteIP
	}

	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return remoteIP
	}
	hops := strings.Split(forwarded, ",")
	return strings.TrimSpace(hops[len(hops)-1])
}

// SecurityHeadersMiddleware sets the standard hardening headers
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set(HeaderContentType, HeaderValueNoSniff)
			h.Set(HeaderFrameOptions, HeaderValueSameOrigin)
			h.Set(HeaderXSSProtection, HeaderValueXSSBlock)
			h.Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)
			next.ServeHTTP(w, r)
		})
	}
}
