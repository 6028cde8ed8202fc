package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"atoll/shared"
	"atoll/shared/cache"
	"atoll/shared/constant"
	"atoll/transport/http/response"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	cacheKeyRateLimit = "limiter"
)

// RateLimit counts requests per client in redis over a fixed window. While redis is
// unreachable every client falls back to an in-process token bucket of the same rate.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !a.config.App.RateLimiter.Enable {
				next.ServeHTTP(w, r)

				return
			}

			maxReqs := a.config.App.RateLimiter.MaxRequests
			windowSecs := max(1, a.config.App.RateLimiter.WindowSeconds)

			clientIP := a.getClientIP(r)
			cacheKey := shared.BuildCacheKey(cacheKeyRateLimit, clientIP, a.getUA(r))

			var count int

			err := a.cache.Get(r.Context(), cacheKey, &count)

			switch {
			case err == nil:
				count++
			case errors.Is(err, cache.Nil):
				count = 1
			default:
				a.fallback(w, r, next, clientIP, maxReqs, windowSecs)

				return
			}

			if count > maxReqs {
				response.WithRequestLimitExceeded(w)

				return
			}

			if err = a.cache.Save(r.Context(), cacheKey, count, windowSecs); err != nil {
				a.fallback(w, r, next, clientIP, maxReqs, windowSecs)

				return
			}

			setRateLimitHeaders(w, maxReqs, maxReqs-count, windowSecs)

			next.ServeHTTP(w, r)
		})
	}
}

func (a *appMiddleware) fallback(w http.ResponseWriter, r *http.Request, next http.Handler, clientIP string, maxReqs, windowSecs int) {
	value, _ := a.limiters.LoadOrStore(clientIP, rate.NewLimiter(rate.Limit(float64(maxReqs)/float64(windowSecs)), max(1, maxReqs)))
	limiter, _ := value.(*rate.Limiter)

	if !limiter.Allow() {
		log.Warn().Str("client", clientIP).Msg("rate limit exceeded (local limiter)")
		response.WithRequestLimitExceeded(w)

		return
	}

	setRateLimitHeaders(w, maxReqs, int(limiter.Tokens()), windowSecs)

	next.ServeHTTP(w, r)
}

func setRateLimitHeaders(w http.ResponseWriter, limit, remaining, window int) {
	w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(limit))
	w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, remaining)))
	w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(window))
}

func (a *appMiddleware) getUA(r *http.Request) string {
	ua := r.Header.Get(constant.RequestHeaderUserAgent)
	if ua == "" {
		ua = "unknown"
	}

	return ua
}

func (a *appMiddleware) getClientIP(r *http.Request) string {
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")

		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get(constant.RequestHeaderRealIP); xri != "" {
		return strings.TrimSpace(xri)
	}

	host, _, found := strings.Cut(r.RemoteAddr, ":")
	if !found || strings.Count(r.RemoteAddr, ":") > 1 {
		return r.RemoteAddr
	}

	return host
}
