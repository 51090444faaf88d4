package security

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/rbenitez/repo-code-empathizer/internal/types"
)

// SecurityConfig holds security configuration.
type SecurityConfig struct {
	MaxRefLength      int           `json:"max_ref_length"`
	MaxRequestsPerMin int           `json:"max_requests_per_min"`
	AllowedOrigins    []string      `json:"allowed_origins"`
	TrustedProxies    []string      `json:"trusted_proxies"`
	RequestTimeout    time.Duration `json:"request_timeout"`
}

// DefaultSecurityConfig returns secure defaults.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		MaxRefLength:      200,
		MaxRequestsPerMin: 60,
		AllowedOrigins:    []string{"http://localhost:3000", "http://localhost:5173"},
		TrustedProxies:    []string{"127.0.0.1", "::1", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"},
		RequestTimeout:    30 * time.Second,
	}
}

// SecurityMiddleware bundles request validation and per-IP rate limiting.
type SecurityMiddleware struct {
	config     SecurityConfig
	ipLimiters map[string]*rate.Limiter
	limiterMu  sync.Mutex
	onBlock    func()
}

// NewSecurityMiddleware creates a new security middleware instance.
func NewSecurityMiddleware(config SecurityConfig) *SecurityMiddleware {
	return &SecurityMiddleware{
		config:     config,
		ipLimiters: make(map[string]*rate.Limiter),
	}
}

// OnRateLimitBlock registers a callback fired whenever an IP is throttled.
func (sm *SecurityMiddleware) OnRateLimitBlock(fn func()) {
	sm.onBlock = fn
}

var repoRefPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*[a-zA-Z0-9]$|^[a-zA-Z0-9]$`)

// ValidateRepoRef validates an owner or repository path segment.
func (sm *SecurityMiddleware) ValidateRepoRef(ref string) error {
	if ref == "" {
		return fmt.Errorf("empty repository reference")
	}

	if len(ref) > sm.config.MaxRefLength {
		return fmt.Errorf("reference exceeds maximum length of %d characters", sm.config.MaxRefLength)
	}

	if strings.Contains(ref, "..") || strings.Contains(ref, "--") {
		return fmt.Errorf("invalid repository reference format")
	}

	if !repoRefPattern.MatchString(ref) {
		return fmt.Errorf("invalid repository reference format")
	}

	return nil
}

// RateLimitByIP implements per-IP rate limiting.
func (sm *SecurityMiddleware) RateLimitByIP(c *gin.Context) {
	clientIP := c.ClientIP()

	sm.limiterMu.Lock()
	limiter, exists := sm.ipLimiters[clientIP]
	if !exists {
		rps := rate.Limit(float64(sm.config.MaxRequestsPerMin) / 60.0)
		burst := sm.config.MaxRequestsPerMin / 2
		if burst < 5 {
			burst = 5
		}
		limiter = rate.NewLimiter(rps, burst)
		sm.ipLimiters[clientIP] = limiter
	}
	sm.limiterMu.Unlock()

	if !limiter.Allow() {
		if sm.onBlock != nil {
			sm.onBlock()
		}
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":       "rate limit exceeded for IP",
			"retry_after": "60",
		})
		c.Abort()
		return
	}

	c.Next()
}

// ValidateContentType rejects payloads that are not JSON or form-encoded.
func (sm *SecurityMiddleware) ValidateContentType(c *gin.Context) {
	contentType := c.GetHeader("Content-Type")

	allowedTypes := []string{
		"application/json",
		"application/x-www-form-urlencoded",
	}

	if contentType != "" {
		found := false
		for _, allowed := range allowedTypes {
			if strings.Contains(strings.ToLower(contentType), allowed) {
				found = true
				break
			}
		}

		if !found {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{
				"error": "unsupported content type",
			})
			c.Abort()
			return
		}
	}

	c.Next()
}

// RequestTimeout enforces a deadline on every request.
func (sm *SecurityMiddleware) RequestTimeout(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), sm.config.RequestTimeout)
	defer cancel()

	c.Request = c.Request.WithContext(ctx)
	c.Header("X-Timeout", strconv.Itoa(int(sm.config.RequestTimeout.Seconds())))

	c.Next()
}

// ValidateCompareRequest binds and validates the comparison payload.
func (sm *SecurityMiddleware) ValidateCompareRequest(c *gin.Context) {
	var req types.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid JSON format",
		})
		c.Abort()
		return
	}

	if req.Empresa == nil || req.Candidato == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "empresa and candidato reports are required",
		})
		c.Abort()
		return
	}

	c.Set("compare_request", &req)
	c.Next()
}

// Cleanup periodically drops idle rate limiters.
func (sm *SecurityMiddleware) Cleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	go func() {
		for range ticker.C {
			sm.limiterMu.Lock()
			if len(sm.ipLimiters) > 10000 {
				sm.ipLimiters = make(map[string]*rate.Limiter)
			}
			sm.limiterMu.Unlock()
		}
	}()
}
