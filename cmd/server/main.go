package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/rbenitez/repo-code-empathizer/internal/adapters"
	"github.com/rbenitez/repo-code-empathizer/internal/empathy"
	"github.com/rbenitez/repo-code-empathizer/internal/errors"
	"github.com/rbenitez/repo-code-empathizer/internal/monitoring"
	"github.com/rbenitez/repo-code-empathizer/internal/security"
	"github.com/rbenitez/repo-code-empathizer/internal/types"
)

const serviceVersion = "1.0.0"

// newRouter builds the full middleware chain and route table.
func newRouter(githubAdapter *adapters.GitHubAdapter, appMetrics *monitoring.Metrics, appLogger *monitoring.Logger) *gin.Engine {
	algorithm := empathy.New()

	securityConfig := security.DefaultSecurityConfig()
	securityMiddleware := security.NewSecurityMiddleware(securityConfig)
	securityMiddleware.OnRateLimitBlock(appMetrics.IncrementRateLimitIPBlock)
	securityMiddleware.Cleanup()

	r := gin.New()
	_ = r.SetTrustedProxies(securityConfig.TrustedProxies)

	r.Use(monitoring.RequestIDMiddleware())
	r.Use(monitoring.MonitoringMiddleware(appMetrics, appLogger))
	r.Use(monitoring.SecurityMonitoringMiddleware(appLogger))

	r.Use(errors.ErrorHandler())
	r.Use(errors.RecoveryHandler())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     securityConfig.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(security.SecurityHeadersMiddleware())
	r.Use(securityMiddleware.RequestTimeout)
	r.Use(securityMiddleware.ValidateContentType)
	r.Use(securityMiddleware.RateLimitByIP)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, types.HealthStatus{
			Status:    "ok",
			Version:   serviceVersion,
			Uptime:    time.Since(appMetrics.StartTime).String(),
			Timestamp: time.Now(),
		})
	})

	r.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, appMetrics.GetStats())
	})

	r.POST("/empathy", securityMiddleware.ValidateCompareRequest, func(c *gin.Context) {
		start := time.Now()

		value, _ := c.Get("compare_request")
		req := value.(*types.CompareRequest)

		result, err := algorithm.CalculateEmpathyScore(req.Empresa, req.Candidato)
		if err != nil {
			c.Error(errors.NewValidationError("comparison failed", err.Error()))
			c.Abort()
			return
		}

		duration := time.Since(start)
		requestID := c.GetString("request_id")

		appMetrics.RecordComparison(result.EmpathyScore)
		appLogger.ComparisonLogger(requestID, result.EmpathyScore, result.Interpretation.Level, result.LanguageOverlap.Score, duration)

		c.JSON(http.StatusOK, types.CompareResponse{
			Result:      result,
			RequestID:   requestID,
			ProcessedAt: time.Now(),
			DurationMS:  duration.Milliseconds(),
		})
	})

	r.GET("/repos/:owner/:repo/profile", func(c *gin.Context) {
		owner := c.Param("owner")
		repo := c.Param("repo")

		if err := securityMiddleware.ValidateRepoRef(owner); err != nil {
			c.Error(errors.NewValidationError("invalid owner", err.Error()))
			c.Abort()
			return
		}
		if err := securityMiddleware.ValidateRepoRef(repo); err != nil {
			c.Error(errors.NewValidationError("invalid repository", err.Error()))
			c.Abort()
			return
		}

		profile, err := githubAdapter.FetchRepoProfile(c.Request.Context(), owner, repo)
		if err != nil {
			c.Error(errors.NewExternalAPIError("GitHub", err))
			c.Abort()
			return
		}

		c.JSON(http.StatusOK, profile)
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	githubToken := os.Getenv("GITHUB_TOKEN")
	port := getEnvOrDefault("PORT", "8080")

	githubAdapter := adapters.NewGitHubAdapter(githubToken)

	appMetrics := monitoring.NewMetrics()
	appLogger := monitoring.NewLogger()

	githubAdapter.OnRequest(func(success bool) {
		appMetrics.IncrementGitHubCalls()
		appMetrics.RecordExternalAPIRequest("github", success)
		status := http.StatusOK
		if !success {
			status = http.StatusBadGateway
		}
		appLogger.ExternalAPILogger("GitHub", "GET", "api.github.com", status, 0, success)
	})
	githubAdapter.Breaker().OnStateChange(
		appMetrics.IncrementCircuitBreakerOpen,
		appMetrics.IncrementCircuitBreakerClose,
	)

	r := newRouter(githubAdapter, appMetrics, appLogger)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		slog.Info("Starting server", "port", port, "version", serviceVersion)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
