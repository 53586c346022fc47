package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	startTime = time.Now()

	healthCheckTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goldbank_health_check_total",
			Help: "Total number of health check requests",
		},
		[]string{"endpoint", "status"},
	)

	healthCheckDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "goldbank_health_check_duration_seconds",
			Help:    "Health check request duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"endpoint"},
	)

	serviceHealthy = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "goldbank_service_healthy",
			Help: "1 if service is healthy, 0 if unhealthy",
		},
		[]string{"service"},
	)
)

// VaultHealthChecker reports the liveness of the vault's collaborators and
// its custody state.
type VaultHealthChecker interface {
	CheckNativeFeed() error
	CheckTokenFeed() error
	IsPaused() bool
	VaultStatus() VaultStatus
}

// VaultStatus is a snapshot of the vault's custody and activity counters.
type VaultStatus struct {
	NativePool         string `json:"native_pool"`
	TokenPool          string `json:"token_pool"`
	AggregateLiability string `json:"aggregate_liability"`
	Deposits           uint64 `json:"deposits"`
	Withdrawals        uint64 `json:"withdrawals"`
}

// HealthCheck represents the health check server
type HealthCheck struct {
	server  *http.Server
	checker VaultHealthChecker
}

// BasicHealthResponse is the response for /health
type BasicHealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// ReadinessResponse is the response for /health/ready
type ReadinessResponse struct {
	Status string                 `json:"status"`
	Checks map[string]CheckResult `json:"checks"`
}

// DetailedHealthResponse is the response for /health/detailed
type DetailedHealthResponse struct {
	Status        string                 `json:"status"`
	UptimeSeconds int64                  `json:"uptime_seconds"`
	Version       string                 `json:"version"`
	Checks        map[string]CheckResult `json:"checks"`
	Vault         VaultStatus            `json:"vault"`
	System        SystemHealth           `json:"system"`
}

// CheckResult represents a single health check result
type CheckResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// SystemHealth represents system-level health metrics
type SystemHealth struct {
	MemoryMB   uint64 `json:"memory_mb"`
	Goroutines int    `json:"goroutines"`
}

// StartHealthCheckServer starts the health check HTTP server
func StartHealthCheckServer(port int, checker VaultHealthChecker) *HealthCheck {
	hc := &HealthCheck{checker: checker}

	mux := http.NewServeMux()

	// Use middleware wrapper to avoid counting health checks in regular metrics
	mux.HandleFunc("/health", hc.withHealthMetrics("health", hc.handleBasicHealth))
	mux.HandleFunc("/health/ready", hc.withHealthMetrics("ready", hc.handleReadiness))
	mux.HandleFunc("/health/detailed", hc.withHealthMetrics("detailed", hc.handleDetailed))

	hc.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	go func() {
		if err := hc.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("health check server error: %v\n", err)
		}
	}()

	return hc
}

// withHealthMetrics wraps health check handlers with metrics
func (hc *HealthCheck) withHealthMetrics(endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		handler(rw, r)

		duration := time.Since(start)
		status := fmt.Sprintf("%d", rw.statusCode)

		healthCheckTotal.WithLabelValues(endpoint, status).Inc()
		healthCheckDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// handleBasicHealth handles GET /health - always returns 200 if process is alive
func (hc *HealthCheck) handleBasicHealth(w http.ResponseWriter, r *http.Request) {
	response := BasicHealthResponse{
		Status:    "ok",
		Timestamp: time.Now().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// handleReadiness handles GET /health/ready - checks if the vault can serve
// price-dependent operations
func (hc *HealthCheck) handleReadiness(w http.ResponseWriter, r *http.Request) {
	checks, allHealthy := hc.runChecks()

	status := "ready"
	statusCode := http.StatusOK
	if !allHealthy {
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	response := ReadinessResponse{
		Status: status,
		Checks: checks,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}

// handleDetailed handles GET /health/detailed - comprehensive health information
func (hc *HealthCheck) handleDetailed(w http.ResponseWriter, r *http.Request) {
	checks, allHealthy := hc.runChecks()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	status := "healthy"
	if !allHealthy {
		status = "degraded"
	}

	response := &DetailedHealthResponse{
		Status:        status,
		UptimeSeconds: int64(time.Since(startTime).Seconds()),
		Version:       getVersion(),
		Checks:        checks,
		Vault:         hc.checker.VaultStatus(),
		System: SystemHealth{
			MemoryMB:   m.Alloc / 1024 / 1024,
			Goroutines: runtime.NumGoroutine(),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

func (hc *HealthCheck) runChecks() (map[string]CheckResult, bool) {
	checks := make(map[string]CheckResult)
	allHealthy := true

	if hc.checker == nil {
		return checks, allHealthy
	}

	if err := hc.checker.CheckNativeFeed(); err != nil {
		checks["native_feed"] = CheckResult{Status: "unhealthy", Message: err.Error()}
		allHealthy = false
		serviceHealthy.WithLabelValues("native_feed").Set(0)
	} else {
		checks["native_feed"] = CheckResult{Status: "ok"}
		serviceHealthy.WithLabelValues("native_feed").Set(1)
	}

	if err := hc.checker.CheckTokenFeed(); err != nil {
		checks["token_feed"] = CheckResult{Status: "unhealthy", Message: err.Error()}
		allHealthy = false
		serviceHealthy.WithLabelValues("token_feed").Set(0)
	} else {
		checks["token_feed"] = CheckResult{Status: "ok"}
		serviceHealthy.WithLabelValues("token_feed").Set(1)
	}

	// a paused vault is alive but not serving mutations
	if hc.checker.IsPaused() {
		checks["vault"] = CheckResult{Status: "paused"}
		allHealthy = false
		serviceHealthy.WithLabelValues("vault").Set(0)
	} else {
		checks["vault"] = CheckResult{Status: "ok"}
		serviceHealthy.WithLabelValues("vault").Set(1)
	}

	return checks, allHealthy
}

// Shutdown gracefully shuts down the health check server
func (hc *HealthCheck) Shutdown(ctx context.Context) error {
	if hc.server != nil {
		return hc.server.Shutdown(ctx)
	}
	return nil
}

func getVersion() string {
	if version := os.Getenv("GOLDBANK_VERSION"); version != "" {
		return version
	}
	return "dev"
}
