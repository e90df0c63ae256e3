// Package health provides health check functionality for a cpamm node.
//
// The checker reports on:
// - the committed store (height and read latency)
// - the pool (reserves against custodied balances)
// - module invariants (detailed checks only)
//
// Endpoints, served on the telemetry listener next to /metrics:
// - /health - Basic liveness check
// - /health/ready - Readiness check for load balancers
// - /health/detailed - Comprehensive status including invariants
package health

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"cosmossdk.io/log"
	"github.com/gorilla/mux"
	"github.com/sugawarayuuta/sonnet"

	"github.com/paw-chain/cpamm/app"
	pooltypes "github.com/paw-chain/cpamm/x/pool/types"
)

// Status represents the health status of a component
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// ComponentHealth represents the health status of a single component
type ComponentHealth struct {
	Status    Status                 `json:"status"`
	Message   string                 `json:"message,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Metrics   map[string]interface{} `json:"metrics,omitempty"`
}

// HealthCheck represents the overall health check response
type HealthCheck struct {
	Status     Status                     `json:"status"`
	Timestamp  time.Time                  `json:"timestamp"`
	Pair       string                     `json:"pair"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

// Node is the part of the application the checker inspects.
type Node interface {
	Pair() pooltypes.AssetPair
	LastBlockHeight() int64
	PoolStatus() (app.PoolStatus, error)
	CheckInvariants() error
}

var _ Node = (*app.App)(nil)

// Config holds configuration for the health checker
type Config struct {
	// MaxResponseTime is the store read latency above which the store is degraded
	MaxResponseTime time.Duration

	// CacheDuration is how long to cache health check results
	CacheDuration time.Duration
}

// DefaultConfig returns the default health check configuration
func DefaultConfig() Config {
	return Config{
		MaxResponseTime: time.Second,
		CacheDuration:   5 * time.Second,
	}
}

// Checker performs health checks on the node
type Checker struct {
	logger log.Logger
	node   Node
	cfg    Config

	mu           sync.RWMutex
	lastCheck    time.Time
	cachedHealth *HealthCheck
}

// NewChecker creates a new health checker
func NewChecker(logger log.Logger, node Node, cfg Config) *Checker {
	return &Checker{
		logger: logger.With("module", "health"),
		node:   node,
		cfg:    cfg,
	}
}

type check struct {
	name string
	fn   func(context.Context) ComponentHealth
}

// Check runs the component checks. Non-detailed results are cached for
// CacheDuration.
func (c *Checker) Check(ctx context.Context, detailed bool) *HealthCheck {
	if !detailed {
		if cached := c.cached(); cached != nil {
			return cached
		}
	}

	health := &HealthCheck{
		Timestamp:  time.Now(),
		Pair:       c.node.Pair().String(),
		Components: make(map[string]ComponentHealth),
	}

	checks := []check{
		{"store", c.checkStore},
		{"pool", c.checkPool},
	}
	if detailed {
		checks = append(checks, check{"invariants", c.checkInvariants})
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, chk := range checks {
		wg.Add(1)
		go func(chk check) {
			defer wg.Done()
			result := chk.fn(ctx)
			mu.Lock()
			health.Components[chk.name] = result
			mu.Unlock()
		}(chk)
	}
	wg.Wait()

	health.Status = calculateOverallStatus(health.Components)

	if !detailed {
		c.mu.Lock()
		c.lastCheck = time.Now()
		c.cachedHealth = health
		c.mu.Unlock()
	}
	return health
}

// checkStore verifies the store has been initialized and reads promptly
func (c *Checker) checkStore(_ context.Context) ComponentHealth {
	height := c.node.LastBlockHeight()
	if height == 0 {
		return ComponentHealth{
			Status:    StatusUnhealthy,
			Message:   "store has no committed state",
			Timestamp: time.Now(),
		}
	}

	start := time.Now()
	_, err := c.node.PoolStatus()
	duration := time.Since(start)
	if err != nil {
		return ComponentHealth{
			Status:    StatusUnhealthy,
			Message:   fmt.Sprintf("store read failed: %v", err),
			Timestamp: time.Now(),
		}
	}

	status := StatusHealthy
	message := "store is responsive"
	if duration > c.cfg.MaxResponseTime {
		status = StatusDegraded
		message = "store read time is degraded"
	}

	return ComponentHealth{
		Status:    status,
		Message:   message,
		Timestamp: time.Now(),
		Metrics: map[string]interface{}{
			"height":        height,
			"query_time_ms": duration.Milliseconds(),
		},
	}
}

// checkPool compares the recorded reserves with the custodied balances. A
// balance above its reserve is an unsynchronized donation and only degrades.
func (c *Checker) checkPool(_ context.Context) ComponentHealth {
	st, err := c.node.PoolStatus()
	if err != nil {
		return ComponentHealth{
			Status:    StatusUnhealthy,
			Message:   fmt.Sprintf("pool read failed: %v", err),
			Timestamp: time.Now(),
		}
	}

	reserves := st.Info.Reserves
	metrics := map[string]interface{}{
		"reserve_a":    reserves.ReserveA.String(),
		"reserve_b":    reserves.ReserveB.String(),
		"total_shares": st.Info.TotalShares.String(),
	}

	switch {
	case st.BalanceA.LT(reserves.ReserveA) || st.BalanceB.LT(reserves.ReserveB):
		return ComponentHealth{
			Status:    StatusUnhealthy,
			Message:   "custodied balances do not cover reserves",
			Timestamp: time.Now(),
			Metrics:   metrics,
		}
	case !st.BalanceA.Equal(reserves.ReserveA) || !st.BalanceB.Equal(reserves.ReserveB):
		metrics["unsynced_a"] = st.BalanceA.Sub(reserves.ReserveA).String()
		metrics["unsynced_b"] = st.BalanceB.Sub(reserves.ReserveB).String()
		return ComponentHealth{
			Status:    StatusDegraded,
			Message:   "pool holds balances not yet synced into reserves",
			Timestamp: time.Now(),
			Metrics:   metrics,
		}
	}

	message := "pool reserves are synced"
	if reserves.IsEmpty() {
		message = "pool has no liquidity"
	}
	return ComponentHealth{
		Status:    StatusHealthy,
		Message:   message,
		Timestamp: time.Now(),
		Metrics:   metrics,
	}
}

// checkInvariants runs every registered module invariant
func (c *Checker) checkInvariants(_ context.Context) ComponentHealth {
	if err := c.node.CheckInvariants(); err != nil {
		return ComponentHealth{
			Status:    StatusUnhealthy,
			Message:   err.Error(),
			Timestamp: time.Now(),
		}
	}
	return ComponentHealth{
		Status:    StatusHealthy,
		Message:   "all invariants hold",
		Timestamp: time.Now(),
	}
}

// calculateOverallStatus determines the overall health status based on component statuses
func calculateOverallStatus(components map[string]ComponentHealth) Status {
	hasUnhealthy := false
	hasDegraded := false

	for _, component := range components {
		switch component.Status {
		case StatusUnhealthy:
			hasUnhealthy = true
		case StatusDegraded:
			hasDegraded = true
		}
	}

	if hasUnhealthy {
		return StatusUnhealthy
	}
	if hasDegraded {
		return StatusDegraded
	}
	return StatusHealthy
}

func (c *Checker) cached() *HealthCheck {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.cachedHealth == nil || time.Since(c.lastCheck) >= c.cfg.CacheDuration {
		return nil
	}
	return c.cachedHealth
}

// RegisterRoutes registers health check endpoints on router
func (c *Checker) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", c.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", c.handleHealthReady).Methods(http.MethodGet)
	router.HandleFunc("/health/detailed", c.handleHealthDetailed).Methods(http.MethodGet)
}

// handleHealth handles the basic liveness check endpoint
func (c *Checker) handleHealth(w http.ResponseWriter, _ *http.Request) {
	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// handleHealthReady handles the readiness check endpoint. A degraded node is
// still ready.
func (c *Checker) handleHealthReady(w http.ResponseWriter, r *http.Request) {
	health := c.Check(r.Context(), false)

	statusCode := http.StatusOK
	if health.Status == StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}
	c.writeJSON(w, statusCode, health)
}

// handleHealthDetailed handles the detailed health check endpoint
func (c *Checker) handleHealthDetailed(w http.ResponseWriter, r *http.Request) {
	health := c.Check(r.Context(), true)

	statusCode := http.StatusOK
	if health.Status == StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}
	c.writeJSON(w, statusCode, health)
}

func (c *Checker) writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	bz, err := sonnet.Marshal(v)
	if err != nil {
		c.logger.Error("encode health response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(bz)
}
