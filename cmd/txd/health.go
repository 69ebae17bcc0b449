// health.go - health monitoring for the txd daemon: component checkers
// backed by the actual note pool, ledger and proving/verifying keys this
// process holds, not placeholder closures.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"shieldedtx/internal/core"
)

// HealthStatus represents the health status of a component.
type HealthStatus string

const (
	Healthy   HealthStatus = "healthy"
	Degraded  HealthStatus = "degraded"
	Unhealthy HealthStatus = "unhealthy"
)

// ComponentHealth represents the health of a specific component.
type ComponentHealth struct {
	Name      string        `json:"name"`
	Status    HealthStatus  `json:"status"`
	Message   string        `json:"message"`
	LastCheck time.Time     `json:"last_check"`
	Latency   time.Duration `json:"latency,omitempty"`
}

// SystemHealth represents the overall system health.
type SystemHealth struct {
	OverallStatus HealthStatus      `json:"overall_status"`
	Timestamp     time.Time         `json:"timestamp"`
	Components    []ComponentHealth `json:"components"`
	Uptime        time.Duration     `json:"uptime"`
	Version       string            `json:"version"`
}

// HealthChecker manages health checks for the daemon's components: the
// note pool, the ledger, and the loaded proving/verifying keys.
type HealthChecker struct {
	mu         sync.RWMutex
	components map[string]*ComponentHealth
	startTime  time.Time
	version    string
	checkers   map[string]func() error
}

// NewHealthChecker creates a new health checker.
func NewHealthChecker(version string) *HealthChecker {
	return &HealthChecker{
		components: make(map[string]*ComponentHealth),
		startTime:  time.Now(),
		version:    version,
		checkers:   make(map[string]func() error),
	}
}

// RegisterComponent registers a health check for a component.
func (hc *HealthChecker) RegisterComponent(name string, checker func() error) {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	hc.components[name] = &ComponentHealth{
		Name:      name,
		Status:    Healthy,
		Message:   "component registered",
		LastCheck: time.Now(),
	}
	hc.checkers[name] = checker
}

// CheckHealth runs every registered checker and returns the aggregate
// status.
func (hc *HealthChecker) CheckHealth() *SystemHealth {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	overallStatus := Healthy
	components := make([]ComponentHealth, 0, len(hc.components))

	for name, component := range hc.components {
		if checker, exists := hc.checkers[name]; exists {
			start := time.Now()
			err := checker()
			latency := time.Since(start)

			if err != nil {
				component.Status = Unhealthy
				component.Message = err.Error()
			} else {
				component.Status = Healthy
				component.Message = "OK"
			}

			component.LastCheck = time.Now()
			component.Latency = latency
		}

		if component.Status == Unhealthy {
			overallStatus = Unhealthy
		} else if component.Status == Degraded && overallStatus == Healthy {
			overallStatus = Degraded
		}

		components = append(components, *component)
	}

	return &SystemHealth{
		OverallStatus: overallStatus,
		Timestamp:     time.Now(),
		Components:    components,
		Uptime:        time.Since(hc.startTime),
		Version:       hc.version,
	}
}

// HealthCheckResponse is the response envelope served on /healthz.
type HealthCheckResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// CreateHealthResponse wraps a SystemHealth snapshot in the envelope.
func CreateHealthResponse(health *SystemHealth) *HealthCheckResponse {
	status := "success"
	message := "system is healthy"

	if health.OverallStatus == Unhealthy {
		status = "error"
		message = "system is unhealthy"
	} else if health.OverallStatus == Degraded {
		status = "warning"
		message = "system is degraded"
	}

	return &HealthCheckResponse{
		Status:  status,
		Message: message,
		Data:    health,
	}
}

// PoolIntegrityChecker walks every entry pool currently holds and confirms
// its reverse index agrees with its position, catching the kind of
// index/pool desync that would make Prove silently build witnesses against
// the wrong commitment.
func PoolIntegrityChecker(pool *core.Pool) func() error {
	return func() error {
		n := pool.Size()
		for i := 0; i < n; i++ {
			cm, err := pool.Get(i)
			if err != nil {
				return fmt.Errorf("pool slot %d: %w", i, err)
			}
			idx, err := pool.GetIndex(cm)
			if err != nil {
				return fmt.Errorf("pool slot %d: commitment has no reverse index: %w", i, err)
			}
			if idx != i {
				return fmt.Errorf("pool slot %d: reverse index points at %d", i, idx)
			}
		}
		return nil
	}
}

// LedgerWritableChecker confirms the directory the ledger is persisted to
// on shutdown still exists, so a deleted or unmounted data directory is
// surfaced before SIGTERM discovers it.
func LedgerWritableChecker(ledgerPath string) func() error {
	dir := filepath.Dir(ledgerPath)
	return func() error {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("ledger directory %s: %w", dir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("ledger path's parent %s is not a directory", dir)
		}
		return nil
	}
}

// KeysLoadedChecker confirms the façade's proving and verifying keys are
// loaded, i.e. that /prove and /verify would not fail closed.
func KeysLoadedChecker(facade *core.Facade) func() error {
	return func() error {
		if !facade.IsReady() {
			return fmt.Errorf("proving/verifying keys not loaded")
		}
		return nil
	}
}
