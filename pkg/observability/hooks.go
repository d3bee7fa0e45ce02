// Package observability provides hooks for metrics, tracing, and logging.
//
// The solver pipeline and the cache layer emit events through hook
// interfaces with no-op defaults, so instrumentation backends can be
// plugged in at startup without adding hard dependencies to the library:
//
//	func main() {
//	    observability.SetSolverHooks(&myPrometheusHooks{})
//	    // ... run application
//	}
//
// Hooks are registered by the main package, never by libraries, which
// avoids import cycles and keeps the core dependency-free from
// observability frameworks.
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Solver Hooks
// =============================================================================

// SolverHooks receives events from the decomposition pipeline.
type SolverHooks interface {
	// OnSolveStart fires before the first iteration.
	OnSolveStart(ctx context.Context, graphHash string, vertexCount, edgeCount int)

	// OnIterationComplete fires after every completed iteration.
	OnIterationComplete(ctx context.Context, iteration, maxBagSize int, improved bool)

	// OnSolveComplete fires when the run ends, successfully or not.
	OnSolveComplete(ctx context.Context, graphHash string, maxBagSize int, duration time.Duration, err error)
}

// NoopSolverHooks is the default no-op implementation.
type NoopSolverHooks struct{}

func (NoopSolverHooks) OnSolveStart(context.Context, string, int, int)                     {}
func (NoopSolverHooks) OnIterationComplete(context.Context, int, int, bool)                {}
func (NoopSolverHooks) OnSolveComplete(context.Context, string, int, time.Duration, error) {}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from the cache layer.
type CacheHooks interface {
	OnHit(ctx context.Context, key string)
	OnMiss(ctx context.Context, key string)
	OnSet(ctx context.Context, key string, size int)
}

// NoopCacheHooks is the default no-op implementation.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnHit(context.Context, string)      {}
func (NoopCacheHooks) OnMiss(context.Context, string)     {}
func (NoopCacheHooks) OnSet(context.Context, string, int) {}

// =============================================================================
// Registry
// =============================================================================

var (
	mu          sync.RWMutex
	solverHooks SolverHooks = NoopSolverHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
)

// SetSolverHooks registers the solver hook implementation. Call at
// startup before running pipelines.
func SetSolverHooks(h SolverHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = NoopSolverHooks{}
	}
	solverHooks = h
}

// Solver returns the registered solver hooks.
func Solver() SolverHooks {
	mu.RLock()
	defer mu.RUnlock()
	return solverHooks
}

// SetCacheHooks registers the cache hook implementation.
func SetCacheHooks(h CacheHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = NoopCacheHooks{}
	}
	cacheHooks = h
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	mu.RLock()
	defer mu.RUnlock()
	return cacheHooks
}
