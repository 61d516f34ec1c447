// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about pivot builds, node cache usage, and rendering.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the pivot packages never
// import a metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPivotHooks(&myPivotHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pivot().OnBuildStart(ctx, sessionID, len(records))
//	// ... build trees ...
//	observability.Pivot().OnBuildComplete(ctx, sessionID, nodeCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pivot Hooks
// =============================================================================

// PivotHooks receives events from pivot sessions.
type PivotHooks interface {
	// Tree building
	OnBuildStart(ctx context.Context, session string, records int)
	OnBuildComplete(ctx context.Context, session string, nodes int, duration time.Duration, err error)

	// Flattening into a matrix
	OnFlattenComplete(ctx context.Context, session string, rows, columns int, duration time.Duration)

	// OnToggle records an expand/collapse request.
	OnToggle(ctx context.Context, session, nodeID string, expanded bool, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from node caches.
type CacheHooks interface {
	// OnCacheStats reports cumulative counters after a rebuild.
	OnCacheStats(ctx context.Context, session string, hits, misses, entries int)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from matrix and tree renderers.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPivotHooks is a no-op implementation of PivotHooks.
type NoopPivotHooks struct{}

func (NoopPivotHooks) OnBuildStart(context.Context, string, int)                          {}
func (NoopPivotHooks) OnBuildComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPivotHooks) OnFlattenComplete(context.Context, string, int, int, time.Duration) {}
func (NoopPivotHooks) OnToggle(context.Context, string, string, bool, error)              {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheStats(context.Context, string, int, int, int) {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string)                              {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pivotHooks  PivotHooks  = NoopPivotHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	renderHooks RenderHooks = NoopRenderHooks{}
	hooksMu     sync.RWMutex
)

// SetPivotHooks registers custom pivot hooks.
// This should be called once at application startup before any session is built.
func SetPivotHooks(h PivotHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pivotHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Pivot returns the registered pivot hooks.
func Pivot() PivotHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pivotHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pivotHooks = NoopPivotHooks{}
	cacheHooks = NoopCacheHooks{}
	renderHooks = NoopRenderHooks{}
}
