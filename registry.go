package fieldmap

import (
	"reflect"
	"sync"
)

// registryKey combines the type pair and resolved config for cache lookup.
// source is nil for dynamic engines, which hold plans for any source type.
type registryKey struct {
	source reflect.Type
	target reflect.Type
	cfg    config
}

var (
	registry   = make(map[registryKey]any)
	registryMu sync.RWMutex
)

// Use returns a cached mapper or builds a new one.
// The mapper is cached by source type, target type and options.
func Use[S, R any](opts ...Option) (*Mapper[S, R], error) {
	cfg := resolveConfig(opts)
	key := registryKey{
		source: reflect.TypeFor[S](),
		target: reflect.TypeFor[R](),
		cfg:    cfg,
	}

	cached, err := lookupOrBuild(key, func() (any, error) {
		return newMapper[S, R](cfg)
	})
	if err != nil {
		return nil, err
	}
	return cached.(*Mapper[S, R]), nil
}

// useEngine returns the cached dynamic engine for a target type.
func useEngine(target reflect.Type, cfg config) (*engine, error) {
	if target == nil {
		return nil, newConfigError(ErrInvalidArgument, "", "nil target type")
	}

	key := registryKey{target: target, cfg: cfg}
	cached, err := lookupOrBuild(key, func() (any, error) {
		return newEngine(target, cfg)
	})
	if err != nil {
		return nil, err
	}
	return cached.(*engine), nil
}

func lookupOrBuild(key registryKey, build func() (any, error)) (any, error) {
	// Fast path: read-lock cache check
	registryMu.RLock()
	if cached, ok := registry[key]; ok {
		registryMu.RUnlock()
		return cached, nil
	}
	registryMu.RUnlock()

	// Slow path: build and cache with write-lock
	registryMu.Lock()
	defer registryMu.Unlock()

	// Double-check pattern
	if cached, ok := registry[key]; ok {
		return cached, nil
	}

	built, err := build()
	if err != nil {
		return nil, err
	}

	registry[key] = built
	return built, nil
}

// Reset clears the mapper registry.
// This is primarily useful for test isolation.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[registryKey]any)
}
