package fieldmap

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"
)

// Correction fixes up a freshly mapped target after automatic field copying.
// Use it for fields that differ by name or need a conversion.
type Correction[S, R any] func(src S, dst *R)

// engine holds the type-independent half of a mapper: the target descriptor
// and one copy plan per source type seen so far.
type engine struct {
	cfg    config
	target *Descriptor
	plans  sync.Map // reflect.Type -> *planEntry
}

// planEntry caches the outcome of buildPlan, including a strict-mode failure.
type planEntry struct {
	plan *copyPlan
	err  error
}

func newEngine(target reflect.Type, cfg config) (*engine, error) {
	if target == nil {
		return nil, newConfigError(ErrInvalidArgument, "", "nil target type")
	}
	if target.Kind() != reflect.Struct {
		return nil, newConfigError(ErrUninstantiable, target.String(), "target must be a struct type")
	}

	d, err := Describe(target)
	if err != nil {
		return nil, err
	}

	return &engine{cfg: cfg, target: d}, nil
}

// planFor returns the copy plan for a source type, building it once.
func (e *engine) planFor(ctx context.Context, src *Descriptor) (*copyPlan, error) {
	if cached, ok := e.plans.Load(src.Type); ok {
		entry := cached.(*planEntry)
		return entry.plan, entry.err
	}

	plan, err := buildPlan(src, e.target, e.cfg)
	actual, loaded := e.plans.LoadOrStore(src.Type, &planEntry{plan: plan, err: err})
	entry := actual.(*planEntry)
	if !loaded && entry.plan != nil {
		entry.plan.report(ctx)
	}
	return entry.plan, entry.err
}

// construct validates src, allocates a new target and copies the planned fields.
// The returned value is a pointer to the target.
func (e *engine) construct(ctx context.Context, src any) (reflect.Value, int, error) {
	sv, err := sourceValue(src)
	if err != nil {
		return reflect.Value{}, 0, err
	}

	sd, err := Describe(sv.Type())
	if err != nil {
		return reflect.Value{}, 0, err
	}

	out := reflect.New(e.target.Type)
	if in, ok := out.Interface().(Initializer); ok {
		if err := in.Init(); err != nil {
			return reflect.Value{}, 0, newMappingError(ErrUninstantiable, sd.Type.String(), e.target.Type.String(), "", err)
		}
	}

	plan, err := e.planFor(ctx, sd)
	if err != nil {
		return reflect.Value{}, 0, err
	}

	return out, plan.apply(sv, out.Elem()), nil
}

// sourceValue unwraps pointers and interfaces down to a struct value.
func sourceValue(src any) (reflect.Value, error) {
	rv := reflect.ValueOf(src)
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: source must not be nil", ErrInvalidArgument)
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return reflect.Value{}, fmt.Errorf("%w: source must not be nil", ErrInvalidArgument)
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: source %s is not a struct", ErrInvalidArgument, rv.Type())
	}
	return rv, nil
}

// Mapper copies same-named fields from values of type S into new values of type R.
//
// Mappers are safe for concurrent use. Copy plans are built once per source
// runtime type and reused, so S may be an interface type.
type Mapper[S, R any] struct {
	engine *engine

	// Type metadata
	sourceName string
	targetName string
}

// NewMapper creates a Mapper from S to R.
//
// R must be a struct type. When S is a struct or pointer to struct the copy
// plan is built immediately, so a MismatchFail configuration that can never
// succeed is reported here rather than on first use.
func NewMapper[S, R any](opts ...Option) (*Mapper[S, R], error) {
	return newMapper[S, R](resolveConfig(opts))
}

func newMapper[S, R any](cfg config) (*Mapper[S, R], error) {
	source := reflect.TypeFor[S]()
	target := reflect.TypeFor[R]()

	e, err := newEngine(target, cfg)
	if err != nil {
		return nil, err
	}

	st := source
	for st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	switch st.Kind() {
	case reflect.Struct:
		sd, err := Describe(st)
		if err != nil {
			return nil, err
		}
		if _, err := e.planFor(context.Background(), sd); err != nil {
			return nil, err
		}
	case reflect.Interface:
		// Plans are built per runtime type on first use.
	default:
		return nil, newConfigError(ErrInvalidArgument, source.String(), "source must be a struct type")
	}

	m := &Mapper[S, R]{
		engine:     e,
		sourceName: source.String(),
		targetName: target.String(),
	}

	emitMapperCreated(context.Background(), m.sourceName, m.targetName)
	return m, nil
}

// Map builds a new R from src.
//
// Same-named fields are copied first, then every correction runs in order,
// so a correction always wins over an automatic copy. On failure the result
// is nil and the error wraps ErrInvalidArgument, ErrUninstantiable or
// ErrFieldMismatch.
func (m *Mapper[S, R]) Map(ctx context.Context, src S, fix ...Correction[S, R]) (*R, error) {
	start := time.Now()
	emitMapStart(ctx, m.sourceName, m.targetName)

	var copied int
	var retErr error
	defer func() {
		emitMapComplete(ctx, m.sourceName, m.targetName, time.Since(start), copied, retErr)
	}()

	dst, n, err := m.mapOne(ctx, src, fix)
	if err != nil {
		retErr = err
		return nil, retErr
	}
	copied = n
	return dst, nil
}

// mapOne is Map without events; collection operations call it per element.
func (m *Mapper[S, R]) mapOne(ctx context.Context, src S, fix []Correction[S, R]) (*R, int, error) {
	out, copied, err := m.engine.construct(ctx, src)
	if err != nil {
		return nil, 0, err
	}

	dst := out.Interface().(*R)
	for _, f := range fix {
		if f != nil {
			f(src, dst)
		}
	}
	return dst, copied, nil
}

// MapTo maps src into a new value of the target type and returns a pointer to it.
//
// It is the untyped counterpart of Mapper.Map for callers that only hold a
// reflect.Type. fix may be nil; when set it receives src and the new pointer.
func MapTo(ctx context.Context, src any, target reflect.Type, fix func(src, dst any), opts ...Option) (any, error) {
	e, err := useEngine(target, resolveConfig(opts))
	if err != nil {
		return nil, err
	}

	targetName := e.target.Type.String()
	sourceName := fmt.Sprintf("%T", src)

	start := time.Now()
	emitMapStart(ctx, sourceName, targetName)

	var copied int
	var retErr error
	defer func() {
		emitMapComplete(ctx, sourceName, targetName, time.Since(start), copied, retErr)
	}()

	out, n, err := e.construct(ctx, src)
	if err != nil {
		retErr = err
		return nil, retErr
	}
	copied = n

	dst := out.Interface()
	if fix != nil {
		fix(src, dst)
	}
	return dst, nil
}
