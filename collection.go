package fieldmap

import (
	"context"
	"fmt"
	"reflect"
	"time"
)

// Operation names reported with batch signals.
const (
	opSlice = "slice"
	opSet   = "set"
	opRange = "range"
)

// MapSlice maps every element of srcs in order. Duplicates are kept, so with
// BatchFailFast the result has exactly one element per input.
//
// Under BatchFailFast the first failure aborts the call with an *ElementError.
// Under BatchSkipFailed failing elements are dropped and the error is nil.
func (m *Mapper[S, R]) MapSlice(ctx context.Context, srcs []S, fix ...Correction[S, R]) ([]R, error) {
	return m.collect(ctx, opSlice, srcs, 0, fix)
}

// MapRange maps the half-open window srcs[skip:limit].
//
// An out-of-range window is not an error: the result is empty when srcs is
// empty, skip > len(srcs), limit < skip, limit < 0, or skip == limit.
// Otherwise a negative skip is raised to 0 and limit is clamped to len(srcs).
func (m *Mapper[S, R]) MapRange(ctx context.Context, srcs []S, skip, limit int, fix ...Correction[S, R]) ([]R, error) {
	lo, hi, ok := window(len(srcs), skip, limit)
	if !ok {
		return []R{}, nil
	}
	return m.collect(ctx, opRange, srcs[lo:hi], lo, fix)
}

// MapFrom maps srcs[skip:], following the MapRange window rules.
func (m *Mapper[S, R]) MapFrom(ctx context.Context, srcs []S, skip int, fix ...Correction[S, R]) ([]R, error) {
	return m.MapRange(ctx, srcs, skip, len(srcs), fix...)
}

// MapSet maps srcs and collapses targets that are equal under R's equality.
//
// Equality comes from Identifier when R or *R implements it, otherwise from
// == on R. A target type that supports neither fails with ErrNotComparable,
// as does a target whose key holds a slice, map or func inside an interface.
func (m *Mapper[S, R]) MapSet(ctx context.Context, srcs []S, fix ...Correction[S, R]) (*Set[R], error) {
	key, err := identityFor[R]()
	if err != nil {
		return nil, err
	}

	items, err := m.collect(ctx, opSet, srcs, 0, fix)
	if err != nil {
		return nil, err
	}

	set := newSet(key, len(items))
	for _, item := range items {
		if _, err := set.insert(item); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// collect runs mapOne over srcs. offset shifts reported indices so they refer
// to the caller's original slice.
func (m *Mapper[S, R]) collect(ctx context.Context, op string, srcs []S, offset int, fix []Correction[S, R]) ([]R, error) {
	start := time.Now()
	emitBatchStart(ctx, op, m.sourceName, m.targetName, len(srcs))

	out := make([]R, 0, len(srcs))
	var retErr error
	defer func() {
		emitBatchComplete(ctx, op, m.sourceName, m.targetName, time.Since(start), len(srcs), len(out), retErr)
	}()

	for i, src := range srcs {
		dst, _, err := m.mapOne(ctx, src, fix)
		if err != nil {
			elemErr := &ElementError{Index: offset + i, Err: err}
			if m.engine.cfg.batch == BatchSkipFailed {
				emitElementSkipped(ctx, m.sourceName, m.targetName, offset+i, err)
				continue
			}
			retErr = elemErr
			return nil, retErr
		}
		out = append(out, *dst)
	}

	return out, nil
}

// window resolves skip and limit into slice bounds.
func window(size, skip, limit int) (lo, hi int, ok bool) {
	if size == 0 || skip > size || limit < skip || limit < 0 || skip == limit {
		return 0, 0, false
	}
	if limit > size {
		limit = size
	}
	if skip < 0 {
		skip = 0
	}
	return skip, limit, true
}

// Set is the result of MapSet: mapped targets with duplicates collapsed.
// Values keeps insertion order, but callers should treat the order as unspecified.
type Set[R any] struct {
	key   func(*R) any
	index map[any]int
	items []R
}

func newSet[R any](key func(*R) any, capacity int) *Set[R] {
	return &Set[R]{
		key:   key,
		index: make(map[any]int, capacity),
		items: make([]R, 0, capacity),
	}
}

// Add inserts v unless an equal value is present and reports whether it was added.
// A value whose key holds a slice, map or func in an interface is never added.
func (s *Set[R]) Add(v R) bool {
	added, err := s.insert(v)
	return added && err == nil
}

func (s *Set[R]) insert(v R) (bool, error) {
	k := s.key(&v)
	if !hashable(reflect.ValueOf(k)) {
		return false, newConfigError(ErrNotComparable, reflect.TypeFor[R]().String(),
			fmt.Sprintf("key holds an unhashable %T", k))
	}
	if _, ok := s.index[k]; ok {
		return false, nil
	}
	s.index[k] = len(s.items)
	s.items = append(s.items, v)
	return true, nil
}

// Contains reports whether a value equal to v is present.
func (s *Set[R]) Contains(v R) bool {
	k := s.key(&v)
	if !hashable(reflect.ValueOf(k)) {
		return false
	}
	_, ok := s.index[k]
	return ok
}

// Len returns the number of distinct values.
func (s *Set[R]) Len() int {
	return len(s.items)
}

// Values returns a copy of the distinct values.
func (s *Set[R]) Values() []R {
	out := make([]R, len(s.items))
	copy(out, s.items)
	return out
}

// hashable reports whether v can be used as a map key. Comparable types can
// still carry unhashable dynamic values inside interface fields.
func hashable(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Interface:
		return v.IsNil() || hashable(v.Elem())
	case reflect.Slice, reflect.Map, reflect.Func:
		return false
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if !hashable(v.Field(i)) {
				return false
			}
		}
		return true
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if !hashable(v.Index(i)) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// identityFor selects the equality used by Set[R].
func identityFor[R any]() (func(*R) any, error) {
	var zero R
	if _, ok := any(zero).(Identifier); ok {
		return func(r *R) any { return any(*r).(Identifier).Identity() }, nil
	}
	if _, ok := any(&zero).(Identifier); ok {
		return func(r *R) any { return any(r).(Identifier).Identity() }, nil
	}

	rt := reflect.TypeFor[R]()
	if rt.Comparable() {
		return func(r *R) any { return *r }, nil
	}
	return nil, newConfigError(ErrNotComparable, rt.String(), "implement Identifier or use a comparable type")
}
