// Package fieldmap builds new struct values from existing ones by copying
// fields that share a name.
//
// A Mapper[S, R] allocates a fresh R for every source value, copies each
// exported field of S into the same-named field of R, then runs any
// corrections the caller supplied. Fields promoted from embedded structs take
// part as well, so an embedded base struct plays the role of a superclass.
//
// # Basic Usage
//
//	type Student struct {
//	    UserName string
//	    Age      int
//	    Sex      string
//	}
//
//	type Man struct {
//	    UserName string
//	    Age      string
//	    Gender   string
//	}
//
//	man, err := fieldmap.Map[Man](ctx, student, func(s Student, m *Man) {
//	    m.Gender = s.Sex
//	    m.Age = strconv.Itoa(s.Age)
//	})
//
// UserName is copied automatically. Age is skipped because int is not
// assignable to string; the correction fills it in together with Gender.
//
// # Collections
//
//	men, err := mapper.MapSlice(ctx, students)          // order and duplicates kept
//	page, err := mapper.MapRange(ctx, students, 10, 20) // students[10:20]
//	set, err := mapper.MapSet(ctx, students)            // duplicates collapsed
//
// Range bounds never fail: a window outside the input yields an empty slice.
//
// # Policies
//
// Options select between the lenient and strict behaviours:
//
//   - WithMatch(MatchNameAndType) requires identical field types.
//   - WithMismatch(MismatchFail) fails when a source field has no target.
//   - WithBatch(BatchSkipFailed) drops failing elements instead of aborting.
//   - WithoutAncestors() ignores fields promoted from embedded structs.
//
// # Excluded Fields
//
// Unexported fields, blank (_) fields, fields tagged `map:"-"` and the
// encoding/xml XMLName marker are never copied.
//
// # Encoding
//
// An Encoder pairs a Mapper with a Codec and returns the encoded result:
//
//	enc := fieldmap.NewEncoder(mapper, json.New())
//	data, err := enc.MapSlice(ctx, students)
//
// Codec implementations are available as subpackages:
//
//   - json - JSON encoding (application/json)
//   - xml - XML encoding (application/xml)
//   - yaml - YAML encoding (application/yaml)
//   - msgpack - MessagePack encoding (application/msgpack)
//   - bson - BSON encoding (application/bson)
package fieldmap

import "context"

// Map maps src into a new R using the default mapper for the pair.
func Map[R, S any](ctx context.Context, src S, fix ...Correction[S, R]) (*R, error) {
	m, err := Use[S, R]()
	if err != nil {
		return nil, err
	}
	return m.Map(ctx, src, fix...)
}

// MapSlice maps every element of srcs using the default mapper for the pair.
func MapSlice[R, S any](ctx context.Context, srcs []S, fix ...Correction[S, R]) ([]R, error) {
	m, err := Use[S, R]()
	if err != nil {
		return nil, err
	}
	return m.MapSlice(ctx, srcs, fix...)
}

// MapRange maps srcs[skip:limit] using the default mapper for the pair.
func MapRange[R, S any](ctx context.Context, srcs []S, skip, limit int, fix ...Correction[S, R]) ([]R, error) {
	m, err := Use[S, R]()
	if err != nil {
		return nil, err
	}
	return m.MapRange(ctx, srcs, skip, limit, fix...)
}

// MapFrom maps srcs[skip:] using the default mapper for the pair.
func MapFrom[R, S any](ctx context.Context, srcs []S, skip int, fix ...Correction[S, R]) ([]R, error) {
	m, err := Use[S, R]()
	if err != nil {
		return nil, err
	}
	return m.MapFrom(ctx, srcs, skip, fix...)
}

// MapSet maps srcs into a deduplicated set using the default mapper for the pair.
func MapSet[R, S any](ctx context.Context, srcs []S, fix ...Correction[S, R]) (*Set[R], error) {
	m, err := Use[S, R]()
	if err != nil {
		return nil, err
	}
	return m.MapSet(ctx, srcs, fix...)
}
