package fieldmap

import (
	"context"
	"time"
)

// Encoder runs a Mapper and hands every result to a Codec.
// Each method mirrors the Mapper method of the same name; mapping errors are
// returned unchanged and codec failures wrap ErrMarshal in a *CodecError.
type Encoder[S, R any] struct {
	mapper *Mapper[S, R]
	codec  Codec
}

// NewEncoder pairs a mapper with a codec.
func NewEncoder[S, R any](m *Mapper[S, R], codec Codec) *Encoder[S, R] {
	return &Encoder[S, R]{mapper: m, codec: codec}
}

// ContentType returns the content type of the underlying codec.
func (e *Encoder[S, R]) ContentType() string {
	return e.codec.ContentType()
}

// Map encodes the result of Mapper.Map.
func (e *Encoder[S, R]) Map(ctx context.Context, src S, fix ...Correction[S, R]) ([]byte, error) {
	dst, err := e.mapper.Map(ctx, src, fix...)
	if err != nil {
		return nil, err
	}
	return e.marshal(ctx, dst)
}

// MapSlice encodes the result of Mapper.MapSlice as a list.
func (e *Encoder[S, R]) MapSlice(ctx context.Context, srcs []S, fix ...Correction[S, R]) ([]byte, error) {
	out, err := e.mapper.MapSlice(ctx, srcs, fix...)
	if err != nil {
		return nil, err
	}
	return e.marshal(ctx, out)
}

// MapRange encodes the result of Mapper.MapRange as a list.
func (e *Encoder[S, R]) MapRange(ctx context.Context, srcs []S, skip, limit int, fix ...Correction[S, R]) ([]byte, error) {
	out, err := e.mapper.MapRange(ctx, srcs, skip, limit, fix...)
	if err != nil {
		return nil, err
	}
	return e.marshal(ctx, out)
}

// MapFrom encodes the result of Mapper.MapFrom as a list.
func (e *Encoder[S, R]) MapFrom(ctx context.Context, srcs []S, skip int, fix ...Correction[S, R]) ([]byte, error) {
	out, err := e.mapper.MapFrom(ctx, srcs, skip, fix...)
	if err != nil {
		return nil, err
	}
	return e.marshal(ctx, out)
}

// MapSet encodes the values of Mapper.MapSet as a list.
func (e *Encoder[S, R]) MapSet(ctx context.Context, srcs []S, fix ...Correction[S, R]) ([]byte, error) {
	set, err := e.mapper.MapSet(ctx, srcs, fix...)
	if err != nil {
		return nil, err
	}
	return e.marshal(ctx, set.Values())
}

func (e *Encoder[S, R]) marshal(ctx context.Context, v any) ([]byte, error) {
	start := time.Now()

	data, err := e.codec.Marshal(v)
	if err != nil {
		err = newCodecError(e.codec.ContentType(), err)
	}

	emitEncodeComplete(ctx, e.codec.ContentType(), e.mapper.targetName, len(data), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return data, nil
}
