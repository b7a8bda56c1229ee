package fieldmap

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for mapping events.
var (
	SignalMapperCreated  = capitan.NewSignal("fieldmap.mapper.created", "Mapper instantiated")
	SignalMapStart       = capitan.NewSignal("fieldmap.map.start", "Single mapping beginning")
	SignalMapComplete    = capitan.NewSignal("fieldmap.map.complete", "Single mapping finished")
	SignalBatchStart     = capitan.NewSignal("fieldmap.batch.start", "Collection mapping beginning")
	SignalBatchComplete  = capitan.NewSignal("fieldmap.batch.complete", "Collection mapping finished")
	SignalFieldUnmatched = capitan.NewSignal("fieldmap.field.unmatched", "Source field left uncopied")
	SignalElementSkipped = capitan.NewSignal("fieldmap.element.skipped", "Failing element dropped from a collection")
	SignalEncodeComplete = capitan.NewSignal("fieldmap.encode.complete", "Mapping result encoded")
)

// Keys for typed event data.
var (
	KeySourceType  = capitan.NewStringKey("source_type")
	KeyTargetType  = capitan.NewStringKey("target_type")
	KeyOperation   = capitan.NewStringKey("operation")
	KeyField       = capitan.NewStringKey("field")
	KeyReason      = capitan.NewStringKey("reason")
	KeyContentType = capitan.NewStringKey("content_type")
	KeyCopiedCount = capitan.NewIntKey("copied_count")
	KeyInputCount  = capitan.NewIntKey("input_count")
	KeyOutputCount = capitan.NewIntKey("output_count")
	KeyIndex       = capitan.NewIntKey("index")
	KeySize        = capitan.NewIntKey("size")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyError       = capitan.NewErrorKey("error")
)

// emitMapperCreated emits an event when a mapper is created.
func emitMapperCreated(ctx context.Context, source, target string) {
	capitan.Emit(ctx, SignalMapperCreated,
		KeySourceType.Field(source),
		KeyTargetType.Field(target),
	)
}

// emitMapStart emits an event when a single mapping begins.
func emitMapStart(ctx context.Context, source, target string) {
	capitan.Emit(ctx, SignalMapStart,
		KeySourceType.Field(source),
		KeyTargetType.Field(target),
	)
}

// emitMapComplete emits an event when a single mapping finishes.
func emitMapComplete(ctx context.Context, source, target string, duration time.Duration, copied int, err error) {
	fields := []capitan.Field{
		KeySourceType.Field(source),
		KeyTargetType.Field(target),
		KeyDuration.Field(duration),
		KeyCopiedCount.Field(copied),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalMapComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalMapComplete, fields...)
	}
}

// emitBatchStart emits an event when a collection mapping begins.
func emitBatchStart(ctx context.Context, op, source, target string, inputs int) {
	capitan.Emit(ctx, SignalBatchStart,
		KeyOperation.Field(op),
		KeySourceType.Field(source),
		KeyTargetType.Field(target),
		KeyInputCount.Field(inputs),
	)
}

// emitBatchComplete emits an event when a collection mapping finishes.
func emitBatchComplete(ctx context.Context, op, source, target string, duration time.Duration, inputs, outputs int, err error) {
	fields := []capitan.Field{
		KeyOperation.Field(op),
		KeySourceType.Field(source),
		KeyTargetType.Field(target),
		KeyDuration.Field(duration),
		KeyInputCount.Field(inputs),
		KeyOutputCount.Field(outputs),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalBatchComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalBatchComplete, fields...)
	}
}

// emitFieldUnmatched emits an event for a source field the plan does not copy.
func emitFieldUnmatched(ctx context.Context, source, target, field, reason string) {
	capitan.Emit(ctx, SignalFieldUnmatched,
		KeySourceType.Field(source),
		KeyTargetType.Field(target),
		KeyField.Field(field),
		KeyReason.Field(reason),
	)
}

// emitElementSkipped emits an event when BatchSkipFailed drops an element.
func emitElementSkipped(ctx context.Context, source, target string, index int, err error) {
	capitan.Error(ctx, SignalElementSkipped,
		KeySourceType.Field(source),
		KeyTargetType.Field(target),
		KeyIndex.Field(index),
		KeyError.Field(err),
	)
}

// emitEncodeComplete emits an event when a result has been handed to a codec.
func emitEncodeComplete(ctx context.Context, contentType, target string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyTargetType.Field(target),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalEncodeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalEncodeComplete, fields...)
	}
}
