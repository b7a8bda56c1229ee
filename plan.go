package fieldmap

import (
	"context"
	"reflect"
)

// Reasons reported with SignalFieldUnmatched.
const (
	reasonMissing = "no target field"
	reasonType    = "type differs"
)

// fieldPlan pairs one source field with the target field it is copied into.
type fieldPlan struct {
	name string
	src  Field
	dst  Field
}

// unmatchedField records a source field the plan leaves uncopied.
type unmatchedField struct {
	name   string
	reason string
}

// copyPlan is the precomputed field correspondence for one
// (source type, target type) pair under one config.
type copyPlan struct {
	source    string
	target    string
	fields    []fieldPlan
	unmatched []unmatchedField
}

// buildPlan matches every source field against a name index of the target fields.
func buildPlan(src, dst *Descriptor, cfg config) (*copyPlan, error) {
	walk := !cfg.ownOnly

	targets := make(map[string]Field)
	for _, f := range dst.Fields(walk) {
		targets[f.Name] = f
	}

	plan := &copyPlan{
		source: src.Type.String(),
		target: dst.Type.String(),
	}

	for _, sf := range src.Fields(walk) {
		tf, ok := targets[sf.Name]
		if !ok {
			if cfg.mismatch == MismatchFail {
				return nil, newMappingError(ErrFieldMismatch, plan.source, plan.target, sf.Name, nil)
			}
			plan.unmatched = append(plan.unmatched, unmatchedField{name: sf.Name, reason: reasonMissing})
			continue
		}

		if !compatible(sf.Type, tf.Type, cfg.match) {
			plan.unmatched = append(plan.unmatched, unmatchedField{name: sf.Name, reason: reasonType})
			continue
		}

		plan.fields = append(plan.fields, fieldPlan{name: sf.Name, src: sf, dst: tf})
	}

	return plan, nil
}

// compatible reports whether a value of type from may be copied into a field of type to.
func compatible(from, to reflect.Type, m Match) bool {
	if m == MatchNameAndType {
		return from == to
	}
	return from.AssignableTo(to)
}

// apply copies every planned field from src into dst and returns the number
// of fields written. dst must be addressable.
func (p *copyPlan) apply(src, dst reflect.Value) int {
	copied := 0
	for _, fp := range p.fields {
		val, ok := fp.src.Get(src)
		if !ok {
			continue
		}
		if fp.dst.Set(dst, val) {
			copied++
		}
	}
	return copied
}

// report emits one SignalFieldUnmatched per uncopied source field.
func (p *copyPlan) report(ctx context.Context) {
	for _, u := range p.unmatched {
		emitFieldUnmatched(ctx, p.source, p.target, u.name, u.reason)
	}
}
