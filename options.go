package fieldmap

// Match selects how a source field and a target field are paired.
type Match int

const (
	// MatchName pairs fields by name and copies when the source type is
	// assignable to the target type.
	MatchName Match = iota

	// MatchNameAndType pairs fields by name and requires identical declared types.
	MatchNameAndType
)

// Mismatch selects what happens when a source field has no same-named target field.
type Mismatch int

const (
	// MismatchSkip ignores the source field.
	MismatchSkip Mismatch = iota

	// MismatchFail aborts the call with ErrFieldMismatch.
	MismatchFail
)

// Batch selects how collection mappings treat a failing element.
type Batch int

const (
	// BatchFailFast stops at the first failing element and returns its error.
	BatchFailFast Batch = iota

	// BatchSkipFailed drops failing elements and keeps going.
	BatchSkipFailed
)

func (m Match) String() string {
	if m == MatchNameAndType {
		return "name+type"
	}
	return "name"
}

func (m Mismatch) String() string {
	if m == MismatchFail {
		return "fail"
	}
	return "skip"
}

func (b Batch) String() string {
	if b == BatchSkipFailed {
		return "skip-failed"
	}
	return "fail-fast"
}

// config is comparable so it can be part of a registry key.
type config struct {
	match    Match
	mismatch Mismatch
	batch    Batch
	ownOnly  bool
}

// Option configures a Mapper.
type Option func(*config)

// WithMatch sets the field pairing rule.
func WithMatch(m Match) Option {
	return func(c *config) {
		c.match = m
	}
}

// WithMismatch sets the policy for source fields without a target counterpart.
func WithMismatch(m Mismatch) Option {
	return func(c *config) {
		c.mismatch = m
	}
}

// WithBatch sets the failure policy for collection mappings.
func WithBatch(b Batch) Option {
	return func(c *config) {
		c.batch = b
	}
}

// WithoutAncestors restricts both sides to their own declared fields.
// Fields promoted from embedded structs are ignored.
func WithoutAncestors() Option {
	return func(c *config) {
		c.ownOnly = true
	}
}

func resolveConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}
