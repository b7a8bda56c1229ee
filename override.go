package fieldmap

// Hook interfaces let a target type take part in mapping without the mapper
// knowing anything about it beyond its field set.

// Initializer prepares a freshly allocated target before fields are copied.
// It stands in for a constructor: defaults set here are overwritten by
// copied fields and corrections.
type Initializer interface {
	// Init is called on the new *R. A non-nil error makes the target
	// uninstantiable for that call: the result is nil and the error wraps
	// ErrUninstantiable.
	Init() error
}

// Identifier defines the equality MapSet uses to collapse duplicates.
// Implement it when R is not comparable, or when == is too strict
// (for example, two targets that differ only by a timestamp).
type Identifier interface {
	// Identity returns a comparable key. Targets with equal keys are duplicates.
	Identity() any
}
