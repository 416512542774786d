package ports

// Location exposes the document's fragment identifier. Replace rewrites
// the fragment without recording a history entry; Assign is the direct
// fallback for backends that cannot replace in place.
type Location interface {
	// Fragment returns the current fragment identifier, without the
	// leading '#'. Empty when unset.
	Fragment() string

	// CanReplace reports whether Replace is supported.
	CanReplace() bool

	// Replace rewrites the fragment atomically, leaving no trace of the
	// previous value.
	Replace(fragment string) error

	// Assign writes the fragment directly.
	Assign(fragment string) error
}
