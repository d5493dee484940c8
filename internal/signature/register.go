package signature

// Register is the single slot both signature producers (freehand pad and
// upload+crop) write into. The most recent emission wins; there is no merge.
type Register struct {
	value string
}

// Set overwrites the held signature.
func (r *Register) Set(v string) { r.value = v }

// Value returns the current signature, empty if none.
func (r *Register) Value() string { return r.value }

// Present reports whether a signature is held.
func (r *Register) Present() bool { return r.value != "" }
