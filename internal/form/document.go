// Package form holds the domain model for the multi-step form: the
// aggregate document the wizard collects, and the item ledger.
package form

// Identity is the step 1 payload.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   string `json:"age"`
}

// Demographics is the step 2 payload.
type Demographics struct {
	Country    string `json:"country"`
	City       string `json:"city"`
	Occupation string `json:"occupation"`
}

// Document aggregates one payload per wizard step. A Document is always
// fully populated: defaults are empty strings, an empty item list and an
// empty signature, never a partially zero value.
type Document struct {
	Identity     Identity     `json:"identity"`
	Demographics Demographics `json:"demographics"`
	Bio          string       `json:"bio"`
	Items        []Item       `json:"items"`
	// Signature is a base64 data URI (image/png or image/jpeg).
	// Empty means no signature has been captured yet.
	Signature string `json:"signature"`
}

// NewDocument returns the default, fully populated document.
func NewDocument() Document {
	return Document{Items: []Item{}}
}

// Normalize fills in anything a decoded document may have left nil so the
// fully-populated invariant holds for restored documents too.
func (d *Document) Normalize() {
	if d.Items == nil {
		d.Items = []Item{}
	}
}
