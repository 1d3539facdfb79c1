// Package page defines the captured representation of a target page and
// the bounded UI summary derived from it. Capture happens in one of two
// modes: a static fetch-and-parse (this package) or a rendered-page
// observation (internal/browser). Both produce the same Document.
package page

// Kind classifies a captured element.
type Kind string

const (
	KindHeading Kind = "heading"
	KindAction  Kind = "action"
	KindField   Kind = "field"
)

// Element is one interactive or structural node captured from the page,
// with its label already resolved. Elements appear in document order.
type Element struct {
	Kind  Kind   `json:"kind"`
	Label string `json:"label"`
	Error string `json:"error,omitempty"` // associated error message (fields)

	Disabled bool `json:"disabled,omitempty"`
	Required bool `json:"required,omitempty"`
	Invalid  bool `json:"invalid,omitempty"`

	// Computed state, rendered mode only. Static captures leave these
	// zero and are treated as visible.
	Display    string  `json:"display,omitempty"`
	Visibility string  `json:"visibility,omitempty"`
	Area       float64 `json:"area,omitempty"`
	Focused    bool    `json:"focused,omitempty"`
}

// Viewport is the browser viewport state at capture time.
type Viewport struct {
	W       int `json:"w"`
	H       int `json:"h"`
	ScrollY int `json:"scrollY"`
}

// Document is the capture of one page.
type Document struct {
	Title    string    `json:"title"`
	Elements []Element `json:"elements"`

	// Rendered is true when the capture came from a live browser and
	// the computed visibility fields on Elements are meaningful.
	Rendered   bool      `json:"rendered"`
	Viewport   *Viewport `json:"viewport,omitempty"`
	Screenshot []byte    `json:"-"` // PNG, rendered mode only
}

// visible reports whether an element passes the rendered-mode
// visibility predicate. Static captures skip this check entirely:
// without geometry the capture is a best-effort approximation, not a
// visibility oracle.
func (e Element) visible(rendered bool) bool {
	if !rendered {
		return true
	}
	return e.Display != "none" && e.Visibility != "hidden" && e.Area > 0
}
