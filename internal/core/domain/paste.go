package domain

// PasteRequest is a typed request to re-insert a glued value somewhere
// in a document. It is a closed tagged variant: PlainPaste, TextPaste
// or FigurePaste. Resolution dispatches on the concrete type; there is
// no subclass-style override.
type PasteRequest interface {
	// GlueKey names the glue entry the request refers to.
	GlueKey() string
}

// PlainPaste inserts the richest available representation of a value.
type PlainPaste struct {
	Key string
	// Doc and Line locate the request for diagnostics.
	Doc  string
	Line int
}

// GlueKey implements PasteRequest.
func (p PlainPaste) GlueKey() string { return p.Key }

// TextPaste inserts only the text/plain representation, optionally
// formatted as a number (e.g. ".2f").
type TextPaste struct {
	Key        string
	Formatting string
	Doc        string
	Line       int
}

// GlueKey implements PasteRequest.
func (p TextPaste) GlueKey() string { return p.Key }

// FigurePaste inserts an image representation wrapped in a figure with
// the given layout parameters.
type FigurePaste struct {
	Key      string
	Width    string
	Align    string
	Name     string
	Classes  []string
	Caption  string
	Doc      string
	Line     int
}

// GlueKey implements PasteRequest.
func (p FigurePaste) GlueKey() string { return p.Key }

// ResolvedPaste is the renderer-facing result of resolving a paste
// request against the glue store.
type ResolvedPaste struct {
	Key string
	// MimeType selects the representation chosen for this request;
	// Content is the corresponding value from the bundle.
	MimeType string
	Content  any
	// Figure parameters, populated only for FigurePaste requests.
	Width   string
	Align   string
	Name    string
	Classes []string
	Caption string
}
