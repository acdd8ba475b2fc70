package domain

// GluePrefix is the reservation prefix applied to MIME keys of glued
// outputs so they do not collide with ordinary display data. Lookup
// can strip it before exposing a bundle to renderers.
const GluePrefix = "application/papermill.record/"

// GlueEntry is a keyed artifact extracted from a notebook output.
// The key is unique within a store at any instant.
type GlueEntry struct {
	Key string `json:"key"`
	// OutputType is the nbformat output type the value came from.
	OutputType string         `json:"output_type,omitempty"`
	Data       MimeBundle     `json:"data"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// StripPrefix returns a copy of the bundle with GluePrefix removed
// from every MIME key that carries it.
func (b MimeBundle) StripPrefix() MimeBundle {
	out := make(MimeBundle, len(b))
	for mime, val := range b {
		if len(mime) >= len(GluePrefix) && mime[:len(GluePrefix)] == GluePrefix {
			out[mime[len(GluePrefix):]] = val
			continue
		}
		out[mime] = val
	}
	return out
}
