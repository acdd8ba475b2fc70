package telemetry

import (
	"context"
	"fmt"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"

	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/ports"
)

var _ ports.Tracer = (*Recorder)(nil)

// Recorder implements ports.Tracer on top of a progrock tape, one
// vertex per span. Cached notebooks surface as cached vertices.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// New creates a Recorder with a default tape.
func New() *Recorder {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Start begins a vertex named after the span.
func (r *Recorder) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	cfg := &ports.SpanConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	v := r.rec.Vertex(digest.FromString(name), name)
	return ctx, &vertexSpan{vertex: v}
}

// EmitPlan records the staged batch as a single plan vertex.
func (r *Recorder) EmitPlan(_ context.Context, paths []string) {
	v := r.rec.Vertex(digest.FromString("plan"), "staged notebooks")
	for _, p := range paths {
		_, _ = fmt.Fprintln(v.Stdout(), p)
	}
	v.Done(nil)
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// vertexSpan implements ports.Span wrapping *progrock.VertexRecorder.
type vertexSpan struct {
	vertex *progrock.VertexRecorder
	err    error
}

// Write streams output onto the vertex.
func (s *vertexSpan) Write(p []byte) (n int, err error) {
	return s.vertex.Stdout().Write(p)
}

// End completes the vertex, carrying any recorded error.
func (s *vertexSpan) End() {
	s.vertex.Done(s.err)
}

// RecordError stores the error reported when the vertex completes.
func (s *vertexSpan) RecordError(err error) {
	s.err = err
}

// Cached marks the vertex as a cache hit.
func (s *vertexSpan) Cached() {
	s.vertex.Cached()
}

// SetAttribute writes the pair onto the vertex output.
func (s *vertexSpan) SetAttribute(key string, value any) {
	_, _ = fmt.Fprintf(s.vertex.Stdout(), "%s=%v\n", key, value)
}
