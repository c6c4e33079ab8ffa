// Package progrock provides the Progrock implementation of the reporter.
package progrock

import (
	"github.com/masonbuild/mason/internal/core/ports"
	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
)

// Reporter implements ports.Reporter on a progrock tape. Each target run
// becomes a vertex; step output is routed through the vertex writers
// instead of the raw terminal.
type Reporter struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// New creates a Reporter with a default tape.
func New() *Reporter {
	tape := progrock.NewTape()
	return NewReporter(tape)
}

// NewReporter creates a Reporter recording to the given writer.
func NewReporter(w progrock.Writer) *Reporter {
	rec := progrock.NewRecorder(w)
	return &Reporter{
		w:   w,
		rec: rec,
	}
}

// Begin does nothing; vertices appear on the tape as targets start.
func (r *Reporter) Begin(_ []string) {}

// Target starts a vertex for one target run.
func (r *Reporter) Target(name string) ports.TargetReport {
	d := digest.FromString(name)
	v := r.rec.Vertex(d, name)
	return &Vertex{vertex: v}
}

// Close flushes and closes the recording session.
func (r *Reporter) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
