// Package domain contains the core models for notebook execution
// caching and glue artifact storage.
package domain

// CellType identifies the kind of a notebook cell.
type CellType string

const (
	// CellCode is an executable code cell.
	CellCode CellType = "code"
	// CellMarkdown is a prose cell.
	CellMarkdown CellType = "markdown"
	// CellRaw is a passthrough cell.
	CellRaw CellType = "raw"
)

// MimeBundle maps a MIME type to one representation of an output value.
type MimeBundle map[string]any

// Output is a single output object attached to a code cell.
type Output struct {
	// Type is the nbformat output type: "execute_result",
	// "display_data", "stream" or "error".
	Type     string         `json:"output_type"`
	Data     MimeBundle     `json:"data,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
	// Text carries stream output; empty for rich outputs.
	Text string `json:"text,omitempty"`
}

// Cell is one entry in a notebook's ordered cell sequence.
// Only code cells carry outputs.
type Cell struct {
	Type     CellType       `json:"cell_type"`
	Source   string         `json:"source"`
	Outputs  []Output       `json:"outputs,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Notebook is a parsed notebook document. It is a read-only input to
// the orchestrator; outputs are merged onto a copy.
type Notebook struct {
	Cells         []Cell         `json:"cells"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	NBFormat      int            `json:"nbformat"`
	NBFormatMinor int            `json:"nbformat_minor"`
}

// HasAllOutputs reports whether every code cell already carries at
// least one output. A notebook without code cells trivially satisfies
// this.
func (n *Notebook) HasAllOutputs() bool {
	for _, cell := range n.Cells {
		if cell.Type == CellCode && len(cell.Outputs) == 0 {
			return false
		}
	}
	return true
}

// CodeCellOutputs returns the outputs of each code cell in order.
// The outer slice is indexed by code-cell position, not cell position.
func (n *Notebook) CodeCellOutputs() [][]Output {
	var outs [][]Output
	for _, cell := range n.Cells {
		if cell.Type == CellCode {
			outs = append(outs, cell.Outputs)
		}
	}
	return outs
}
