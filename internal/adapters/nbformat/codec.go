// Package nbformat reads notebook documents and derives their
// content identity.
package nbformat

import (
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/cespare/xxhash/v2"

	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/domain"
	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.NotebookReader = (*Codec)(nil)

// Codec parses ipynb documents into domain notebooks.
type Codec struct{}

// New creates a new Codec.
func New() *Codec {
	return &Codec{}
}

// notebookDTO mirrors the on-disk nbformat v4 structure. Source and
// stream text may be either a string or a list of line strings.
type notebookDTO struct {
	Cells         []cellDTO      `json:"cells"`
	Metadata      map[string]any `json:"metadata"`
	NBFormat      int            `json:"nbformat"`
	NBFormatMinor int            `json:"nbformat_minor"`
}

type cellDTO struct {
	CellType string         `json:"cell_type"`
	Source   any            `json:"source"`
	Outputs  []outputDTO    `json:"outputs"`
	Metadata map[string]any `json:"metadata"`
}

type outputDTO struct {
	OutputType string         `json:"output_type"`
	Data       map[string]any `json:"data"`
	Metadata   map[string]any `json:"metadata"`
	Text       any            `json:"text"`
	EName      string         `json:"ename"`
	EValue     string         `json:"evalue"`
	Traceback  []string       `json:"traceback"`
}

// Read parses the notebook file at path.
func (c *Codec) Read(path string) (*domain.Notebook, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by the build driver
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read notebook"), "path", path)
	}
	nb, err := c.Decode(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return nb, nil
}

// Decode parses raw ipynb bytes.
func (c *Codec) Decode(data []byte) (*domain.Notebook, error) {
	var dto notebookDTO
	if err := sonic.Unmarshal(data, &dto); err != nil {
		return nil, zerr.Wrap(err, "failed to parse notebook")
	}

	nb := &domain.Notebook{
		Metadata:      dto.Metadata,
		NBFormat:      dto.NBFormat,
		NBFormatMinor: dto.NBFormatMinor,
	}
	for _, cd := range dto.Cells {
		cell := domain.Cell{
			Type:     domain.CellType(cd.CellType),
			Source:   flattenText(cd.Source),
			Metadata: cd.Metadata,
		}
		for _, od := range cd.Outputs {
			cell.Outputs = append(cell.Outputs, decodeOutput(od))
		}
		nb.Cells = append(nb.Cells, cell)
	}
	return nb, nil
}

func decodeOutput(od outputDTO) domain.Output {
	out := domain.Output{
		Type:     od.OutputType,
		Data:     od.Data,
		Metadata: od.Metadata,
		Text:     flattenText(od.Text),
	}
	// Error outputs carry ename/evalue/traceback instead of data.
	if od.OutputType == "error" {
		out.Text = od.EName + ": " + od.EValue + "\n" + strings.Join(od.Traceback, "\n")
	}
	return out
}

// flattenText joins nbformat's string-or-line-list representation.
func flattenText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		var b strings.Builder
		for _, line := range t {
			if s, ok := line.(string); ok {
				b.WriteString(s)
			}
		}
		return b.String()
	default:
		return ""
	}
}

// ContentKey computes the identity key for a notebook by hashing cell
// types and sources only. Outputs, metadata and file location never
// contribute, so a moved file with identical content keeps its key.
func (c *Codec) ContentKey(nb *domain.Notebook) string {
	h := xxhash.New()
	for _, cell := range nb.Cells {
		_, _ = h.WriteString(string(cell.Type))
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(cell.Source)
		_, _ = h.WriteString("\x01")
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
