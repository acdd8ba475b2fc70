package glue

import (
	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/domain"
	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/ports"
)

// scrapbookMetaKey marks an output as a glued artifact. The glue key
// lives under the marker's "name" field.
const scrapbookMetaKey = "scrapbook"

// extractKeys walks every code cell output of the notebook and
// collects the glued entries it finds. A key already owned by another
// document triggers a collision warning; the extracted value still
// wins. Duplicate keys within the same notebook resolve to the last
// occurrence silently.
func extractKeys(nb *domain.Notebook, owners map[string]string, docName string, log ports.Logger) map[string]domain.GlueEntry {
	entries := make(map[string]domain.GlueEntry)
	for _, cell := range nb.Cells {
		if cell.Type != domain.CellCode {
			continue
		}
		for _, out := range cell.Outputs {
			key, ok := glueName(out)
			if !ok {
				continue
			}
			if owner, taken := owners[key]; taken && owner != docName {
				warnCollision(log, key, owner, docName)
			}
			entries[key] = domain.GlueEntry{
				Key:        key,
				OutputType: out.Type,
				Data:       out.Data,
				Metadata:   out.Metadata,
			}
		}
	}
	return entries
}

// glueName returns the glue key carried by an output, if any.
func glueName(out domain.Output) (string, bool) {
	meta, ok := out.Metadata[scrapbookMetaKey].(map[string]any)
	if !ok {
		return "", false
	}
	name, ok := meta["name"].(string)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}
