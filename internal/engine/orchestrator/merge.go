package orchestrator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"

	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/domain"
)

// reportsDirName is the subdirectory of the build destination holding
// per-document traceback logs.
const reportsDirName = "reports"

// MergeOutputs merges the current cache record's outputs into the
// parsed notebook. When no record exists but a staged record carries a
// traceback, the traceback is persisted as a report file beside the
// build output. With neither, the notebook is returned unmodified.
// A missing record is the normal first-build path, never an error.
func (o *Orchestrator) MergeOutputs(path string, nb *domain.Notebook) (*domain.Notebook, error) {
	if o.engine == nil {
		return nb, nil
	}

	recs, err := o.engine.RecordsForPath(path)
	if err != nil {
		return nb, err
	}

	if len(recs) > 0 {
		return mergeRecord(nb, currentRecord(recs), o.logger.Warn), nil
	}

	staged, err := o.engine.StagedRecord(path)
	if err != nil {
		return nb, err
	}
	if staged != nil && staged.Traceback != "" {
		reportPath, err := o.writeReport(path, staged.Traceback)
		if err != nil {
			return nb, err
		}
		o.logger.Info(fmt.Sprintf("execution traceback for %s is saved in %s", docBase(path), reportPath))
	}

	return nb, nil
}

// currentRecord selects the record with the greatest creation
// timestamp. Re-execution history keeps older records around; only the
// most recent one is merged.
func currentRecord(recs []domain.CacheRecord) domain.CacheRecord {
	current := recs[0]
	for _, rec := range recs[1:] {
		if rec.Created.After(current.Created) {
			current = rec
		}
	}
	return current
}

// mergeRecord attaches the record's per-code-cell outputs to a copy of
// the notebook, matching code cells positionally.
func mergeRecord(nb *domain.Notebook, rec domain.CacheRecord, warn func(string)) *domain.Notebook {
	merged := *nb
	merged.Cells = make([]domain.Cell, len(nb.Cells))
	copy(merged.Cells, nb.Cells)

	i := 0
	for c := range merged.Cells {
		if merged.Cells[c].Type != domain.CellCode {
			continue
		}
		if i < len(rec.Outputs) {
			merged.Cells[c].Outputs = rec.Outputs[i]
		}
		i++
	}

	if i != len(rec.Outputs) {
		warn(fmt.Sprintf("cached record for %s has %d code cell outputs, notebook has %d code cells", rec.URI, len(rec.Outputs), i))
	}
	return &merged
}

// writeReport persists a traceback under <output>/reports/<base>.log.
func (o *Orchestrator) writeReport(docPath, traceback string) (string, error) {
	dir := filepath.Join(o.outputDir, reportsDirName)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", zerr.Wrap(err, "failed to create reports directory")
	}

	reportPath := filepath.Join(dir, docBase(docPath)+".log")
	if err := os.WriteFile(reportPath, []byte(traceback), 0o644); err != nil { //nolint:gosec // report is plain text
		return "", zerr.With(zerr.Wrap(err, "failed to write traceback report"), "path", reportPath)
	}
	return reportPath, nil
}

// docBase is the document's file name without its extension.
func docBase(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
