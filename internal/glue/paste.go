package glue

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/zerr"

	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/domain"
)

// pastePriority orders representations from richest to plainest for
// untyped paste requests.
var pastePriority = []string{
	"image/png",
	"image/jpeg",
	"image/svg+xml",
	"text/html",
	"text/latex",
	"text/plain",
}

// figureMimes are the representations a figure paste accepts.
var figureMimes = []string{"image/png", "image/jpeg", "image/svg+xml"}

// ResolvePaste resolves a paste request against the store. The entry
// is looked up as a prefix-stripped deep copy, so renderers may mutate
// the result freely. Dispatch is by concrete request type.
func (s *Store) ResolvePaste(req domain.PasteRequest) (*domain.ResolvedPaste, error) {
	key := req.GlueKey()
	entry, ok := s.Lookup(key, true, true)
	if !ok {
		return nil, zerr.With(domain.ErrGlueKeyNotFound, "key", key)
	}

	switch r := req.(type) {
	case domain.TextPaste:
		return s.resolveText(entry, r)
	case domain.FigurePaste:
		return resolveFigure(entry, r)
	case domain.PlainPaste:
		return resolvePlain(entry)
	default:
		return nil, zerr.With(zerr.New("unsupported paste request type"), "key", key)
	}
}

// resolvePlain picks the richest available representation.
func resolvePlain(entry *domain.GlueEntry) (*domain.ResolvedPaste, error) {
	for _, mime := range pastePriority {
		if content, ok := entry.Data[mime]; ok {
			return &domain.ResolvedPaste{Key: entry.Key, MimeType: mime, Content: content}, nil
		}
	}
	return nil, zerr.With(zerr.New("glue entry has no renderable representation"), "key", entry.Key)
}

// resolveText resolves the text/plain representation, stripping the
// repr quoting kernels wrap strings in and applying the optional
// numeric format.
func (s *Store) resolveText(entry *domain.GlueEntry, req domain.TextPaste) (*domain.ResolvedPaste, error) {
	content, ok := entry.Data["text/plain"]
	if !ok {
		return nil, zerr.With(zerr.New("glue entry has no text/plain representation"), "key", entry.Key)
	}

	text := strings.Trim(fmt.Sprintf("%v", content), "'")
	if req.Formatting != "" {
		text = s.formatNumber(entry.Key, text, req.Formatting)
	}

	return &domain.ResolvedPaste{Key: entry.Key, MimeType: "text/plain", Content: text}, nil
}

// resolveFigure picks the first available image representation.
func resolveFigure(entry *domain.GlueEntry, req domain.FigurePaste) (*domain.ResolvedPaste, error) {
	for _, mime := range figureMimes {
		if content, ok := entry.Data[mime]; ok {
			return &domain.ResolvedPaste{
				Key:      entry.Key,
				MimeType: mime,
				Content:  content,
				Width:    req.Width,
				Align:    req.Align,
				Name:     req.Name,
				Classes:  req.Classes,
				Caption:  req.Caption,
			}, nil
		}
	}
	return nil, zerr.With(domain.ErrNoImageData, "key", entry.Key)
}

// formatSpecPattern accepts specs of the form ".2f", ".3e", ".4g" or a
// bare conversion letter.
var formatSpecPattern = regexp.MustCompile(`^(?:\.(\d+))?([efg])$`)

// formatNumber applies a numeric format spec to text. Non-numeric text
// and unrecognised specs pass through unchanged with a warning, so a
// bad directive degrades the rendering instead of failing the build.
func (s *Store) formatNumber(key, text, spec string) string {
	m := formatSpecPattern.FindStringSubmatch(spec)
	if m == nil {
		s.logger.Warn(fmt.Sprintf("glue key %q: unrecognised format spec %q", key, spec))
		return text
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("glue key %q: value %q is not numeric, format %q ignored", key, text, spec))
		return text
	}

	prec := -1
	if m[1] != "" {
		prec, _ = strconv.Atoi(m[1])
	}
	return strconv.FormatFloat(f, m[2][0], prec, 64)
}
