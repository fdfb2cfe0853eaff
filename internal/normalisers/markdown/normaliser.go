package markdown

import (
	"context"
	"path"
	"regexp"
	"strings"

	"github.com/chr33s/mcpdoc/internal/core/domain"
	"github.com/chr33s/mcpdoc/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles Markdown documents, including llms.txt indexes.
type Normaliser struct{}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/markdown", "text/x-markdown"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser, higher than plaintext
}

// Normalise passes markdown through, tidying line endings and blank runs.
// Markup is kept so links in llms.txt indexes stay followable.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	content := tidy(string(raw.Content))

	doc := domain.Document{
		URI:      raw.URI,
		Title:    extractMarkdownTitle(content, raw.URI),
		Content:  content,
		Metadata: copyMetadata(raw.Metadata),
	}

	if doc.Metadata == nil {
		doc.Metadata = make(map[string]any)
	}
	doc.Metadata["mime_type"] = raw.MIMEType
	doc.Metadata["format"] = "markdown"

	return &driven.NormaliseResult{
		Document: doc,
	}, nil
}

var blankRuns = regexp.MustCompile(`\n{4,}`)

// tidy normalises CRLF, drops trailing whitespace and caps blank runs.
// Leading indentation is kept since it is significant in markdown.
func tidy(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimPrefix(content, "\ufeff")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	content = strings.Join(lines, "\n")
	content = blankRuns.ReplaceAllString(content, "\n\n\n")

	return strings.Trim(content, "\n")
}

// extractMarkdownTitle returns the first H1 heading, falling back to the
// file name without extension.
func extractMarkdownTitle(content, uri string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "#"))
		}
	}

	filename := path.Base(strings.TrimRight(uri, "/"))
	if filename == "." || filename == "/" {
		return ""
	}
	filename = strings.TrimSuffix(filename, path.Ext(filename))
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return filename
}

// copyMetadata creates a shallow copy of metadata.
func copyMetadata(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
