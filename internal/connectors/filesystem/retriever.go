package filesystem

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/chr33s/mcpdoc/internal/core/domain"
	"github.com/chr33s/mcpdoc/internal/core/ports/driven"
)

// Ensure Retriever implements the interface.
var _ driven.Retriever = (*Retriever)(nil)

// Retriever reads local files.
type Retriever struct{}

// New creates a new local file retriever.
func New() *Retriever {
	return &Retriever{}
}

// Retrieve reads the file at path. Path is expected to be canonical.
// Any I/O failure is reported as a read error wrapping the cause.
func (r *Retriever) Retrieve(ctx context.Context, path string) (*domain.RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.FetchError{Kind: domain.KindRead, Source: domain.SourceLocal, Target: path, Err: err}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.FetchError{Kind: domain.KindRead, Source: domain.SourceLocal, Target: path, Err: err}
	}

	return &domain.RawDocument{
		URI:      path,
		MIMEType: MIMETypeFor(path),
		Content:  content,
		Metadata: map[string]any{
			"size": len(content),
		},
	}, nil
}

// MIMETypeFor guesses a media type from the file extension.
// Text files are treated as markdown since llms.txt indexes are markdown.
// Unknown extensions yield "" so the content is sniffed instead.
func MIMETypeFor(path string) string {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".md", ".markdown", ".mdx", ".txt":
		return "text/markdown"
	case ".html", ".htm", ".xhtml":
		return "text/html"
	case "":
		return ""
	default:
		mt, _, err := mime.ParseMediaType(mime.TypeByExtension(ext))
		if err != nil {
			return ""
		}
		return mt
	}
}

// CheckReadable verifies that path names an existing regular file.
// It is used at startup so missing local sources fail fast.
func CheckReadable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("local source %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("local source %s: is a directory", path)
	}
	return nil
}
