package normalisers

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/chr33s/mcpdoc/internal/core/domain"
	"github.com/chr33s/mcpdoc/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry dispatches raw documents to normalisers by MIME type.
// Normalisers are kept ordered by descending priority; on a tie the one
// registered first wins.
type Registry struct {
	mu          sync.RWMutex
	normalisers []driven.Normaliser
}

// NewRegistry creates an empty normaliser registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a normaliser to the registry.
func (r *Registry) Register(n driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.normalisers = append(r.normalisers, n)
	sort.SliceStable(r.normalisers, func(i, j int) bool {
		return r.normalisers[i].Priority() > r.normalisers[j].Priority()
	})
}

// SupportedMIMETypes returns all MIME types that can be normalised, sorted.
func (r *Registry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	var types []string
	for _, n := range r.normalisers {
		for _, t := range n.SupportedMIMETypes() {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			types = append(types, t)
		}
	}
	sort.Strings(types)
	return types
}

// Normalise transforms a raw document using the best matching normaliser.
// A missing or unrecognised MIME type is sniffed from the content; when
// nothing matches, the lowest-priority normaliser is used as a fallback.
// A full HTML document declared as plain text or markdown is converted as HTML.
func (r *Registry) Normalise(ctx context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	n, err := r.selectFor(raw)
	if err != nil {
		return nil, err
	}
	return n.Normalise(ctx, raw)
}

func (r *Registry) selectFor(raw *domain.RawDocument) (driven.Normaliser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.normalisers) == 0 {
		return nil, fmt.Errorf("%w: no normalisers registered", domain.ErrUnsupportedType)
	}

	declared := MediaType(raw.MIMEType)
	if _, ok := textualTypes[declared]; ok && isHTMLDocument(raw.Content) {
		if n := r.match(htmlType); n != nil {
			return n, nil
		}
	}
	if n := r.match(declared); n != nil {
		return n, nil
	}
	if n := r.match(MediaType(http.DetectContentType(raw.Content))); n != nil {
		return n, nil
	}
	return r.normalisers[len(r.normalisers)-1], nil
}

const htmlType = "text/html"

// textualTypes are declared types that raw-file hosts also send for HTML pages.
var textualTypes = map[string]struct{}{
	"text/plain":      {},
	"text/markdown":   {},
	"text/x-markdown": {},
}

// isHTMLDocument reports whether content opens with a doctype or <html> tag.
// Fragments such as a leading <p> are left to the declared type, since
// markdown may embed inline HTML.
func isHTMLDocument(content []byte) bool {
	head := bytes.TrimLeft(content, "\ufeff \t\r\n")
	if len(head) > 64 {
		head = head[:64]
	}
	head = bytes.ToLower(head)
	return bytes.HasPrefix(head, []byte("<!doctype html")) || bytes.HasPrefix(head, []byte("<html"))
}

// match must be called with the read lock held.
func (r *Registry) match(mimeType string) driven.Normaliser {
	if mimeType == "" {
		return nil
	}
	for _, n := range r.normalisers {
		for _, t := range n.SupportedMIMETypes() {
			if t == mimeType {
				return n
			}
		}
	}
	return nil
}

// MediaType strips parameters from a Content-Type value and lowercases it.
// Unparsable values yield "".
func MediaType(contentType string) string {
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.ToLower(mediaType)
}
