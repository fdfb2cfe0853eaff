package html

import (
	"context"
	"html"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	xhtml "golang.org/x/net/html"

	"github.com/chr33s/mcpdoc/internal/core/domain"
	"github.com/chr33s/mcpdoc/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser converts HTML documents to markdown.
type Normaliser struct {
	converter *md.Converter
}

// New creates a new HTML normaliser.
func New() *Normaliser {
	converter := md.NewConverter("", true, &md.Options{CodeBlockStyle: "fenced"})
	converter.Use(plugin.GitHubFlavored())
	converter.Remove("script", "style", "noscript", "template", "svg")

	return &Normaliser{converter: converter}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser, higher than plaintext
}

// Normalise converts an HTML document to markdown.
// Conversion never fails on malformed markup: if the converter errors the
// tags are stripped instead.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	rawContent := string(raw.Content)
	title := extractHTMLTitle(rawContent)

	format := "markdown"
	content, err := n.converter.ConvertString(rawContent)
	if err != nil {
		content = stripHTML(rawContent)
		format = "text"
	}
	content = cleanMarkdown(content)

	doc := domain.Document{
		URI:      raw.URI,
		Title:    title,
		Content:  content,
		Metadata: copyMetadata(raw.Metadata),
	}

	if doc.Metadata == nil {
		doc.Metadata = make(map[string]any)
	}
	doc.Metadata["mime_type"] = raw.MIMEType
	doc.Metadata["format"] = format

	return &driven.NormaliseResult{
		Document: doc,
	}, nil
}

// Pre-compiled regular expressions for the fallback path and cleanup.
var (
	scriptTag        = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag         = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	htmlComments     = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockElements    = regexp.MustCompile(`(?i)</?(p|div|br|hr|h[1-6]|li|tr|blockquote|pre|table|section|article)[^>]*>`)
	allTags          = regexp.MustCompile(`<[^>]+>`)
	excessiveLinesRe = regexp.MustCompile(`\n{4,}`)
)

// extractHTMLTitle returns the text of the first <title> element.
func extractHTMLTitle(content string) string {
	doc, err := xhtml.Parse(strings.NewReader(content))
	if err != nil {
		return ""
	}

	var title string
	var extract func(*xhtml.Node)
	extract = func(n *xhtml.Node) {
		if n.Type == xhtml.ElementNode && n.Data == "title" && n.FirstChild != nil {
			title = strings.TrimSpace(n.FirstChild.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if title != "" {
				return
			}
			extract(c)
		}
	}
	extract(doc)

	return title
}

// stripHTML removes tags and decodes entities, keeping block boundaries
// as line breaks.
func stripHTML(content string) string {
	content = scriptTag.ReplaceAllString(content, "")
	content = styleTag.ReplaceAllString(content, "")
	content = htmlComments.ReplaceAllString(content, "")
	content = blockElements.ReplaceAllString(content, "\n")
	content = allTags.ReplaceAllString(content, "")
	return html.UnescapeString(content)
}

// cleanMarkdown trims trailing spaces and caps runs of blank lines.
func cleanMarkdown(content string) string {
	content = excessiveLinesRe.ReplaceAllString(content, "\n\n\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
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
