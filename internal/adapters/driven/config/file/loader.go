package file

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/chr33s/mcpdoc/internal/core/domain"
	"github.com/chr33s/mcpdoc/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.SourceLoader = (*Loader)(nil)

// Format is a config file syntax.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath guesses the format from the file extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".json":
		return FormatJSON, true
	case ".toml":
		return FormatTOML, true
	default:
		return "", false
	}
}

// document is the object form of a config file.
type document struct {
	Sources         []domain.DocSource `json:"sources" yaml:"sources" toml:"sources"`
	FollowRedirects *bool              `json:"follow_redirects" yaml:"follow_redirects" toml:"follow_redirects"`
	Timeout         *float64           `json:"timeout" yaml:"timeout" toml:"timeout"`
	AllowedDomains  []string           `json:"allowed_domains" yaml:"allowed_domains" toml:"allowed_domains"`
}

// Loader parses config files of one format.
type Loader struct {
	format Format
}

// NewLoader creates a loader for the given format.
func NewLoader(format Format) *Loader {
	return &Loader{format: format}
}

// Load reads and parses the file at path.
func (l *Loader) Load(path string) (*driven.SourceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", domain.ErrConfig, path, err)
	}

	cfg, err := l.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes config content. Errors wrap domain.ErrConfig.
func (l *Loader) Parse(data []byte) (*driven.SourceConfig, error) {
	var (
		doc document
		err error
	)

	switch l.format {
	case FormatYAML:
		doc, err = parseYAML(data)
	case FormatJSON:
		doc, err = parseJSON(data)
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", domain.ErrConfig, l.format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", domain.ErrConfig, l.format, err)
	}

	for i := range doc.Sources {
		doc.Sources[i].Location = strings.TrimSpace(doc.Sources[i].Location)
		if doc.Sources[i].Location == "" {
			return nil, fmt.Errorf("%w: source %d has no llms_txt", domain.ErrConfig, i+1)
		}
	}
	if doc.Timeout != nil && *doc.Timeout <= 0 {
		return nil, fmt.Errorf("%w: timeout must be positive, got %v", domain.ErrConfig, *doc.Timeout)
	}

	return &driven.SourceConfig{
		Sources: doc.Sources,
		Settings: driven.FileSettings{
			FollowRedirects: doc.FollowRedirects,
			Timeout:         doc.Timeout,
			AllowedDomains:  doc.AllowedDomains,
		},
	}, nil
}

// parseYAML accepts a top-level sequence of sources or a mapping.
func parseYAML(data []byte) (document, error) {
	var doc document

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return doc, err
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return doc, nil // empty file
	}

	node := root.Content[0]
	switch node.Kind {
	case yaml.SequenceNode:
		err := node.Decode(&doc.Sources)
		return doc, err
	case yaml.MappingNode:
		err := node.Decode(&doc)
		return doc, err
	default:
		return doc, fmt.Errorf("line %d: expected a list of sources or a mapping", node.Line)
	}
}

// parseJSON accepts a top-level array of sources or an object.
func parseJSON(data []byte) (document, error) {
	var doc document

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return doc, nil
	}

	var err error
	switch trimmed[0] {
	case '[':
		err = json.Unmarshal(trimmed, &doc.Sources)
	case '{':
		err = json.Unmarshal(trimmed, &doc)
	default:
		err = fmt.Errorf("expected a list of sources or an object")
	}
	return doc, err
}
