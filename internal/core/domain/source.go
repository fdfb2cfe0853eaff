package domain

import (
	"net/url"
	"path/filepath"
	"strings"
)

// SourceKind tells which gate applies to a location.
type SourceKind int

const (
	// SourceLocal is a filesystem path or file:// URI.
	SourceLocal SourceKind = iota

	// SourceRemote is an http or https URL.
	SourceRemote
)

// String returns the lowercase kind name used in logs and metrics labels.
func (k SourceKind) String() string {
	if k == SourceRemote {
		return "remote"
	}
	return "local"
}

// fileScheme is stripped from local locations before canonicalisation.
const fileScheme = "file://"

// DocSource represents a configured documentation source.
// The ordered list of sources is the catalog served by list_doc_sources.
type DocSource struct {
	// Name is the optional human-readable label.
	Name string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`

	// Location is the llms.txt URL or local path. Required.
	Location string `json:"llms_txt" yaml:"llms_txt" toml:"llms_txt"`

	// Description is free text shown to operators only.
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
}

// Kind classifies the source location.
func (s DocSource) Kind() SourceKind {
	return Classify(s.Location)
}

// DisplayName returns Name, or the origin for remote sources and the
// canonical path for local ones when no name was configured.
func (s DocSource) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	if s.Kind() == SourceRemote {
		return OriginOf(s.Location)
	}
	return CanonicalPath(s.Location)
}

// Classify reports whether s names a network resource or a local one.
// Scheme detection is case-sensitive: "HTTPS://x" is classified as local.
func Classify(s string) SourceKind {
	if IsRemote(s) {
		return SourceRemote
	}
	return SourceLocal
}

// IsRemote is true iff s starts with "http:" or "https:".
func IsRemote(s string) bool {
	return strings.HasPrefix(s, "http:") || strings.HasPrefix(s, "https:")
}

// CanonicalPath resolves a local location to a clean absolute path.
// A leading file:// is stripped first. No existence check is made and the
// empty string resolves to the working directory.
func CanonicalPath(s string) string {
	s = strings.TrimPrefix(s, fileScheme)
	abs, err := filepath.Abs(s)
	if err != nil {
		// Abs only fails when the working directory is unavailable.
		return filepath.Clean(s)
	}
	return abs
}

// OriginOf returns scheme://host[:port]/ for a URL.
// Unparsable input is returned as-is so that it can only match itself.
func OriginOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return rawURL
	}
	return u.Scheme + "://" + u.Host + "/"
}
