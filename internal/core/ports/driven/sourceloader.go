package driven

import "github.com/chr33s/mcpdoc/internal/core/domain"

// FileSettings holds the optional settings a config file may carry.
// Nil fields were not present in the file.
type FileSettings struct {
	FollowRedirects *bool
	Timeout         *float64
	AllowedDomains  []string
}

// SourceConfig is the parsed content of a config file.
type SourceConfig struct {
	Sources  []domain.DocSource
	Settings FileSettings
}

// SourceLoader reads doc sources from a structured config file.
type SourceLoader interface {
	// Load parses the file at path. Errors wrap domain.ErrConfig.
	Load(path string) (*SourceConfig, error)
}
