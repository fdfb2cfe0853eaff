package mcp

import (
	"github.com/chr33s/mcpdoc/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Catalog lists the configured doc sources.
	Catalog driving.CatalogService

	// Fetch retrieves and normalises documentation.
	Fetch driving.FetchService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil || p.Catalog == nil {
		return ErrMissingCatalogService
	}
	if p.Fetch == nil {
		return ErrMissingFetchService
	}
	return nil
}
