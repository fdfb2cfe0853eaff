// Package mcp provides an MCP (Model Context Protocol) server adapter for mcpdoc.
// It lets AI assistants list the configured doc sources and fetch
// documentation through the access-checked fetch gate.
package mcp

import "errors"

var (
	// ErrMissingCatalogService is returned when the catalog service is not provided.
	ErrMissingCatalogService = errors.New("mcp: catalog service is required")

	// ErrMissingFetchService is returned when the fetch service is not provided.
	ErrMissingFetchService = errors.New("mcp: fetch service is required")
)
