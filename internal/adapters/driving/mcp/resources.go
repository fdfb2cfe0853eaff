package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/chr33s/mcpdoc/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for mcpdoc resources.
	uriScheme = "mcpdoc://"

	// ResourceSources lists the catalog as JSON.
	ResourceSources = uriScheme + "sources"
)

// sourceInfo is the JSON shape of one catalog entry.
type sourceInfo struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Location    string `json:"llms_txt"`
	Description string `json:"description,omitempty"`
	ResourceURI string `json:"resource_uri"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         ResourceSources,
		Name:        "sources",
		Description: "Configured documentation sources",
		MIMEType:    "application/json",
	}, s.handleSourcesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "sources/{index}/llms.txt",
		Name:        "source-index",
		Description: "The llms.txt index of a configured source, fetched through the allow-list",
		MIMEType:    "text/markdown",
	}, s.handleSourceIndexResource)
}

// handleSourcesResource returns the catalog as JSON.
func (s *Server) handleSourcesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	sources := s.ports.Catalog.List()

	infos := make([]sourceInfo, len(sources))
	for i, src := range sources {
		location := src.Location
		if src.Kind() == domain.SourceLocal {
			location = domain.CanonicalPath(src.Location)
		}
		infos[i] = sourceInfo{
			Index:       i,
			Name:        src.DisplayName(),
			Kind:        src.Kind().String(),
			Location:    location,
			Description: src.Description,
			ResourceURI: sourceIndexURI(i),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling sources: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleSourceIndexResource fetches the llms.txt of one source.
func (s *Server) handleSourceIndexResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	index, ok := extractSourceIndex(req.Params.URI)
	sources := s.ports.Catalog.List()
	if !ok || index >= len(sources) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	text, err := s.ports.Fetch.Fetch(ctx, sources[index].Location)
	if err != nil {
		return nil, fmt.Errorf("fetching source %d: %w", index, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     text,
		}},
	}, nil
}

func sourceIndexURI(i int) string {
	return uriScheme + "sources/" + strconv.Itoa(i) + "/llms.txt"
}

// extractSourceIndex extracts the index from mcpdoc://sources/{index}/llms.txt.
func extractSourceIndex(uri string) (int, bool) {
	const prefix = uriScheme + "sources/"
	const suffix = "/llms.txt"

	if !strings.HasPrefix(uri, prefix) || !strings.HasSuffix(uri, suffix) {
		return 0, false
	}

	raw := strings.TrimSuffix(strings.TrimPrefix(uri, prefix), suffix)
	i, err := strconv.Atoi(raw)
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}
