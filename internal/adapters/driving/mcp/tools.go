package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/chr33s/mcpdoc/internal/logger"
)

// Tool names.
const (
	ToolListDocSources = "list_doc_sources"
	ToolFetchDocs      = "fetch_docs"
)

// ListDocSourcesInput is the input schema for the list_doc_sources tool.
type ListDocSourcesInput struct{}

// FetchDocsInput is the input schema for the fetch_docs tool.
type FetchDocsInput struct {
	URL string `json:"url" jsonschema:"the URL or local path to fetch; must be on an allowed domain or a configured local file"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: ToolListDocSources,
		Description: "List the available documentation sources. " +
			"Call this first: each source has an llms.txt index URL or path that fetch_docs can read.",
	}, s.handleListDocSources)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: ToolFetchDocs,
		Description: "Fetch a documentation page or llms.txt index and return it as markdown. " +
			"Accepts URLs on the allowed domains and the configured local files. " +
			"After fetching an index, fetch the linked pages relevant to the question.",
	}, s.handleFetchDocs)
}

// handleListDocSources handles the list_doc_sources tool invocation.
func (s *Server) handleListDocSources(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListDocSourcesInput,
) (*mcp.CallToolResult, any, error) {
	return textResult(s.ports.Catalog.Render(), false), nil, nil
}

// handleFetchDocs handles the fetch_docs tool invocation.
// Fetch failures are tool errors carrying the error text, never protocol faults.
func (s *Server) handleFetchDocs(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FetchDocsInput,
) (*mcp.CallToolResult, any, error) {
	text, err := s.ports.Fetch.Fetch(ctx, input.URL)
	if err != nil {
		logger.Warn("fetch_docs %q: %v", input.URL, err)
		return textResult(err.Error(), true), nil, nil
	}
	return textResult(text, false), nil, nil
}

func textResult(text string, isError bool) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: isError,
	}
}
