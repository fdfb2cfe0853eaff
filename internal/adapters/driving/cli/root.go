// Package cli provides the cobra command tree for mcpdoc.
// The root command serves the MCP tools; sources, fetch and version are
// operator helpers that share the same configuration flags.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chr33s/mcpdoc/internal/core/domain"
	"github.com/chr33s/mcpdoc/internal/logger"
)

// version is set at build time via -ldflags "-X .../cli.version=...".
var version = "dev"

// Flag values shared by every command.
var (
	yamlFile        string
	jsonFile        string
	tomlFile        string
	urlTokens       []string
	followRedirects bool
	timeoutSeconds  float64
	allowedDomains  []string
	transportName   string
	host            string
	port            int
	logLevel        string
	userAgent       string
	maxBodyBytes    int64
	rateLimit       float64
	rateBurst       int
)

var rootCmd = &cobra.Command{
	Use:   "mcpdoc",
	Short: "Serve llms.txt documentation to AI assistants over MCP",
	Long: `mcpdoc is a Model Context Protocol server that gives AI assistants
access to documentation published as llms.txt files.

It exposes two tools: list_doc_sources, which lists the configured
sources, and fetch_docs, which fetches a page and returns it as markdown.
Only URLs on the domains of the configured sources (plus --allowed-domains)
and the configured local files can be fetched.

Examples:
  # Serve LangGraph docs over stdio
  mcpdoc --urls "LangGraph:https://langchain-ai.github.io/langgraph/llms.txt"

  # Serve sources from a YAML file over SSE
  mcpdoc --yaml sources.yaml --transport sse --port 8082

  # Allow fetches from any domain
  mcpdoc --urls https://example.com/llms.txt --allowed-domains '*'

MCP host configuration:
  {
    "mcpServers": {
      "docs": {
        "command": "mcpdoc",
        "args": ["--urls", "LangGraph:https://langchain-ai.github.io/langgraph/llms.txt"]
      }
    }
  }`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	RunE:              runServe,
}

func init() {
	flags := rootCmd.PersistentFlags()

	flags.StringVarP(&yamlFile, "yaml", "y", "", "YAML file with doc sources")
	flags.StringVarP(&jsonFile, "json", "j", "", "JSON file with doc sources")
	flags.StringVar(&tomlFile, "toml", "", "TOML file with doc sources")
	flags.StringArrayVarP(&urlTokens, "urls", "u", nil,
		"doc source as name:location or location (repeatable)")
	flags.BoolVar(&followRedirects, "follow-redirects", false,
		"follow HTTP redirects and one meta-refresh hop")
	flags.Float64Var(&timeoutSeconds, "timeout", domain.DefaultTimeout.Seconds(),
		"per-request timeout in seconds")
	flags.StringSliceVar(&allowedDomains, "allowed-domains", nil,
		"extra allowed origins such as https://example.com/; '*' allows all")
	flags.StringVar(&transportName, "transport", string(domain.TransportStdio),
		"transport: stdio, sse or http")
	flags.StringVar(&host, "host", "127.0.0.1", "host to bind for sse and http transports")
	flags.IntVar(&port, "port", 8082, "port to bind for sse and http transports")
	flags.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
	flags.StringVar(&userAgent, "user-agent", "", "User-Agent header (default mcpdoc/<version>)")
	flags.Int64Var(&maxBodyBytes, "max-body-bytes", 0, "maximum response body size in bytes (0 = unlimited)")
	flags.Float64Var(&rateLimit, "rate-limit", 0, "requests per second per origin (0 = unlimited)")
	flags.IntVar(&rateBurst, "rate-burst", 1, "burst size for --rate-limit")
}

// Execute runs the root command with a context cancelled on SIGINT or SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	level, err := logger.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	logger.SetOutput(cmd.ErrOrStderr())
	return nil
}
