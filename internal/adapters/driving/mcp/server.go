package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/chr33s/mcpdoc/internal/core/domain"
	"github.com/chr33s/mcpdoc/internal/logger"
)

// ServerName is the implementation name advertised to clients.
const ServerName = "mcpdoc"

// HTTP endpoints served by the network transports.
const (
	PathSSE     = "/sse"
	PathMCP     = "/mcp"
	PathMetrics = "/metrics"
	PathHealth  = "/healthz"
)

const shutdownTimeout = 5 * time.Second

// instructions tells the host how to use the tools together.
const instructions = `Use list_doc_sources to see the configured documentation sources, ` +
	`then call fetch_docs on a source's llms.txt URL or path. ` +
	`Read the index, pick the links relevant to the question and fetch those pages with fetch_docs. ` +
	`Only URLs on the allowed domains and the configured local files can be fetched.`

// Options configures optional server behaviour.
type Options struct {
	// Version is advertised to clients. Defaults to "dev".
	Version string

	// Metrics, when set, is served at /metrics by the HTTP transports.
	Metrics http.Handler
}

// Server is the MCP server for mcpdoc.
type Server struct {
	ports  *Ports
	opts   Options
	server *mcp.Server
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports, opts *Options) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{ports: ports}
	if opts != nil {
		s.opts = *opts
	}
	if s.opts.Version == "" {
		s.opts.Version = "dev"
	}

	impl := &mcp.Implementation{
		Name:    ServerName,
		Version: s.opts.Version,
	}
	s.server = mcp.NewServer(impl, &mcp.ServerOptions{Instructions: instructions})

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunTransport dispatches to the runner for t.
func (s *Server) RunTransport(ctx context.Context, t domain.Transport, addr string) error {
	switch t {
	case domain.TransportStdio:
		return s.Run(ctx)
	case domain.TransportSSE:
		return s.RunSSE(ctx, addr)
	case domain.TransportHTTP:
		return s.RunHTTP(ctx, addr)
	default:
		return fmt.Errorf("unsupported transport %q", t)
	}
}

// RunSSE starts the MCP server over server-sent events on addr.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunSSE(ctx context.Context, addr string) error {
	return s.serve(ctx, addr, domain.TransportSSE)
}

// RunHTTP starts the MCP server over streamable HTTP on addr.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	return s.serve(ctx, addr, domain.TransportHTTP)
}

func (s *Server) serve(ctx context.Context, addr string, t domain.Transport) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln, t)
}

// Serve accepts connections on ln for a network transport until ctx is
// cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener, t domain.Transport) error {
	handler, err := s.Handler(t)
	if err != nil {
		_ = ln.Close()
		return err
	}

	httpServer := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("mcp: shutdown: %v", err)
		}
	}()

	logger.Info("mcp: serving %s on %s", t.Description(), ln.Addr())

	err = httpServer.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Handler returns the HTTP routes for a network transport: the MCP
// endpoint, /healthz and, when configured, /metrics.
func (s *Server) Handler(t domain.Transport) (http.Handler, error) {
	getServer := func(_ *http.Request) *mcp.Server {
		return s.server
	}

	mux := http.NewServeMux()
	switch t {
	case domain.TransportSSE:
		mux.Handle(PathSSE, mcp.NewSSEHandler(getServer, nil))
	case domain.TransportHTTP:
		mux.Handle(PathMCP, mcp.NewStreamableHTTPHandler(getServer, nil))
	default:
		return nil, fmt.Errorf("transport %q is not served over HTTP", t)
	}

	mux.HandleFunc("GET "+PathHealth, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	if s.opts.Metrics != nil {
		mux.Handle("GET "+PathMetrics, s.opts.Metrics)
	}

	return mux, nil
}

// Endpoint returns the path clients connect to for a network transport.
func Endpoint(t domain.Transport) string {
	if t == domain.TransportSSE {
		return PathSSE
	}
	return PathMCP
}
