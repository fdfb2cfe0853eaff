package cli

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chr33s/mcpdoc/internal/adapters/driving/mcp"
	"github.com/chr33s/mcpdoc/internal/logger"
)

// stdinIsTerminal reports whether stdin is an interactive terminal.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	a := newApp(cfg)

	ports := &mcp.Ports{
		Catalog: a.catalog,
		Fetch:   a.fetch,
	}

	server, err := mcp.NewServer(ports, &mcp.Options{
		Version: version,
		Metrics: a.metrics.Handler(),
	})
	if err != nil {
		return err
	}

	logger.Info("loaded %d doc sources", len(cfg.Sources))

	if !cfg.Transport.IsNetwork() {
		if stdinIsTerminal() {
			logger.Info("waiting for an MCP client on stdin; mcpdoc is normally launched by an MCP host")
		}
		return server.Run(cmd.Context())
	}

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	endpoint := fmt.Sprintf("http://%s%s", addr, mcp.Endpoint(cfg.Transport))
	fmt.Fprintln(cmd.ErrOrStderr(), renderBanner(cfg, endpoint))

	return server.RunTransport(cmd.Context(), cfg.Transport, addr)
}
