package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chr33s/mcpdoc/internal/logger"
)

var fetchRender bool

// stdoutIsTerminal reports whether stdout is an interactive terminal.
var stdoutIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <url-or-path>",
	Short: "Fetch a document through the allow-list",
	Long: `Fetches a URL or local file exactly as the fetch_docs tool does and
prints the markdown. The same allowed domains and local files apply.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().BoolVar(&fetchRender, "render", false, "render markdown when stdout is a terminal")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	a := newApp(cfg)

	text, err := a.fetch.Fetch(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if fetchRender && stdoutIsTerminal() {
		text = renderMarkdown(text)
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

// renderMarkdown styles markdown for the terminal, returning the input
// unchanged if rendering fails.
func renderMarkdown(content string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		logger.Debug("markdown renderer unavailable: %v", err)
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		logger.Debug("rendering markdown: %v", err)
		return content
	}
	return rendered
}
