package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var sourcesOutput string

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the configured doc sources",
	Long: `Prints the doc sources exactly as the list_doc_sources tool returns them.
Use it to check a configuration before wiring it into an MCP host.`,
	Args: cobra.NoArgs,
	RunE: runSources,
}

func init() {
	sourcesCmd.Flags().StringVarP(&sourcesOutput, "output", "o", "text", "output format: text or json")
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	a := newApp(cfg)

	switch sourcesOutput {
	case "text":
		fmt.Fprintln(cmd.OutOrStdout(), a.catalog.Render())
		return nil
	case "json":
		data, err := json.MarshalIndent(a.catalog.List(), "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling sources: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text or json)", sourcesOutput)
	}
}
