// Command mcpdoc serves llms.txt documentation to AI assistants over MCP.
package main

import (
	"os"

	"github.com/chr33s/mcpdoc/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
