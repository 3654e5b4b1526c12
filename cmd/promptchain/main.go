// Command promptchain generates LLM completions for every combination
// of two sets of context files and saves each response to disk.
package main

import (
	"os"

	"github.com/chai-engine/promptchain/internal/adapters/driving/cli"
)

// version is overridden at build time via
// -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
