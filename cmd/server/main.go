package main

import (
	"fmt"
	"os"

	mcpserver "github.com/orgair/orgair-mcp/internal/server"
	"github.com/orgair/orgair-mcp/pkg/fxapp"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Handle version flag before Fx starts
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("orgair-mcp version %s (built on %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	mcpserver.Version = Version
	fxapp.New().Run()
}
