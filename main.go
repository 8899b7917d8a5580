package main

import (
	"os"

	"github.com/mrlokans/stacks/internal/cli"
	"github.com/mrlokans/stacks/internal/config"
	"github.com/mrlokans/stacks/internal/logging"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	cfg := config.NewConfig()
	closer := logging.Setup(cfg.Log)

	code := cli.Execute(cli.NewRootCommand(cfg, cli.VersionInfo{Version: Version, Commit: Commit}))
	closer.Close()
	os.Exit(code)
}
