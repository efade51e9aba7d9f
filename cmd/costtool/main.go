package main

import (
	"os"

	"github.com/spf13/afero"

	"github.com/spacemeshos/go-costtables/cmd"
	"github.com/spacemeshos/go-costtables/log"
)

var (
	version string
	commit  string
)

func main() {
	cmd.Version = version
	cmd.Commit = commit

	logger, err := log.New("costtool", "error", log.ConsoleEncoder)
	if err != nil {
		panic(err)
	}
	if err := newRootCmd(afero.NewOsFs()).Execute(); err != nil {
		logger.Error("command failed", log.Err(err))
		os.Exit(1)
	}
}
