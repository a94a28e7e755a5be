package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/bnema/pokedex-cli/cmd"
	"github.com/bnema/pokedex-cli/internal/version"
)

func main() {
	if err := fang.Execute(
		context.Background(),
		cmd.NewRootCmd(),
		fang.WithVersion(version.Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
