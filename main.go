package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/dendrascience/wordclass/internal/cmd"
	"github.com/dendrascience/wordclass/version"
)

func main() {
	if err := fang.Execute(context.Background(), cmd.NewRootCmd(),
		fang.WithVersion(version.GetVersion()),
		fang.WithCommit(version.GetCommit()),
	); err != nil {
		os.Exit(1)
	}
}
