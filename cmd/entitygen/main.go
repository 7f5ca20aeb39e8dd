package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/example/entitygen/internal/cli"
)

func main() {
	if err := cli.RootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, color.New(color.FgRed).Sprint("Error:"), err)
		os.Exit(1)
	}
}
