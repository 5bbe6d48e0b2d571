package main

import (
	"errors"
	"fmt"
	"os"

	"transapp/internal/cli"
	"transapp/pkg/logger"
)

func main() {
	if err := cli.Execute(os.Args[1:]); err != nil {
		if errors.Is(err, cli.ErrUsage) {
			fmt.Fprintln(os.Stderr, err)
			fmt.Fprintln(os.Stderr)
			cli.PrintUsage(os.Stderr)
			os.Exit(2)
		}
		logger.Log.Fatal(err)
	}
}
