package main

import (
	"os"

	"github.com/mbdkits/mbdflow/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
