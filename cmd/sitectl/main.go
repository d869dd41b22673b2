package main

import (
	"os"

	"go-touring-backend/internal/cli"
)

func main() {
	if err := cli.NewRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
