package main

import (
	"os"

	"github.com/mahideveloper1/Video-editor-assignment/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
