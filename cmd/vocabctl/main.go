package main

import (
	"os"

	"github.com/aliskhannn/topik-vocab-bot/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
