package main

import (
	"os"

	"github.com/arthur-debert/outparse/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
