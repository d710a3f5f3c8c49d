package main

import (
	"os"

	"github.com/python/blurb/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
