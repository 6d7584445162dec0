package main

import (
	"os"

	"github.com/arnvid/diktat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
