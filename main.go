package main

import (
	"os"

	"github.com/pioneers-ai-hackaton/workly-ai/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
