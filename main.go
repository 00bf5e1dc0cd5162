package main

import (
	"os"

	"github.com/talentsift/resume-ranker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
