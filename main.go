package main

import (
	"os"

	"github.com/bilimpath/bilim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
