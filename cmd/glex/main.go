package main

import (
	"os"

	"github.com/glexlang/glex/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
