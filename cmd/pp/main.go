package main

import (
	"os"

	"github.com/bnema/page-push/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
