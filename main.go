package main

import (
	"os"

	"github.com/alevelmaths/alevel/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
