package main

import (
	"os"

	"github.com/RichMorin/dtags/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
