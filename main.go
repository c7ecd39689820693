package main

import (
	"github.com/acdrive/acdrive/cmd"

	// Registers the macOS accessibility driver.
	_ "github.com/acdrive/acdrive/internal/platform/darwin"
)

func main() {
	cmd.Execute()
}
