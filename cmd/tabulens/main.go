package main

import (
	"os"

	"github.com/tabulens/tabulens/cmd/tabulens/commands"
)

// main is the entry point for the Tabulens CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/tabulens [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
