package main

import (
	"fmt"
	"os"

	"github.com/shashiranjanraj/bhandar/internal/server"

	// Import migrations so their init() funcs run and register themselves.
	_ "github.com/shashiranjanraj/bhandar/database/migrations"
)

func main() {
	if err := server.Start(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
