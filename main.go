package main

import (
	"os"

	_ "go.uber.org/automaxprocs"

	"echolens/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Error("Command failed", err)
		os.Exit(1)
	}
}
