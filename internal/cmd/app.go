// Package cmd implements the praia command-line interface.
package cmd

import (
	"io"

	"praia/internal/config"
	"praia/internal/logger"
	"praia/internal/storage"
)

// App holds application state shared across commands.
type App struct {
	Store  storage.Store
	Config config.Config
	Log    logger.Logger
	Out    io.Writer
	Err    io.Writer
}
