package main

import (
	"log"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"go.opentelemetry.io/otel"
)

// newLogger returns the process logger. Errors carry their call site.
// The same sink receives OpenTelemetry's internal diagnostics.
func newLogger(verbosity int) logr.Logger {
	stdr.SetVerbosity(verbosity)
	logger := stdr.NewWithOptions(
		log.New(os.Stderr, "", log.LstdFlags),
		stdr.Options{LogCaller: stdr.Error},
	).WithName("barchart")
	otel.SetLogger(logger)
	return logger
}
