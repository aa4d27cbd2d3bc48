package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tsbridge/internal/server"
)

var appVersion = "dev"

func main() {
	var (
		logLevel string
		wasmPath string
		debug    bool
	)

	root := &cobra.Command{
		Use:     "tsbridge",
		Short:   "tsbridge runs a language-service bridge over stdio",
		Version: appVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			wasmBytes, err := os.ReadFile(wasmPath)
			if err != nil {
				return fmt.Errorf("reading analyzer script %q: %w", wasmPath, err)
			}
			return server.Run(logLevel, wasmBytes, debug)
		},
	}

	root.Flags().StringVar(&logLevel, "log-level", "warning", "log level: debug, info, warning, error")
	root.Flags().StringVar(&wasmPath, "analyzer", "analyzer.wasm", "path to the compiled analyzer script bundle")
	root.Flags().BoolVar(&debug, "debug", false, "enable the analyzer's debug logging")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "tsbridge: %v\n", err)
		os.Exit(1)
	}
}
