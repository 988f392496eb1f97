package main

import (
	"fmt"
	"io"
	"os"

	"pet-console/internal/tui"

	"github.com/spf13/cobra"
)

func newTUICmd(configPath *string) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse the catalog from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			// la pantalla es de la TUI: los logs van a archivo o se descartan
			var out io.Writer = io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("open log file: %w", err)
				}
				defer f.Close()
				out = f
			}

			a, err := newApp(*configPath, out)
			if err != nil {
				return err
			}
			defer func() { _ = a.log.Sync() }()

			return tui.Run(cmd.Context(), a.catalog, a.cfg.Title, a.log)
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file while the TUI runs")
	return cmd
}
