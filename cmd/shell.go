// file: cmd/shell.go
// version: 1.0.0
// guid: 5f7b9d1e-3a5c-4f7b-8d1e-3a5c7f9b1d3f

package cmd

import (
	"log/slog"

	"github.com/jdfalk/library-catalog/internal/ui"
	"github.com/spf13/cobra"
)

// shellCmd opens the interactive menu
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Open the interactive catalog shell",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(cmd *cobra.Command, args []string) error {
	c, err := openCatalog()
	if err != nil {
		return err
	}

	slog.Debug("starting shell", "catalog", c.Path(), "books", c.Len())
	app := ui.NewApp(c, ui.NewHuhPrompter(), cmd.OutOrStdout(), slog.Default())
	return app.Run()
}
