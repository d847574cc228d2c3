// file: cmd/diagnostics.go
// version: 2.0.0
// guid: c8f6a0d4-2a8b-48cf-9d08-02cc9915d9fc

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jdfalk/library-catalog/internal/catalog"
	"github.com/jdfalk/library-catalog/internal/config"
	"github.com/jdfalk/library-catalog/internal/models"
	"github.com/jdfalk/library-catalog/internal/ui"
	"github.com/spf13/cobra"
)

var (
	diagnosticsCmd = &cobra.Command{
		Use:   "diagnostics",
		Short: "Debugging and cleanup helpers",
		Long:  "Diagnostic utilities for inspecting and repairing the catalog file.",
	}

	checkCmd = &cobra.Command{
		Use:   "check",
		Short: "Report duplicate ids and non-numeric years",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.OutOrStdout())
		},
	}

	compactCmd = &cobra.Command{
		Use:   "compact",
		Short: "Rewrite the catalog file without duplicate rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("yes")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			return runCompact(cmd.InOrStdin(), cmd.OutOrStdout(), force, dryRun)
		},
	}
)

func init() {
	compactCmd.Flags().Bool("yes", false, "Skip confirmation prompt")
	compactCmd.Flags().Bool("dry-run", false, "List duplicate rows without rewriting")

	diagnosticsCmd.AddCommand(checkCmd)
	diagnosticsCmd.AddCommand(compactCmd)
}

// fileReport describes the rows of a catalog file as stored on disk.
type fileReport struct {
	Rows       int
	Duplicates []models.Book
	BadYears   []models.Book
}

func inspectCatalogFile(path string) (fileReport, error) {
	rows, err := catalog.ReadFile(path)
	if err != nil {
		return fileReport{}, fmt.Errorf("failed to read catalog: %w", err)
	}

	report := fileReport{Rows: len(rows)}
	seen := make(map[string]bool, len(rows))
	for _, b := range rows {
		if seen[b.ID] {
			report.Duplicates = append(report.Duplicates, b)
			continue
		}
		seen[b.ID] = true
		if b.Year != "" && !ui.IsNumericYear(b.Year) {
			report.BadYears = append(report.BadYears, b)
		}
	}
	return report, nil
}

func runCheck(out io.Writer) error {
	path := config.AppConfig.CatalogFile
	report, err := inspectCatalogFile(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Inspecting %s: %d rows\n", path, report.Rows)
	if len(report.Duplicates) == 0 && len(report.BadYears) == 0 {
		fmt.Fprintln(out, "No problems detected.")
		return nil
	}

	if len(report.Duplicates) > 0 {
		fmt.Fprintf(out, "Found %d duplicate rows (ignored on load):\n", len(report.Duplicates))
		for i, b := range report.Duplicates {
			fmt.Fprintf(out, "%2d. %s\n", i+1, b)
		}
	}
	if len(report.BadYears) > 0 {
		fmt.Fprintf(out, "Found %d rows with a non-numeric year:\n", len(report.BadYears))
		for i, b := range report.BadYears {
			fmt.Fprintf(out, "%2d. %s\n", i+1, b)
		}
	}
	return nil
}

func runCompact(in io.Reader, out io.Writer, force, dryRun bool) error {
	path := config.AppConfig.CatalogFile
	report, err := inspectCatalogFile(path)
	if err != nil {
		return err
	}

	if len(report.Duplicates) == 0 {
		fmt.Fprintln(out, "No duplicate rows detected.")
		return nil
	}

	fmt.Fprintf(out, "Found %d duplicate rows:\n", len(report.Duplicates))
	for i, b := range report.Duplicates {
		fmt.Fprintf(out, "%2d. %s\n", i+1, b)
	}

	if dryRun {
		fmt.Fprintln(out, "Dry run enabled; catalog file left unchanged.")
		return nil
	}

	if !force {
		confirmed, err := promptYesNo(in, out, fmt.Sprintf("Remove %d rows", len(report.Duplicates)))
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(out, "Aborted. No rows removed.")
			return nil
		}
	}

	c, err := openCatalog()
	if err != nil {
		return err
	}
	if err := c.Save(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Removed %d duplicate rows; %d books remain.\n", len(report.Duplicates), c.Len())
	return nil
}

func promptYesNo(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s? [y/N]: ", question)
	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
