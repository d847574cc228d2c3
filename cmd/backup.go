// file: cmd/backup.go
// version: 1.0.0
// guid: 6a8c0e2f-4b6d-4a8c-9e2f-4b6d8a0c2e4a

package cmd

import (
	"fmt"

	"github.com/jdfalk/library-catalog/internal/backup"
	"github.com/jdfalk/library-catalog/internal/config"
	"github.com/spf13/cobra"
)

var (
	backupCmd = &cobra.Command{
		Use:   "backup",
		Short: "Create, list, restore and delete catalog backups",
	}

	backupCreateCmd = &cobra.Command{
		Use:   "create",
		Short: "Snapshot the catalog file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := backup.CreateBackup(config.AppConfig.CatalogFile, backupConfig())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup created: %s (%d bytes, sha256 %s)\n", info.Path, info.Size, info.Checksum)
			return nil
		},
	}

	backupListCmd = &cobra.Command{
		Use:   "list",
		Short: "List backups, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backups, err := backup.ListBackups(config.AppConfig.BackupDir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(backups) == 0 {
				fmt.Fprintln(out, "No backups found.")
				return nil
			}
			for _, b := range backups {
				fmt.Fprintf(out, "%s\t%d\t%s\n", b.Filename, b.Size, b.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}

	backupRestoreCmd = &cobra.Command{
		Use:   "restore <backup-file>",
		Short: "Replace the catalog file with a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := backup.RestoreBackup(args[0], config.AppConfig.CatalogFile); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Catalog restored from %s\n", args[0])
			return nil
		},
	}

	backupDeleteCmd = &cobra.Command{
		Use:   "delete <backup-file>",
		Short: "Remove a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := backup.DeleteBackup(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup deleted: %s\n", args[0])
			return nil
		},
	}
)

func init() {
	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	backupCmd.AddCommand(backupDeleteCmd)
}

func backupConfig() backup.BackupConfig {
	cfg := backup.DefaultBackupConfig()
	cfg.BackupDir = config.AppConfig.BackupDir
	cfg.MaxBackups = config.AppConfig.MaxBackups
	return cfg
}
