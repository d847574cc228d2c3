// file: cmd/root.go
// version: 2.0.0
// guid: 6a7b8c9d-0e1f-2a3b-4c5d-6e7f8a9b0c1d

package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jdfalk/library-catalog/internal/catalog"
	"github.com/jdfalk/library-catalog/internal/config"
	"github.com/jdfalk/library-catalog/internal/logging"
	"github.com/jdfalk/library-catalog/internal/metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "LIBRARY_CATALOG"

var cfgFile string
var catalogFile string
var atomicWrites bool
var logLevel string
var logFormat string
var backupDir string
var metricsFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "library-catalog",
	Short: "Manage a book catalog stored in a CSV file",
	Long: `Library Catalog keeps a list of books (id, title, author, year) in a
CSV file. Books can be added, listed, updated, deleted, searched, sorted and
imported from other CSV files.

Run without a subcommand to open the interactive shell.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.AppConfig.Validate()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return writeMetrics()
	},
	RunE: runShell,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.library-catalog.yaml)")
	rootCmd.PersistentFlags().StringVarP(&catalogFile, "file", "f", config.DefaultCatalogFile, "path to the catalog CSV file")
	rootCmd.PersistentFlags().BoolVar(&atomicWrites, "atomic-writes", false, "write the catalog through a temp file and rename")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", config.DefaultLogFormat, "log format: text or json")
	rootCmd.PersistentFlags().StringVar(&backupDir, "backup-dir", config.DefaultBackupDir, "directory for catalog backups")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")

	bindFlags()

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(sortCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(diagnosticsCmd)
}

// bindFlags wires the persistent flags into viper.
func bindFlags() {
	flags := rootCmd.PersistentFlags()
	viper.BindPFlag("catalog_file", flags.Lookup("file"))
	viper.BindPFlag("atomic_writes", flags.Lookup("atomic-writes"))
	viper.BindPFlag("log_level", flags.Lookup("log-level"))
	viper.BindPFlag("log_format", flags.Lookup("log-format"))
	viper.BindPFlag("backup_dir", flags.Lookup("backup-dir"))
	viper.BindPFlag("metrics_file", flags.Lookup("metrics-file"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(strings.TrimSuffix(config.FileName, ".yaml"))
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	readErr := viper.ReadInConfig()

	config.InitConfig()
	logging.Setup(config.AppConfig.LogLevel, config.AppConfig.LogFormat, os.Stderr)

	if readErr == nil {
		slog.Debug("using config file", "path", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		slog.Warn("failed to read config file", "path", cfgFile, "error", readErr)
	}
}

// openCatalog opens the configured catalog with metrics and logging wired in.
func openCatalog(opts ...catalog.Option) (*catalog.Catalog, error) {
	metrics.Register()

	base := []catalog.Option{
		catalog.WithAtomicWrites(config.AppConfig.AtomicWrites),
		catalog.WithLogger(slog.Default()),
		catalog.WithObserver(recordOperation),
	}
	c, err := catalog.Open(config.AppConfig.CatalogFile, append(base, opts...)...)
	if err != nil {
		return nil, err
	}

	metrics.SetBooks(c.Len())
	return c, nil
}

func recordOperation(operation string, res catalog.Result, err error, elapsed time.Duration, books int) {
	outcome := res.Outcome.String()
	if err != nil {
		outcome = "error"
	}
	metrics.ObserveOperation(operation, outcome, elapsed, books)
}

func writeMetrics() error {
	if config.AppConfig.MetricsFile == "" {
		return nil
	}
	metrics.Register()
	if err := metrics.WriteTextfile(config.AppConfig.MetricsFile); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

// printResult writes a catalog result message to the command's stdout.
func printResult(cmd *cobra.Command, res catalog.Result) {
	fmt.Fprintln(cmd.OutOrStdout(), res.Message)
}
