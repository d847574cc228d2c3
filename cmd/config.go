// file: cmd/config.go
// version: 1.0.0
// guid: 7b9d1f3a-5c7e-4b9d-8f3a-5c7e9b1d3f5b

package cmd

import (
	"fmt"

	"github.com/jdfalk/library-catalog/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var showConfigFile string

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Show or save the effective configuration",
	}

	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Long:  `Print the effective configuration, or with --from the contents of a saved config file over the defaults.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.AppConfig
			if showConfigFile != "" {
				loaded, err := config.LoadConfigFromFile(showConfigFile)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	configWriteCmd = &cobra.Command{
		Use:   "write [path]",
		Short: "Save the effective configuration to a YAML file",
		Long:  `Save the effective configuration (defaults, config file, env and flags merged) to path, or to $HOME/.library-catalog.yaml.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			written, err := config.SaveConfigToFile(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", written)
			return nil
		},
	}
)

func init() {
	configShowCmd.Flags().StringVar(&showConfigFile, "from", "", "show a saved config file instead of the effective configuration")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configWriteCmd)
}
