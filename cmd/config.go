package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ghsearch/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the ghsearch configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration",
	Long: `Writes the default configuration to path, or to the --config path, or to
the default location. An existing file is left alone unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		if len(args) == 1 {
			path = args[0]
		}
		force, _ := cmd.Flags().GetBool("force")

		svc := config.NewConfigServiceWithBus(nil, path)
		if _, err := os.Stat(svc.Path()); err == nil && !force {
			return fmt.Errorf("config file already exists: %s (use --force to overwrite)", svc.Path())
		}
		if err := svc.Save(config.DefaultConfig()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", svc.Path())
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path in use",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("config")
		fmt.Fprintln(cmd.OutOrStdout(), config.NewConfigServiceWithBus(nil, path).Path())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configPathCmd)
	configInitCmd.Flags().BoolP("force", "f", false, "Overwrite an existing file")
}
