// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/DirGroup-Admin/DirGroup-Admin/internal/config"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/logger"
)

const defaultConfigPath = "./etc/"

var (
	configPath string // Path to the configuration file

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "dirgroup-admin",
	Short: "DirGroup-Admin maps directory groups to local groups and roles",
	Long: `DirGroup-Admin keeps the local mirror of LDAP and Active Directory groups:
each directory group grants a role and a set of local groups to its users,
and no directory group is ever left without local groups.`,
	Args:          cobra.OnlyValidArgs,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "Directory containing main.toml")
}

// loadConfig reads the configuration file and initialises the global logger.
func loadConfig(_ *cobra.Command, _ []string) error {
	var err error
	if cfg, err = config.ReadConfig(configPath); err != nil {
		return err //nolint:wrapcheck
	}

	return logger.Init(cfg.Log) //nolint:wrapcheck
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute() //nolint:wrapcheck
}
