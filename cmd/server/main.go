package main

import (
	"fmt"
	"os"

	"github.com/dfryer1193/wpgallery/shared/config"
	"github.com/dfryer1193/wpgallery/shared/logging"
	"github.com/spf13/cobra"
)

// Version is set via ldflags at build time.
var Version = "dev"

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "wpgallery",
	Short: "Paginated, searchable gallery of WordPress posts",
	Long: `wpgallery serves a small site whose news section is a gallery of posts
from a WordPress REST API, with pagination, search, and a contact form.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of wpgallery",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "wpgallery %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "gallery.yml", "config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level")
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads .env files, the config file and the environment, then
// sets up logging from the result.
func loadConfig() (*config.Config, error) {
	config.LoadDotEnv()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format, os.Stderr); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
