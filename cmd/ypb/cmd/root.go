package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ypbank/finparser/pkg/config"
)

// cfg holds the effective configuration for subcommands; flags override it.
var cfg = config.DefaultConfig()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ypb",
	Short: "ypb - transaction record format tools",
	Long: `ypb converts and compares financial transaction record files in
three formats: fixed-layout binary (bin), CSV (csv) and key:value text (text).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

		if path, _ := cmd.Flags().GetString("config"); path != "" {
			loaded, err := config.LoadConfig(path)
			if err != nil {
				return err
			}
			cfg = loaded
		}

		levelName := cfg.Logging.Level
		if flagLevel, _ := cmd.Flags().GetString("log-level"); flagLevel != "" {
			levelName = flagLevel
		}
		level, err := logrus.ParseLevel(levelName)
		if err != nil {
			return err
		}
		logrus.SetLevel(level)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
}
