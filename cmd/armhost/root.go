// Root command for the armhost CLI.
package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"armhost/pkg/config"
	"armhost/pkg/log"
)

// Version is the armhost release version.
const Version = "0.1.0"

// Override keys accepted in armhost.yaml.
const (
	cfgKeyLogLevel    = "log_level"
	cfgKeyListen      = "listen"
	cfgKeyMetrics     = "metrics_listen"
	cfgKeyHistoryPath = "history_path"
)

var (
	// flagConfigFile is the arm geometry config file.
	flagConfigFile string

	// overrides holds tool-level settings from armhost.yaml, if present.
	overrides *viper.Viper
)

var rootCmd = &cobra.Command{
	Use:     "armhost",
	Short:   "Armhost drives a planar two-link robotic arm",
	Long: `Armhost models a planar two-link (revolute-revolute) robotic arm:
it solves inverse kinematics for requested targets, validates moves against
the arm's reachable annulus, and interpolates motion as a paced sequence of
poses served to rendering front-ends.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if overrides, err = loadOverrides(); err != nil {
			return err
		}
		if overrides.IsSet(cfgKeyLogLevel) {
			logger := log.New("armhost")
			logger.SetLevel(log.ParseLevel(overrides.GetString(cfgKeyLogLevel)))
			log.SetDefaultLogger(logger)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfigFile, "config", "c", "arm.cfg",
		"arm configuration file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(historyCmd)
}

// loadOverrides reads optional tool-level settings from armhost.yaml in the
// working directory. A missing file is not an error.
func loadOverrides() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigName("armhost")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("ARMHOST")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, err
	}
	return v, nil
}

// loadFileConfig parses the arm config file and applies overrides.
func loadFileConfig() (*config.FileConfig, error) {
	fc, err := config.ParseFile(flagConfigFile)
	if err != nil {
		return nil, err
	}
	if overrides.IsSet(cfgKeyListen) {
		fc.ListenAddr = overrides.GetString(cfgKeyListen)
	}
	if overrides.IsSet(cfgKeyMetrics) {
		fc.MetricsAddr = overrides.GetString(cfgKeyMetrics)
	}
	if overrides.IsSet(cfgKeyHistoryPath) {
		fc.HistoryPath = overrides.GetString(cfgKeyHistoryPath)
	}
	return fc, nil
}
