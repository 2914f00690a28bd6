/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/suderio/recall/internal/config"
)

var (
	cfgFile string
	cfg     config.Config
	logger  = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "recall",
	Short: "Turn-based combat with memory combos",
	Long: `recall runs small turn-based fights. Every basic act you take is remembered,
and once per turn you can recall a run of past acts to forge a combo into an act slot.

Start a fight with:
	recall play goblin-ambush`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}
		cfg = c
		logger = newLogger(cfg.Level())
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
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.recall.yaml)")
	rootCmd.PersistentFlags().StringSlice("data_dirs", nil, "directories searched for encounter files")
	rootCmd.PersistentFlags().String("journal_dir", "", "directory holding combat journals")
	rootCmd.PersistentFlags().String("log_level", "", "log level (debug, info, warn, error)")

	_ = viper.BindPFlag("data_dirs", rootCmd.PersistentFlags().Lookup("data_dirs"))
	_ = viper.BindPFlag("journal_dir", rootCmd.PersistentFlags().Lookup("journal_dir"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log_level"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".recall")
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger writes human-readable logs to stderr so they never mix with game output.
func newLogger(level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
