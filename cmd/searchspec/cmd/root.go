package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.1.0-dev"
	Commit  = "unknown"
)

var (
	cfgFile  string
	logLevel string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "searchspec",
	Short: "Declarative filter-and-sort over in-memory records",
	Long: `searchspec compiles declarative search specifications into predicates
and runs them against a generated order dataset.

A specification is a plain struct whose tagged fields each declare one
criterion: a member path, a comparison operator and, for collection
members, a quantifier. Fields left unset contribute no constraint.`,
	Version:           Version,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"Path to configuration file (default searchspec.yaml, optional)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
}

func setup(cmd *cobra.Command, args []string) error {
	viper.SetDefault("dataset.size", 40)
	viper.SetDefault("page.size", 10)
	viper.SetDefault("log.level", "info")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("searchspec")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("SEARCHSPEC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine; a broken one is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return err
		}
	}

	if logLevel != "" {
		viper.Set("log.level", logLevel)
	}

	var err error
	logger, err = newLogger(viper.GetString("log.level"))
	return err
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
