package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/talentscout/internal/cli"
	"github.com/aretw0/talentscout/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "talentscout",
	Short: "TalentScout is an AI hiring assistant that screens technology candidates",
	Long: `TalentScout collects a candidate's basic details one at a time and then asks
Gemini for technical questions tailored to the candidate's declared tech stack.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("debug", false, "Shorthand for --log-level=debug")
}

// loadConfig resolves the configuration and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{File: path})
	if err != nil {
		return nil, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// newApp loads the configuration and builds the App.
func newApp(cmd *cobra.Command, opts cli.AppOptions) (*cli.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return cli.NewApp(cmd.Context(), cfg, opts)
}
