// Package cmd provides the CLI commands for carbontrace.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"carbontrace/internal/config"
	"carbontrace/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "carbontrace",
	Short: "Estimate product carbon footprints with a learned model",
	Long: `carbontrace estimates the cradle-to-customer carbon footprint of a
product from its material, weight, transport mode, shipping distance and
manufacturing intensity.

The model is trained on a synthetic dataset derived from published emission
factors; train once, then predict as many times as needed.

Examples:
  carbontrace train --samples 8000
  carbontrace predict --material Cotton --weight 0.5 --transport AIR --distance 8000
  carbontrace materials`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.carbontrace.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(materialsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	// Initialize logging
	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("carbontrace version 1.0.0")
	},
}

// configCmd prints the effective configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		fmt.Printf("artifact:  %s\n", cfg.Model.ArtifactPath)
		fmt.Printf("dataset:   %s\n", cfg.Model.DatasetPath)
		fmt.Printf("samples:   %d\n", cfg.Training.Samples)
		fmt.Printf("seed:      %d\n", cfg.Training.Seed)
		fmt.Printf("addr:      %s\n", cfg.Server.Addr)
		fmt.Printf("history:   %s\n", cfg.Server.HistoryPath)
		if cfg.Factors.TablePath != "" {
			fmt.Printf("factors:   %s\n", cfg.Factors.TablePath)
		}
		return nil
	},
}
