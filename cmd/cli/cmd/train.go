// Package cmd - train command
package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"carbontrace/core/artifact"
	"carbontrace/core/dataset"
	"carbontrace/core/factors"
	"carbontrace/core/training"
	"carbontrace/internal/config"
	"carbontrace/internal/logging"
)

var (
	trainSamples int
	trainSeed    uint64
	trainOut     string
	trainDataset string
)

// trainCmd represents the train command
var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Generate a synthetic dataset and train the emission model",
	Long: `Generate a synthetic training dataset from the emission factor tables,
fit the ensemble model on it, and write the serving artifact.

The whole run is deterministic for a given seed: the same seed and sample
count always produce the same dataset, the same model and the same metrics.

Examples:
  carbontrace train
  carbontrace train --samples 20000 --seed 7
  carbontrace train --out ./model.gob --dataset ./data.csv`,
	RunE: runTrain,
}

func init() {
	trainCmd.Flags().IntVar(&trainSamples, "samples", 0, "number of synthetic records (default from config)")
	trainCmd.Flags().Uint64Var(&trainSeed, "seed", 0, "random seed (default from config)")
	trainCmd.Flags().StringVar(&trainOut, "out", "", "artifact output path (default from config)")
	trainCmd.Flags().StringVar(&trainDataset, "dataset", "", "dataset CSV output path (default from config)")
}

func runTrain(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	samples := cfg.Training.Samples
	if cmd.Flags().Changed("samples") {
		samples = trainSamples
	}
	seed := cfg.Training.Seed
	if cmd.Flags().Changed("seed") {
		seed = trainSeed
	}
	outPath := cfg.Model.ArtifactPath
	if trainOut != "" {
		outPath = trainOut
	}
	datasetPath := cfg.Model.DatasetPath
	if trainDataset != "" {
		datasetPath = trainDataset
	}

	table, err := factors.Load(cfg.Factors.TablePath)
	if err != nil {
		return err
	}

	gen, err := dataset.New(table)
	if err != nil {
		return err
	}

	fmt.Printf("Generating %d synthetic records (seed %d)...\n", samples, seed)
	records, err := gen.Generate(samples, seed)
	if err != nil {
		return err
	}

	if datasetPath != "" {
		if err := dataset.WriteCSVFile(datasetPath, records); err != nil {
			return err
		}
		fmt.Printf("Dataset written to %s\n", datasetPath)
	}

	fmt.Println("Training model...")
	start := time.Now()
	result, err := training.Train(records, training.DefaultConfig(seed))
	if err != nil {
		return err
	}

	if err := artifact.Save(result.Artifact, outPath); err != nil {
		return err
	}
	logging.Sync()

	fmt.Printf("Training complete in %s\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("  R2:   %.4f\n", result.Metrics.R2)
	fmt.Printf("  RMSE: %.4f\n", result.Metrics.RMSE)
	fmt.Printf("  MAE:  %.4f\n", result.Metrics.MAE)
	fmt.Println("  Feature importance:")
	for _, imp := range result.Importances {
		fmt.Printf("    %-16s %.4f\n", imp.Feature, imp.Weight)
	}
	fmt.Printf("Artifact written to %s\n", outPath)
	return nil
}
