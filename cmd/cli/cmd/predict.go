// Package cmd - predict and materials commands
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"carbontrace/core/factors"
	"carbontrace/core/inference"
	"carbontrace/internal/config"
)

var (
	predictMaterial  string
	predictWeight    float64
	predictTransport string
	predictDistance  float64
	predictIntensity string
	predictArtifact  string
)

// predictCmd represents the predict command
var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Estimate the carbon footprint of one product",
	Long: `Run a single prediction against the trained artifact and print the
estimate, its formula breakdown, and the offsetting figures.

Examples:
  carbontrace predict --material Cotton --weight 0.5 --transport AIR --distance 8000
  carbontrace predict --material Steel --weight 12 --transport SEA --distance 15000 --intensity HIGH`,
	RunE: runPredict,
}

func init() {
	predictCmd.Flags().StringVar(&predictMaterial, "material", "", "product material (required)")
	predictCmd.Flags().Float64Var(&predictWeight, "weight", 0, "product weight in kg (required)")
	predictCmd.Flags().StringVar(&predictTransport, "transport", "", "transport mode: AIR, SEA, ROAD or RAIL (required)")
	predictCmd.Flags().Float64Var(&predictDistance, "distance", 0, "transport distance in km")
	predictCmd.Flags().StringVar(&predictIntensity, "intensity", "", "manufacturing intensity: LOW, MEDIUM or HIGH (default MEDIUM)")
	predictCmd.Flags().StringVar(&predictArtifact, "artifact", "", "artifact path (default from config)")
	predictCmd.MarkFlagRequired("material")
	predictCmd.MarkFlagRequired("weight")
	predictCmd.MarkFlagRequired("transport")
}

func runPredict(cmd *cobra.Command, args []string) error {
	svc, err := newEngine()
	if err != nil {
		return err
	}

	result, err := svc.Predict(context.Background(), inference.Query{
		Material:      predictMaterial,
		WeightKg:      predictWeight,
		TransportMode: predictTransport,
		DistanceKm:    predictDistance,
		Intensity:     predictIntensity,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Estimated footprint: %.2f kg CO2e (%.2f - %.2f)\n",
		result.CO2Kg, result.ConfidenceInterval.Lower, result.ConfidenceInterval.Upper)
	fmt.Println("Breakdown:")
	fmt.Printf("  Materials:     %8.2f kg  (%.1f%%)\n", result.Breakdown.MaterialCO2, result.Breakdown.MaterialsPercent)
	fmt.Printf("  Manufacturing: %8.2f kg  (%.1f%%)\n", result.Breakdown.ManufacturingCO2, result.Breakdown.ManufacturingPercent)
	fmt.Printf("  Transport:     %8.2f kg  (%.1f%%)\n", result.Breakdown.TransportCO2, result.Breakdown.TransportPercent)
	fmt.Println("Compensation:")
	fmt.Printf("  %s\n", result.Compensation.Message)
	fmt.Printf("  REC credits: %.3f, vegan days: %.1f\n",
		result.Compensation.RECCredits, result.Compensation.VeganDays)
	fmt.Println("Equivalent to:")
	fmt.Printf("  %s\n", result.Equivalency.Display)
	fmt.Printf("  %d smartphone charges, %.1f washing machine loads\n",
		result.Equivalency.SmartphoneCharges, result.Equivalency.WashingLoads)
	return nil
}

// materialsCmd lists the materials the trained model understands
var materialsCmd = &cobra.Command{
	Use:   "materials",
	Short: "List the materials the trained model understands",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newEngine()
		if err != nil {
			return err
		}
		materials, err := svc.Materials(context.Background())
		if err != nil {
			return err
		}
		for _, m := range materials {
			fmt.Println(m)
		}
		return nil
	},
}

func newEngine() (*inference.Service, error) {
	cfg := config.Get()

	table, err := factors.Load(cfg.Factors.TablePath)
	if err != nil {
		return nil, err
	}

	path := cfg.Model.ArtifactPath
	if predictArtifact != "" {
		path = predictArtifact
	}
	return inference.NewService(path, table)
}
