package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"carbontrace/core/types"
)

// Header is the fixed column order of the dataset dump, matching the
// TrainingRecord schema field for field.
var Header = []string{
	"material",
	"weight_kg",
	"transport_mode",
	"transport_distance_km",
	"manufacturing_intensity",
	"material_co2",
	"manufacturing_co2",
	"transport_co2",
	"total_co2_kg",
}

// WriteCSV writes records as a columnar dump with a header row, for offline
// inspection of what the model was trained on
func WriteCSV(w io.Writer, records []types.TrainingRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Material,
			formatFloat(r.WeightKg),
			r.TransportMode.String(),
			formatFloat(r.DistanceKm),
			r.Intensity.String(),
			formatFloat(r.MaterialCO2),
			formatFloat(r.ManufacturingCO2),
			formatFloat(r.TransportCO2),
			formatFloat(r.TotalCO2Kg),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the dump to a file path
func WriteCSVFile(path string, records []types.TrainingRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
