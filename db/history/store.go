// Package history persists prediction queries for later analytics. The
// inference engine itself never writes here; the API layer logs each
// successful prediction after the result is produced.
package history

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS prediction_log (
	id                    INTEGER PRIMARY KEY AUTOINCREMENT,
	product_name          TEXT NOT NULL,
	material              TEXT NOT NULL,
	weight_kg             REAL NOT NULL,
	transport_mode        TEXT NOT NULL,
	transport_distance_km REAL NOT NULL,
	predicted_co2_kg      REAL NOT NULL,
	material_co2          REAL,
	manufacturing_co2     REAL,
	transport_co2         REAL,
	trees_to_offset       REAL,
	created_at            TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_prediction_log_created_at
	ON prediction_log (created_at DESC);
`

// Entry is one logged prediction query
type Entry struct {
	ID               int64     `json:"id"`
	ProductName      string    `json:"product_name"`
	Material         string    `json:"material"`
	WeightKg         float64   `json:"weight_kg"`
	TransportMode    string    `json:"transport_mode"`
	DistanceKm       float64   `json:"transport_distance_km"`
	PredictedCO2Kg   float64   `json:"predicted_co2_kg"`
	MaterialCO2      float64   `json:"material_co2"`
	ManufacturingCO2 float64   `json:"manufacturing_co2"`
	TransportCO2     float64   `json:"transport_co2"`
	TreesToOffset    float64   `json:"trees_to_offset"`
	CreatedAt        time.Time `json:"created_at"`
}

// Summary aggregates the logged queries
type Summary struct {
	Count      int64   `json:"count"`
	TotalCO2Kg float64 `json:"total_co2_kg"`
	MeanCO2Kg  float64 `json:"mean_co2_kg"`
}

// Store is a sqlite-backed prediction log
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the prediction log at path
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert appends one entry to the log
func (s *Store) Insert(ctx context.Context, e *Entry) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO prediction_log (
			product_name, material, weight_kg, transport_mode,
			transport_distance_km, predicted_co2_kg,
			material_co2, manufacturing_co2, transport_co2, trees_to_offset
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ProductName, e.Material, e.WeightKg, e.TransportMode,
		e.DistanceKm, e.PredictedCO2Kg,
		e.MaterialCO2, e.ManufacturingCO2, e.TransportCO2, e.TreesToOffset,
	)
	if err != nil {
		return err
	}
	e.ID, _ = res.LastInsertId()
	return nil
}

// Recent returns the most recent entries, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, product_name, material, weight_kg, transport_mode,
		       transport_distance_km, predicted_co2_kg,
		       material_co2, manufacturing_co2, transport_co2,
		       trees_to_offset, created_at
		FROM prediction_log
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.ProductName, &e.Material, &e.WeightKg, &e.TransportMode,
			&e.DistanceKm, &e.PredictedCO2Kg,
			&e.MaterialCO2, &e.ManufacturingCO2, &e.TransportCO2,
			&e.TreesToOffset, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Summarize aggregates all logged queries
func (s *Store) Summarize(ctx context.Context) (*Summary, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(predicted_co2_kg), 0),
		       COALESCE(AVG(predicted_co2_kg), 0)
		FROM prediction_log`)

	var sum Summary
	if err := row.Scan(&sum.Count, &sum.TotalCO2Kg, &sum.MeanCO2Kg); err != nil {
		return nil, err
	}
	return &sum, nil
}
