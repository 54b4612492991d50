// Package export serializes query results to CSV or JSON files.
//
// The two formats deliberately differ, per their conventions: the row
// format spells hazardous as the strings "True"/"False" and an unknown
// diameter as the NaN text marker, while the JSON format uses a real
// boolean and null.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"iter"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/couchcryptid/neoscout/internal/domain"
)

// csvHeader is the fixed column order of the row-oriented export.
var csvHeader = []string{
	"datetime_utc", "distance_au", "velocity_km_s",
	"designation", "name", "diameter_km", "potentially_hazardous",
}

// Write serializes the result stream to path, dispatching on the file
// extension: .csv or .json.
func Write(results iter.Seq[*domain.CloseApproach], path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return WriteCSV(results, path)
	case ".json":
		return WriteJSON(results, path)
	default:
		return fmt.Errorf("unsupported output format %q (want .csv or .json)", filepath.Ext(path))
	}
}

// WriteCSV writes one row per close approach, flattening the linked NEO
// into the trailing columns. An unnamed NEO serializes as an empty name;
// an unknown diameter serializes as "NaN".
func WriteCSV(results iter.Seq[*domain.CloseApproach], path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for ca := range results {
		hazardous := "False"
		if ca.Neo.Hazardous {
			hazardous = "True"
		}
		row := []string{
			ca.TimeStr(),
			formatFloat(ca.Distance),
			formatFloat(ca.Velocity),
			ca.Neo.Designation,
			ca.Neo.Name,
			formatFloat(ca.Neo.Diameter),
			hazardous,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}
	return f.Close()
}

type jsonNEO struct {
	Designation          string   `json:"designation"`
	Name                 string   `json:"name"`
	DiameterKm           *float64 `json:"diameter_km"`
	PotentiallyHazardous bool     `json:"potentially_hazardous"`
}

type jsonApproach struct {
	DatetimeUTC string  `json:"datetime_utc"`
	DistanceAU  float64 `json:"distance_au"`
	VelocityKmS float64 `json:"velocity_km_s"`
	Neo         jsonNEO `json:"neo"`
}

// WriteJSON writes the results as an array of objects, each nesting its
// NEO. Unknown diameters become null; a NaN literal is not valid JSON.
func WriteJSON(results iter.Seq[*domain.CloseApproach], path string) error {
	// Materializing here is fine: the consumer side of the stream may hold
	// the whole (already limited) result set.
	out := []jsonApproach{}
	for ca := range results {
		var diameter *float64
		if !math.IsNaN(ca.Neo.Diameter) {
			d := ca.Neo.Diameter
			diameter = &d
		}
		out = append(out, jsonApproach{
			DatetimeUTC: ca.TimeStr(),
			DistanceAU:  ca.Distance,
			VelocityKmS: ca.Velocity,
			Neo: jsonNEO{
				Designation:          ca.Neo.Designation,
				Name:                 ca.Neo.Name,
				DiameterKm:           diameter,
				PotentiallyHazardous: ca.Neo.Hazardous,
			},
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json output: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write json output: %w", err)
	}
	return nil
}

// formatFloat renders the shortest decimal that round-trips; NaN renders
// as the "NaN" marker.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
