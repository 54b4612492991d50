// Package ingest reads the two raw datasets: the Small-Body Database CSV of
// near-Earth objects and the CNEOS CAD JSON of close approaches.
//
// File-level failures (missing path, malformed header, broken rows) follow
// a best-effort contract: they are logged and produce an empty collection
// instead of aborting the process, so a broken NEO file still allows
// running against approach data alone until association. A mandatory-field
// failure inside an approach record is different — it aborts that load,
// because an approach without numeric distance or velocity is meaningless.
package ingest

import (
	"encoding/csv"
	"log/slog"
	"math"
	"os"

	"github.com/couchcryptid/neoscout/internal/domain"
	"github.com/couchcryptid/neoscout/internal/observability"
)

// LoadNEOs reads near-Earth objects from the CSV at path. The header row
// names the columns; only pdes, name, diameter, and pha are consumed and
// pdes is the only one that must be present. Failures yield an empty slice.
func LoadNEOs(path string, logger *slog.Logger, metrics *observability.Metrics) []*domain.NearEarthObject {
	f, err := os.Open(path)
	if err != nil {
		logger.Error("open neo csv failed", "path", path, "error", err)
		metrics.IngestErrors.Inc()
		return nil
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		logger.Error("parse neo csv failed", "path", path, "error", err)
		metrics.IngestErrors.Inc()
		return nil
	}
	if len(rows) == 0 {
		logger.Error("neo csv has no header row", "path", path)
		metrics.IngestErrors.Inc()
		return nil
	}

	cols := columnIndex(rows[0])
	pdes, ok := cols["pdes"]
	if !ok {
		logger.Error("neo csv missing pdes column", "path", path)
		metrics.IngestErrors.Inc()
		return nil
	}

	neos := make([]*domain.NearEarthObject, 0, len(rows)-1)
	for _, row := range rows[1:] {
		neo := domain.NewNEO(domain.RawNEORecord{
			Designation: cell(row, pdes),
			Name:        cellNamed(row, cols, "name"),
			Diameter:    cellNamed(row, cols, "diameter"),
			Hazardous:   cellNamed(row, cols, "pha"),
		})
		if math.IsNaN(neo.Diameter) {
			metrics.DiameterDefaults.Inc()
		}
		neos = append(neos, neo)
	}

	metrics.NEOsLoaded.Add(float64(len(neos)))
	logger.Info("neos loaded", "path", path, "count", len(neos))
	return neos
}

// columnIndex maps header names to positions.
func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	return cols
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func cellNamed(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok {
		return ""
	}
	return cell(row, i)
}
