package ingest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/couchcryptid/neoscout/internal/domain"
	"github.com/couchcryptid/neoscout/internal/observability"
)

// cadDocument is the positional layout of the CNEOS CAD API export: a
// fields array naming column positions and a data array of value rows.
type cadDocument struct {
	Fields []string `json:"fields"`
	Data   [][]any  `json:"data"`
}

// LoadApproaches reads close approaches from the CAD JSON at path.
//
// File-level failures (unreadable path, invalid JSON, missing field names)
// log and yield an empty slice. A record whose mandatory distance or
// velocity cannot be coerced is a hard error that aborts the load.
func LoadApproaches(path string, logger *slog.Logger, metrics *observability.Metrics) ([]*domain.CloseApproach, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Error("open cad json failed", "path", path, "error", err)
		metrics.IngestErrors.Inc()
		return nil, nil
	}

	var doc cadDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		logger.Error("parse cad json failed", "path", path, "error", err)
		metrics.IngestErrors.Inc()
		return nil, nil
	}

	cols := columnIndex(doc.Fields)
	var missing []string
	for _, name := range []string{"des", "cd", "dist", "v_rel"} {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		logger.Error("cad json missing fields", "path", path, "fields", missing)
		metrics.IngestErrors.Inc()
		return nil, nil
	}

	approaches := make([]*domain.CloseApproach, 0, len(doc.Data))
	for i, row := range doc.Data {
		ca, err := domain.NewCloseApproach(domain.RawApproachRecord{
			Designation: value(row, cols["des"]),
			Time:        value(row, cols["cd"]),
			Distance:    value(row, cols["dist"]),
			Velocity:    value(row, cols["v_rel"]),
		})
		if err != nil {
			return nil, fmt.Errorf("cad record %d: %w", i, err)
		}
		approaches = append(approaches, ca)
	}

	metrics.ApproachesLoaded.Add(float64(len(approaches)))
	logger.Info("approaches loaded", "path", path, "count", len(approaches))
	return approaches, nil
}

// value renders a positional cell as text. The CAD API emits strings, but
// a numeric cell is tolerated and formatted back to its shortest decimal.
func value(row []any, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	switch v := row[i].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
