// Command neoscout explores near-Earth objects and their close approaches
// to Earth, loaded from the NASA Small-Body Database CSV and the CNEOS CAD
// JSON export.
//
// Usage:
//
//	neoscout query --max-distance 0.05 --start-date 2020-01-01 --limit 5
//	neoscout query --hazardous --outfile results.csv
//	neoscout inspect --name Eros --verbose
package main

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/couchcryptid/neoscout/internal/config"
	"github.com/couchcryptid/neoscout/internal/domain"
	"github.com/couchcryptid/neoscout/internal/export"
	"github.com/couchcryptid/neoscout/internal/ingest"
	"github.com/couchcryptid/neoscout/internal/neodb"
	"github.com/couchcryptid/neoscout/internal/observability"
	"github.com/couchcryptid/neoscout/internal/query"
)

// displayLimit caps stdout output when the user gives no explicit limit.
// File output is never implicitly capped.
const displayLimit = 10

const dateLayout = "2006-01-02"

func main() {
	cmd := &cli.Command{
		Name:  "neoscout",
		Usage: "Explore near-Earth objects and their close approaches to Earth",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "neofile",
				Usage:   "Path to the NEO CSV dataset",
				Sources: cli.EnvVars("NEO_CSV_PATH"),
			},
			&cli.StringFlag{
				Name:    "cadfile",
				Usage:   "Path to the close-approach JSON dataset",
				Sources: cli.EnvVars("CAD_JSON_PATH"),
			},
		},
		Commands: []*cli.Command{
			queryCommand(),
			inspectCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("neoscout failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func queryCommand() *cli.Command {
	return &cli.Command{
		Name:  "query",
		Usage: "Filter close approaches and display or export the matches",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Usage: "Approach occurs on this date (YYYY-MM-DD)"},
			&cli.StringFlag{Name: "start-date", Usage: "Approach occurs on or after this date"},
			&cli.StringFlag{Name: "end-date", Usage: "Approach occurs on or before this date"},
			&cli.FloatFlag{Name: "min-distance", Usage: "Minimum approach distance, au"},
			&cli.FloatFlag{Name: "max-distance", Usage: "Maximum approach distance, au"},
			&cli.FloatFlag{Name: "min-velocity", Usage: "Minimum relative velocity, km/s"},
			&cli.FloatFlag{Name: "max-velocity", Usage: "Maximum relative velocity, km/s"},
			&cli.FloatFlag{Name: "min-diameter", Usage: "Minimum NEO diameter, km"},
			&cli.FloatFlag{Name: "max-diameter", Usage: "Maximum NEO diameter, km"},
			&cli.BoolFlag{Name: "hazardous", Usage: "Only potentially hazardous NEOs"},
			&cli.BoolFlag{Name: "not-hazardous", Usage: "Only NEOs not marked potentially hazardous"},
			&cli.IntFlag{Name: "limit", Usage: "Maximum number of results (0 = unlimited)"},
			&cli.StringFlag{Name: "outfile", Aliases: []string{"o"}, Usage: "Write results to this .csv or .json file"},
		},
		Action: runQuery,
	}
}

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Look up a single NEO by designation or name",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "pdes", Usage: "Primary designation to look up"},
			&cli.StringFlag{Name: "name", Usage: "IAU name to look up"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "Also list the NEO's close approaches"},
		},
		Action: runInspect,
	}
}

func runQuery(_ context.Context, cmd *cli.Command) error {
	criteria, err := criteriaFromFlags(cmd)
	if err != nil {
		return err
	}
	if err := criteria.Validate(); err != nil {
		return fmt.Errorf("invalid query criteria: %w", err)
	}

	db, logger, metrics, err := openDatabase(cmd)
	if err != nil {
		return err
	}

	results, err := db.Query(criteria.BuildFilters())
	if err != nil {
		return err
	}

	limit := int(cmd.Int("limit"))
	outfile := cmd.String("outfile")
	if outfile == "" && !cmd.IsSet("limit") {
		limit = displayLimit
	}
	limited := query.Limit(results, limit)

	start := time.Now()
	count := 0
	counted := func(yield func(*domain.CloseApproach) bool) {
		for ca := range limited {
			count++
			if !yield(ca) {
				return
			}
		}
	}

	if outfile != "" {
		if err := export.Write(iter.Seq[*domain.CloseApproach](counted), outfile); err != nil {
			return err
		}
		logger.Info("results written", "outfile", outfile, "count", count)
	} else {
		for ca := range counted {
			fmt.Println(ca)
		}
		if count == 0 {
			fmt.Println("No matching close approaches.")
		}
	}

	metrics.QueryDuration.Observe(time.Since(start).Seconds())
	metrics.ResultsReturned.Observe(float64(count))
	return nil
}

func runInspect(_ context.Context, cmd *cli.Command) error {
	pdes := cmd.String("pdes")
	name := cmd.String("name")
	if (pdes == "") == (name == "") {
		return errors.New("inspect needs exactly one of --pdes or --name")
	}

	db, _, _, err := openDatabase(cmd)
	if err != nil {
		return err
	}

	var neo *domain.NearEarthObject
	if pdes != "" {
		neo, err = db.ByDesignation(pdes)
		if err != nil {
			return fmt.Errorf("designation %q: %w", pdes, err)
		}
	} else {
		neo, err = db.ByName(name)
		if err != nil {
			return fmt.Errorf("name %q: %w", name, err)
		}
	}

	fmt.Println(neo)
	if cmd.Bool("verbose") {
		for _, ca := range neo.Approaches {
			fmt.Printf("- %s\n", ca)
		}
	}
	return nil
}

// openDatabase loads config, both datasets, and assembles the in-memory
// database. Flag paths take precedence over environment configuration.
func openDatabase(cmd *cli.Command) (*neodb.Database, *slog.Logger, *observability.Metrics, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	neoPath := cfg.NEOPath
	if v := cmd.String("neofile"); v != "" {
		neoPath = v
	}
	cadPath := cfg.CADPath
	if v := cmd.String("cadfile"); v != "" {
		cadPath = v
	}

	neos := ingest.LoadNEOs(neoPath, logger, metrics)
	approaches, err := ingest.LoadApproaches(cadPath, logger, metrics)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load approaches: %w", err)
	}

	db := neodb.New(neos, approaches, metrics)
	logger.Debug("database built",
		"neos", db.NEOCount(), "approaches", db.ApproachCount(), "built_at", db.BuiltAt())
	return db, logger, metrics, nil
}

// criteriaFromFlags converts the query flags to filter criteria. Only flags
// the user actually set become criteria; a flag left at its zero value is
// "unspecified", so --not-hazardous remains distinct from omitting both
// hazardous flags.
func criteriaFromFlags(cmd *cli.Command) (query.Criteria, error) {
	var c query.Criteria

	dates := []struct {
		flag string
		dst  **time.Time
	}{
		{"date", &c.Date},
		{"start-date", &c.StartDate},
		{"end-date", &c.EndDate},
	}
	for _, d := range dates {
		if !cmd.IsSet(d.flag) {
			continue
		}
		t, err := time.ParseInLocation(dateLayout, cmd.String(d.flag), time.UTC)
		if err != nil {
			return query.Criteria{}, fmt.Errorf("invalid --%s: want YYYY-MM-DD, got %q", d.flag, cmd.String(d.flag))
		}
		*d.dst = &t
	}

	floats := []struct {
		flag string
		dst  **float64
	}{
		{"min-distance", &c.DistanceMin},
		{"max-distance", &c.DistanceMax},
		{"min-velocity", &c.VelocityMin},
		{"max-velocity", &c.VelocityMax},
		{"min-diameter", &c.DiameterMin},
		{"max-diameter", &c.DiameterMax},
	}
	for _, f := range floats {
		if !cmd.IsSet(f.flag) {
			continue
		}
		v := cmd.Float(f.flag)
		*f.dst = &v
	}

	hazardous := cmd.Bool("hazardous")
	notHazardous := cmd.Bool("not-hazardous")
	if hazardous && notHazardous {
		return query.Criteria{}, errors.New("--hazardous and --not-hazardous are mutually exclusive")
	}
	if hazardous {
		v := true
		c.Hazardous = &v
	}
	if notHazardous {
		v := false
		c.Hazardous = &v
	}

	return c, nil
}
