// Package neodb holds the in-memory database of near-Earth objects and
// close approaches: it links the two independently-keyed datasets by
// designation, indexes NEOs for exact lookup, and runs lazy filtered scans
// over the approach collection.
package neodb

import (
	"errors"
	"iter"
	"time"

	"github.com/couchcryptid/neoscout/internal/domain"
	"github.com/couchcryptid/neoscout/internal/observability"
	"github.com/couchcryptid/neoscout/internal/query"
)

// ErrNotFound reports a designation or name lookup with no matching NEO.
// A miss is an expected outcome, not a failure mode.
var ErrNotFound = errors.New("not found")

// Database owns the full NEO and close-approach collections for one query
// session. It is built once by New and immutable afterward; reads need no
// locking because there is no concurrent-write path at all.
type Database struct {
	neos       []*domain.NearEarthObject
	approaches []*domain.CloseApproach

	byDesignation map[string]*domain.NearEarthObject
	byName        map[string]*domain.NearEarthObject

	builtAt time.Time
}

// New builds the database from the two raw collections, establishing the
// linkage invariant: every approach ends up with a non-nil Neo whose
// designation equals the approach's key, and every NEO's Approaches holds
// exactly the approaches that reference it, in load order.
//
// The designation index is built first in a single pass so each approach
// links in O(1); approach counts run orders of magnitude above NEO counts,
// so a per-approach linear lookup would dominate the build. An approach
// whose designation has no NEO record gets a synthesized placeholder
// carrying only that designation — orphan approach data is surfaced via the
// metrics counter, never silently dropped. The name index is a final pass
// over the complete NEO set, placeholders included, skipping unnamed
// objects.
func New(neos []*domain.NearEarthObject, approaches []*domain.CloseApproach, metrics *observability.Metrics) *Database {
	db := &Database{
		neos:          neos,
		approaches:    approaches,
		byDesignation: make(map[string]*domain.NearEarthObject, len(neos)),
		byName:        make(map[string]*domain.NearEarthObject),
		builtAt:       clock.Now(),
	}

	for _, neo := range neos {
		db.byDesignation[neo.Designation] = neo
	}

	for _, ca := range approaches {
		neo, ok := db.byDesignation[ca.Designation]
		if !ok {
			neo = &domain.NearEarthObject{Designation: ca.Designation}
			db.byDesignation[ca.Designation] = neo
			db.neos = append(db.neos, neo)
			metrics.OrphanApproaches.Inc()
		}
		ca.Neo = neo
		neo.Approaches = append(neo.Approaches, ca)
	}

	for _, neo := range db.neos {
		if neo.Name != "" {
			db.byName[neo.Name] = neo
		}
	}

	return db
}

// ByDesignation returns the NEO with the exact primary designation, or
// ErrNotFound. Matching is case-sensitive.
func (db *Database) ByDesignation(designation string) (*domain.NearEarthObject, error) {
	neo, ok := db.byDesignation[designation]
	if !ok {
		return nil, ErrNotFound
	}
	return neo, nil
}

// ByName returns the NEO with the exact IAU name, or ErrNotFound. Unnamed
// objects are never reachable through this index.
func (db *Database) ByName(name string) (*domain.NearEarthObject, error) {
	neo, ok := db.byName[name]
	if !ok {
		return nil, ErrNotFound
	}
	return neo, nil
}

// Query returns a lazy stream of the close approaches matching every filter
// (logical AND; an empty set matches everything), preserving original load
// order. The filter set is validated up front so an unsupported criterion
// fails the query before any record is scanned. The stream is single-pass:
// each record is tested only as the consumer pulls, so a limited consumer
// never pays for the full scan.
func (db *Database) Query(filters []query.Filter) (iter.Seq[*domain.CloseApproach], error) {
	if err := query.ValidateAll(filters); err != nil {
		return nil, err
	}

	return func(yield func(*domain.CloseApproach) bool) {
		for _, ca := range db.approaches {
			if !query.MatchesAll(filters, ca) {
				continue
			}
			if !yield(ca) {
				return
			}
		}
	}, nil
}

// NEOCount returns the number of NEOs, synthesized placeholders included.
func (db *Database) NEOCount() int { return len(db.neos) }

// ApproachCount returns the number of loaded close approaches.
func (db *Database) ApproachCount() int { return len(db.approaches) }

// BuiltAt returns when the database was assembled.
func (db *Database) BuiltAt() time.Time { return db.builtAt }
