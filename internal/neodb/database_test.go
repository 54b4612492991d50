package neodb_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/neoscout/internal/domain"
	"github.com/couchcryptid/neoscout/internal/neodb"
	"github.com/couchcryptid/neoscout/internal/observability"
	"github.com/couchcryptid/neoscout/internal/query"
)

func neo(designation, name string) *domain.NearEarthObject {
	return domain.NewNEO(domain.RawNEORecord{Designation: designation, Name: name})
}

func approach(t *testing.T, designation, ts, dist, vel string) *domain.CloseApproach {
	t.Helper()
	ca, err := domain.NewCloseApproach(domain.RawApproachRecord{
		Designation: designation, Time: ts, Distance: dist, Velocity: vel,
	})
	require.NoError(t, err)
	return ca
}

func collect(seq func(func(*domain.CloseApproach) bool)) []*domain.CloseApproach {
	var out []*domain.CloseApproach
	for ca := range seq {
		out = append(out, ca)
	}
	return out
}

func buildTestDB(t *testing.T) (*neodb.Database, []*domain.CloseApproach) {
	t.Helper()
	neos := []*domain.NearEarthObject{
		neo("433", "Eros"),
		neo("2101", "Adonis"),
		neo("2020 AB", ""),
	}
	approaches := []*domain.CloseApproach{
		approach(t, "433", "2020-01-01 13:45", "0.3", "5.5"),
		approach(t, "2101", "2020-01-02 00:01", "0.5", "12.0"),
		approach(t, "433", "2020-02-10 09:30", "0.7", "8.2"),
	}
	return neodb.New(neos, approaches, observability.NewMetricsForTesting()), approaches
}

func TestNew_LinkageInvariant(t *testing.T) {
	db, approaches := buildTestDB(t)

	// Every approach's Neo is set and agrees with its designation key.
	for _, ca := range approaches {
		require.NotNil(t, ca.Neo)
		assert.Equal(t, ca.Designation, ca.Neo.Designation)
	}

	// Every NEO holds exactly the approaches that reference it, in load order.
	eros, err := db.ByDesignation("433")
	require.NoError(t, err)
	if diff := cmp.Diff(
		[]*domain.CloseApproach{approaches[0], approaches[2]},
		eros.Approaches,
		cmp.Comparer(func(a, b *domain.CloseApproach) bool { return a == b }),
	); diff != "" {
		t.Errorf("approaches mismatch (-want +got):\n%s", diff)
	}

	unnamed, err := db.ByDesignation("2020 AB")
	require.NoError(t, err)
	assert.Empty(t, unnamed.Approaches)
}

func TestNew_OrphanApproachGetsPlaceholder(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	orphan := approach(t, "99942", "2029-04-13 21:46", "0.00025", "7.42")

	db := neodb.New([]*domain.NearEarthObject{neo("433", "Eros")},
		[]*domain.CloseApproach{orphan}, metrics)

	require.NotNil(t, orphan.Neo)
	assert.Equal(t, "99942", orphan.Neo.Designation)
	assert.Equal(t, "", orphan.Neo.Name)

	// The placeholder is reachable by designation like any loaded NEO.
	placeholder, err := db.ByDesignation("99942")
	require.NoError(t, err)
	assert.Same(t, orphan.Neo, placeholder)
	assert.Equal(t, 2, db.NEOCount())
}

func TestLookups(t *testing.T) {
	db, _ := buildTestDB(t)

	t.Run("by designation", func(t *testing.T) {
		got, err := db.ByDesignation("433")
		require.NoError(t, err)
		assert.Equal(t, "Eros", got.Name)

		_, err = db.ByDesignation("nope")
		assert.ErrorIs(t, err, neodb.ErrNotFound)

		// Exact and case-sensitive.
		_, err = db.ByDesignation("2020 ab")
		assert.ErrorIs(t, err, neodb.ErrNotFound)
	})

	t.Run("by name", func(t *testing.T) {
		got, err := db.ByName("Adonis")
		require.NoError(t, err)
		assert.Equal(t, "2101", got.Designation)

		_, err = db.ByName("adonis")
		assert.ErrorIs(t, err, neodb.ErrNotFound)

		// Unnamed NEOs are excluded from the name index.
		_, err = db.ByName("")
		assert.ErrorIs(t, err, neodb.ErrNotFound)
	})
}

func TestQuery(t *testing.T) {
	db, approaches := buildTestDB(t)

	t.Run("no filters matches everything in load order", func(t *testing.T) {
		seq, err := db.Query(nil)
		require.NoError(t, err)
		got := collect(seq)
		require.Len(t, got, 3)
		for i, ca := range approaches {
			assert.Same(t, ca, got[i])
		}
	})

	t.Run("distance max keeps the first two", func(t *testing.T) {
		max := 0.5
		seq, err := db.Query(query.Criteria{DistanceMax: &max}.BuildFilters())
		require.NoError(t, err)
		got := collect(seq)
		require.Len(t, got, 2)
		assert.Same(t, approaches[0], got[0])
		assert.Same(t, approaches[1], got[1])
	})

	t.Run("conjunction of filters", func(t *testing.T) {
		max := 0.5
		minVel := 10.0
		seq, err := db.Query(query.Criteria{DistanceMax: &max, VelocityMin: &minVel}.BuildFilters())
		require.NoError(t, err)
		got := collect(seq)
		require.Len(t, got, 1)
		assert.Same(t, approaches[1], got[0])
	})

	t.Run("unsupported filter fails before the scan", func(t *testing.T) {
		_, err := db.Query([]query.Filter{{}})
		assert.ErrorIs(t, err, query.ErrUnsupportedField)
	})

	t.Run("scan is lazy", func(t *testing.T) {
		seq, err := db.Query(nil)
		require.NoError(t, err)

		// Pull exactly one record and stop; a lazy scan must not have
		// visited the rest.
		var pulled int
		for range seq {
			pulled++
			break
		}
		assert.Equal(t, 1, pulled)
	})
}

func TestBuiltAt_UsesInjectedClock(t *testing.T) {
	frozen := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	neodb.SetClock(clockwork.NewFakeClockAt(frozen))
	defer neodb.SetClock(nil)

	db := neodb.New(nil, nil, observability.NewMetricsForTesting())
	assert.Equal(t, frozen, db.BuiltAt())
}
