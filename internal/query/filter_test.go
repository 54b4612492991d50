package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/neoscout/internal/domain"
)

func testApproach(t *testing.T, ts string, dist, vel float64, neo *domain.NearEarthObject) *domain.CloseApproach {
	t.Helper()
	parsed, err := domain.ParseApproachTime(ts)
	require.NoError(t, err)
	return &domain.CloseApproach{
		Designation: neo.Designation,
		Time:        parsed,
		Distance:    dist,
		Velocity:    vel,
		Neo:         neo,
	}
}

func TestDateFilter(t *testing.T) {
	eros := domain.NewNEO(domain.RawNEORecord{Designation: "433", Name: "Eros"})
	jan1 := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

	onJan1 := testApproach(t, "2020-01-01 13:45", 0.3, 5.5, eros)
	onJan2 := testApproach(t, "2020-01-02 00:01", 0.3, 5.5, eros)

	t.Run("equality matches any time that day", func(t *testing.T) {
		f := DateFilter(OpEq, jan1)

		got, err := f.Matches(onJan1)
		require.NoError(t, err)
		assert.True(t, got)

		got, err = f.Matches(onJan2)
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("bounds are inclusive by calendar date", func(t *testing.T) {
		start := DateFilter(OpGe, jan1)
		end := DateFilter(OpLe, jan1)

		got, err := start.Matches(onJan1)
		require.NoError(t, err)
		assert.True(t, got, "a 13:45 approach is on or after its own date")

		got, err = end.Matches(onJan1)
		require.NoError(t, err)
		assert.True(t, got, "a 13:45 approach is on or before its own date")

		got, err = end.Matches(onJan2)
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("reference time of day is discarded", func(t *testing.T) {
		noon := time.Date(2020, time.January, 1, 12, 0, 0, 0, time.UTC)
		got, err := DateFilter(OpEq, noon).Matches(onJan1)
		require.NoError(t, err)
		assert.True(t, got)
	})
}

func TestNumericFilters(t *testing.T) {
	eros := domain.NewNEO(domain.RawNEORecord{Designation: "433", Name: "Eros", Diameter: "16.84"})
	ca := testApproach(t, "2020-01-01 13:45", 0.5, 10.0, eros)

	cases := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"distance ge hit", DistanceFilter(OpGe, 0.5), true},
		{"distance le hit", DistanceFilter(OpLe, 0.5), true},
		{"distance ge miss", DistanceFilter(OpGe, 0.6), false},
		{"velocity le hit", VelocityFilter(OpLe, 10.0), true},
		{"velocity ge miss", VelocityFilter(OpGe, 10.1), false},
		{"diameter ge hit", DiameterFilter(OpGe, 10.0), true},
		{"diameter le miss", DiameterFilter(OpLe, 10.0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.filter.Matches(ca)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDiameterFilter_UnknownDiameterNeverMatches(t *testing.T) {
	unnamed := domain.NewNEO(domain.RawNEORecord{Designation: "2020 AB"}) // diameter NaN
	ca := testApproach(t, "2020-01-01 13:45", 0.5, 10.0, unnamed)

	for _, f := range []Filter{
		DiameterFilter(OpGe, 0),
		DiameterFilter(OpLe, 1e9),
		DiameterFilter(OpEq, 0),
	} {
		got, err := f.Matches(ca)
		require.NoError(t, err)
		assert.False(t, got, "filter %s", f)
	}
}

func TestHazardousFilter(t *testing.T) {
	hazardous := domain.NewNEO(domain.RawNEORecord{Designation: "2101", Hazardous: "Y"})
	benign := domain.NewNEO(domain.RawNEORecord{Designation: "433", Hazardous: "N"})

	caHaz := testApproach(t, "2020-01-01 13:45", 0.5, 10.0, hazardous)
	caBenign := testApproach(t, "2020-01-01 13:45", 0.5, 10.0, benign)

	// hazardous=false is an active criterion, not "unspecified": it must
	// reject hazardous approaches and accept the rest.
	f := HazardousFilter(false)

	got, err := f.Matches(caHaz)
	require.NoError(t, err)
	assert.False(t, got)

	got, err = f.Matches(caBenign)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestFilter_Validate(t *testing.T) {
	t.Run("zero-value filter is unsupported", func(t *testing.T) {
		err := Filter{}.Validate()
		assert.ErrorIs(t, err, ErrUnsupportedField)
	})

	t.Run("hazardous only supports equality", func(t *testing.T) {
		err := Filter{Field: FieldHazardous, Op: OpGe}.Validate()
		assert.ErrorIs(t, err, ErrUnsupportedField)
	})

	t.Run("matches surfaces the error, not a silent false", func(t *testing.T) {
		eros := domain.NewNEO(domain.RawNEORecord{Designation: "433"})
		_, err := Filter{Field: Field(42), Op: OpEq}.Matches(testApproach(t, "2020-01-01 13:45", 0.5, 10, eros))
		assert.ErrorIs(t, err, ErrUnsupportedField)
	})

	t.Run("constructed filters all validate", func(t *testing.T) {
		for _, f := range []Filter{
			DateFilter(OpEq, time.Now()),
			DistanceFilter(OpGe, 0.1),
			VelocityFilter(OpLe, 20),
			DiameterFilter(OpGe, 1),
			HazardousFilter(true),
		} {
			assert.NoError(t, f.Validate(), "filter %s", f)
		}
	})
}

func TestMatchesAll(t *testing.T) {
	eros := domain.NewNEO(domain.RawNEORecord{Designation: "433", Name: "Eros", Diameter: "16.84"})
	ca := testApproach(t, "2020-01-01 13:45", 0.5, 10.0, eros)

	assert.True(t, MatchesAll(nil, ca), "empty filter set is vacuously true")
	assert.True(t, MatchesAll([]Filter{DistanceFilter(OpLe, 0.5), VelocityFilter(OpGe, 5)}, ca))
	assert.False(t, MatchesAll([]Filter{DistanceFilter(OpLe, 0.5), VelocityFilter(OpGe, 50)}, ca))
}
