package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeLayout is the canonical minute-precision form for approach times,
// used for all serialized output.
const TimeLayout = "2006-01-02 15:04"

// cadTimeLayout is the layout the CNEOS CAD API emits ("1900-Jan-01 00:11").
const cadTimeLayout = "2006-Jan-02 15:04"

// RawApproachRecord mirrors one positional row of the CAD JSON, already
// mapped from column positions to field names by the ingest layer.
type RawApproachRecord struct {
	Designation string // des field
	Time        string // cd field
	Distance    string // dist field, astronomical units
	Velocity    string // v_rel field, km/s
}

// CloseApproach is one recorded or predicted pass of an NEO near Earth.
type CloseApproach struct {
	// Designation is the identity key of the approaching object. It drives
	// association and is retained afterward for display.
	Designation string

	// Time of closest approach, UTC at minute precision.
	Time time.Time

	// Distance is the nominal approach distance in astronomical units.
	Distance float64

	// Velocity relative to Earth in kilometers per second.
	Velocity float64

	// Neo is the back-reference to the approaching object. Nil at
	// construction; set exactly once by neodb during association and not
	// reassigned afterward.
	Neo *NearEarthObject
}

// NewCloseApproach builds a CloseApproach from a raw CAD record.
//
// Unlike diameter on the NEO side, distance and velocity are mandatory: a
// close approach without them is scientifically meaningless, so a coercion
// failure is an error rather than a degraded value. The same holds for an
// unparseable timestamp.
func NewCloseApproach(rec RawApproachRecord) (*CloseApproach, error) {
	t, err := ParseApproachTime(rec.Time)
	if err != nil {
		return nil, fmt.Errorf("approach %q: %w", rec.Designation, err)
	}

	dist, err := strconv.ParseFloat(strings.TrimSpace(rec.Distance), 64)
	if err != nil {
		return nil, fmt.Errorf("approach %q: bad distance %q", rec.Designation, rec.Distance)
	}

	vel, err := strconv.ParseFloat(strings.TrimSpace(rec.Velocity), 64)
	if err != nil {
		return nil, fmt.Errorf("approach %q: bad velocity %q", rec.Designation, rec.Velocity)
	}

	return &CloseApproach{
		Designation: rec.Designation,
		Time:        t,
		Distance:    dist,
		Velocity:    vel,
	}, nil
}

// ParseApproachTime parses an approach timestamp in either the canonical
// layout ("1900-01-01 00:11") or the CAD API layout ("1900-Jan-01 00:11").
// The result is always UTC.
func ParseApproachTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(TimeLayout, s, time.UTC); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(cadTimeLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad approach time %q", s)
	}
	return t, nil
}

// TimeStr returns the approach time in the canonical serialized form.
func (ca *CloseApproach) TimeStr() string {
	return ca.Time.UTC().Format(TimeLayout)
}

// String renders a one-line human-readable summary for CLI output.
// Association must have run; an unlinked approach falls back to its
// designation key.
func (ca *CloseApproach) String() string {
	who := ca.Designation
	if ca.Neo != nil {
		who = ca.Neo.Fullname()
	}
	return fmt.Sprintf("At %s, %s approaches Earth at a distance of %.2f au and a velocity of %.2f km/s.",
		ca.TimeStr(), who, ca.Distance, ca.Velocity)
}
