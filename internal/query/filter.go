// Package query provides attribute filters over close approaches, the
// conjunctive match logic the database's query scan runs per record, and
// the result limiter.
package query

import (
	"errors"
	"fmt"
	"time"

	"github.com/couchcryptid/neoscout/internal/domain"
)

// ErrUnsupportedField reports a filter over an attribute the engine cannot
// extract. It is a configuration error and is surfaced before any scan
// starts, never swallowed as a non-match.
var ErrUnsupportedField = errors.New("unsupported filter field")

// Field selects which attribute of a close approach (or its linked NEO) a
// filter examines.
type Field int

const (
	fieldUnset Field = iota
	FieldDate        // UTC calendar date of the approach
	FieldDistance    // approach distance, au
	FieldVelocity    // relative velocity, km/s
	FieldDiameter    // linked NEO diameter, km
	FieldHazardous   // linked NEO hazardous flag
)

func (f Field) String() string {
	switch f {
	case FieldDate:
		return "date"
	case FieldDistance:
		return "distance"
	case FieldVelocity:
		return "velocity"
	case FieldDiameter:
		return "diameter"
	case FieldHazardous:
		return "hazardous"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// Op is the comparison a filter applies between the extracted attribute and
// its reference value.
type Op int

const (
	OpEq Op = iota // attribute == reference
	OpGe           // attribute >= reference
	OpLe           // attribute <= reference
)

func (op Op) String() string {
	switch op {
	case OpEq:
		return "=="
	case OpGe:
		return ">="
	case OpLe:
		return "<="
	default:
		return fmt.Sprintf("op(%d)", int(op))
	}
}

// Filter is one search criterion: extract one attribute from a close
// approach and compare it against a reference value. A single
// field-parameterized type replaces a subclass-per-attribute hierarchy;
// the five attribute kinds are fixed and enumerable.
type Filter struct {
	Field Field
	Op    Op

	date    time.Time
	number  float64
	boolean bool
}

// DateFilter compares the UTC calendar date of the approach: the time of
// day is discarded, so an OpEq filter matches any approach during that day
// and OpGe/OpLe bounds are inclusive of the whole day.
func DateFilter(op Op, date time.Time) Filter {
	return Filter{Field: FieldDate, Op: op, date: dayOf(date)}
}

// DistanceFilter compares the nominal approach distance in au.
func DistanceFilter(op Op, au float64) Filter {
	return Filter{Field: FieldDistance, Op: op, number: au}
}

// VelocityFilter compares the relative velocity in km/s.
func VelocityFilter(op Op, kms float64) Filter {
	return Filter{Field: FieldVelocity, Op: op, number: kms}
}

// DiameterFilter compares the linked NEO's diameter in km. An unknown
// (NaN) diameter never matches.
func DiameterFilter(op Op, km float64) Filter {
	return Filter{Field: FieldDiameter, Op: op, number: km}
}

// HazardousFilter matches approaches whose linked NEO's hazardous flag
// equals the given value. hazardous=false is an active criterion that
// rejects hazardous objects; "don't care" is expressed by omitting the
// filter entirely.
func HazardousFilter(hazardous bool) Filter {
	return Filter{Field: FieldHazardous, Op: OpEq, boolean: hazardous}
}

// Validate reports whether the filter's field and operator combination is
// one the engine can evaluate.
func (f Filter) Validate() error {
	switch f.Field {
	case FieldDate, FieldDistance, FieldVelocity, FieldDiameter:
	case FieldHazardous:
		if f.Op != OpEq {
			return fmt.Errorf("%w: hazardous supports equality only, got %s", ErrUnsupportedField, f.Op)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedField, f.Field)
	}
	switch f.Op {
	case OpEq, OpGe, OpLe:
		return nil
	default:
		return fmt.Errorf("%w: operator %s", ErrUnsupportedField, f.Op)
	}
}

// Matches evaluates `extract(ca) OP reference`. It validates the filter
// first; callers that scan many records should validate once and use a
// pre-validated filter set via MatchesAll.
func (f Filter) Matches(ca *domain.CloseApproach) (bool, error) {
	if err := f.Validate(); err != nil {
		return false, err
	}
	return f.matches(ca), nil
}

// matches assumes Validate has passed.
func (f Filter) matches(ca *domain.CloseApproach) bool {
	switch f.Field {
	case FieldDate:
		return compareTime(dayOf(ca.Time), f.Op, f.date)
	case FieldDistance:
		return compareFloat(ca.Distance, f.Op, f.number)
	case FieldVelocity:
		return compareFloat(ca.Velocity, f.Op, f.number)
	case FieldDiameter:
		// NaN compares false everywhere: unknown diameters match no bound.
		return compareFloat(ca.Neo.Diameter, f.Op, f.number)
	case FieldHazardous:
		return ca.Neo.Hazardous == f.boolean
	default:
		return false
	}
}

func (f Filter) String() string {
	switch f.Field {
	case FieldDate:
		return fmt.Sprintf("date %s %s", f.Op, f.date.Format("2006-01-02"))
	case FieldHazardous:
		return fmt.Sprintf("hazardous %s %t", f.Op, f.boolean)
	default:
		return fmt.Sprintf("%s %s %g", f.Field, f.Op, f.number)
	}
}

// ValidateAll validates every filter in the set, so a scan can rely on
// matches never failing mid-stream.
func ValidateAll(filters []Filter) error {
	for _, f := range filters {
		if err := f.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// MatchesAll reports whether the approach satisfies every filter (logical
// AND), short-circuiting on the first miss. An empty set matches
// everything. The filter set must have passed ValidateAll.
func MatchesAll(filters []Filter, ca *domain.CloseApproach) bool {
	for _, f := range filters {
		if !f.matches(ca) {
			return false
		}
	}
	return true
}

func compareFloat(attr float64, op Op, ref float64) bool {
	switch op {
	case OpEq:
		return attr == ref
	case OpGe:
		return attr >= ref
	default:
		return attr <= ref
	}
}

func compareTime(attr time.Time, op Op, ref time.Time) bool {
	switch op {
	case OpEq:
		return attr.Equal(ref)
	case OpGe:
		return !attr.Before(ref)
	default:
		return !attr.After(ref)
	}
}

// dayOf truncates a timestamp to its UTC calendar date.
func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
