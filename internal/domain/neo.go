package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RawNEORecord mirrors one row of the Small-Body Database CSV. All fields
// arrive as text; construction applies coercion and defaults.
type RawNEORecord struct {
	Designation string // pdes column
	Name        string // name column, often blank
	Diameter    string // diameter column, kilometers, often blank
	Hazardous   string // pha column, "Y" or "N"
}

// NearEarthObject is a single near-Earth object: its identity, physical
// parameters, and the ordered collection of its close approaches.
type NearEarthObject struct {
	// Designation is the unique primary designation. Uniqueness across the
	// loaded set is a precondition of the source data, not validated here.
	Designation string

	// Name is the IAU name, or "" when the object is unnamed.
	Name string

	// Diameter in kilometers; NaN when unknown.
	Diameter float64

	// Hazardous reports the potentially-hazardous-asteroid classification.
	Hazardous bool

	// Approaches lists this object's close approaches in load order.
	// Empty at construction; populated by neodb during association.
	Approaches []*CloseApproach
}

// NewNEO builds a NearEarthObject from a raw CSV record.
//
// A blank or whitespace-only name normalizes to "". A blank or unparseable
// diameter normalizes to NaN rather than failing: diameter is a best-effort
// field and most objects in the dataset have never been measured.
func NewNEO(rec RawNEORecord) *NearEarthObject {
	return &NearEarthObject{
		Designation: rec.Designation,
		Name:        strings.TrimSpace(rec.Name),
		Diameter:    parseDiameter(rec.Diameter),
		Hazardous:   rec.Hazardous == "Y",
	}
}

// parseDiameter coerces the diameter column to kilometers, returning NaN
// for blank or malformed input.
func parseDiameter(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Fullname returns "designation (name)" for named objects, or just the
// designation otherwise.
func (n *NearEarthObject) Fullname() string {
	if n.Name != "" {
		return fmt.Sprintf("%s (%s)", n.Designation, n.Name)
	}
	return n.Designation
}

// DisplayName returns the IAU name, or "no name" for unnamed objects.
func (n *NearEarthObject) DisplayName() string {
	if n.Name == "" {
		return "no name"
	}
	return n.Name
}

// String renders a one-line human-readable summary for CLI output.
func (n *NearEarthObject) String() string {
	status := "is not"
	if n.Hazardous {
		status = "is"
	}
	if math.IsNaN(n.Diameter) {
		return fmt.Sprintf("NEO %s has an unknown diameter and %s potentially hazardous.", n.Fullname(), status)
	}
	return fmt.Sprintf("NEO %s has a diameter of %.3f km and %s potentially hazardous.", n.Fullname(), n.Diameter, status)
}
