package query

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Criteria collects the up-to-ten optional search criteria from the command
// line. A nil pointer means "not specified" — distinct from a zero value:
// Hazardous pointing at false is an active filter rejecting hazardous
// objects, while a nil Hazardous matches both.
type Criteria struct {
	Date      *time.Time
	StartDate *time.Time
	EndDate   *time.Time

	DistanceMin *float64
	DistanceMax *float64
	VelocityMin *float64
	VelocityMax *float64
	DiameterMin *float64
	DiameterMax *float64

	Hazardous *bool
}

// Validate rejects criteria that cannot describe any close approach:
// negative distances, velocities, or diameters, and an inverted date range.
func (c Criteria) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.DistanceMin, validation.Min(0.0)),
		validation.Field(&c.DistanceMax, validation.Min(0.0)),
		validation.Field(&c.VelocityMin, validation.Min(0.0)),
		validation.Field(&c.VelocityMax, validation.Min(0.0)),
		validation.Field(&c.DiameterMin, validation.Min(0.0)),
		validation.Field(&c.DiameterMax, validation.Min(0.0)),
	)
	if err != nil {
		return err
	}
	if c.StartDate != nil && c.EndDate != nil && c.StartDate.After(*c.EndDate) {
		return fmt.Errorf("start date %s is after end date %s",
			c.StartDate.Format("2006-01-02"), c.EndDate.Format("2006-01-02"))
	}
	return nil
}

// BuildFilters produces one filter per specified criterion. The order of
// the result is immaterial; the query applies them conjunctively. All
// criteria unspecified yields an empty set, which matches every approach.
func (c Criteria) BuildFilters() []Filter {
	var filters []Filter

	if c.Date != nil {
		filters = append(filters, DateFilter(OpEq, *c.Date))
	}
	if c.StartDate != nil {
		filters = append(filters, DateFilter(OpGe, *c.StartDate))
	}
	if c.EndDate != nil {
		filters = append(filters, DateFilter(OpLe, *c.EndDate))
	}
	if c.DistanceMin != nil {
		filters = append(filters, DistanceFilter(OpGe, *c.DistanceMin))
	}
	if c.DistanceMax != nil {
		filters = append(filters, DistanceFilter(OpLe, *c.DistanceMax))
	}
	if c.VelocityMin != nil {
		filters = append(filters, VelocityFilter(OpGe, *c.VelocityMin))
	}
	if c.VelocityMax != nil {
		filters = append(filters, VelocityFilter(OpLe, *c.VelocityMax))
	}
	if c.DiameterMin != nil {
		filters = append(filters, DiameterFilter(OpGe, *c.DiameterMin))
	}
	if c.DiameterMax != nil {
		filters = append(filters, DiameterFilter(OpLe, *c.DiameterMax))
	}
	if c.Hazardous != nil {
		filters = append(filters, HazardousFilter(*c.Hazardous))
	}

	return filters
}
