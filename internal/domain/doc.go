// Package domain models NASA near-Earth object (NEO) data and close
// approaches to Earth.
//
// # Data Sources
//
// NEO physical and orbital parameters come from the NASA/JPL Small-Body
// Database, exported as CSV. The columns consumed here:
//
//	pdes      primary designation, the unique identifier (e.g. "433")
//	name      IAU name, blank for the vast majority of objects (e.g. "Eros")
//	diameter  diameter in kilometers, blank when never measured
//	pha       potentially hazardous asteroid flag, "Y" or "N"
//
// Close approach records come from the JPL CNEOS close-approach data (CAD)
// API, exported as JSON in its positional layout: a "fields" array naming
// the columns and a "data" array of value rows. The fields consumed:
//
//	des    designation of the approaching object
//	cd     calendar date-time of closest approach
//	dist   nominal approach distance in astronomical units
//	v_rel  velocity relative to Earth in kilometers per second
//
// # Data Conventions
//
// Approach timestamps are UTC at minute precision; the source data carries
// no seconds and none are fabricated. The CAD API emits times as
// "1900-Jan-01 00:11"; the canonical serialized form everywhere in this
// program is "1900-01-01 00:11" ([TimeLayout]). Both layouts are accepted
// on input.
//
// An unknown diameter is represented as NaN, never zero: zero kilometers is
// a measurement, NaN is the absence of one. NaN compares false against any
// threshold, so diameter filters never match objects of unknown size.
//
// A blank or whitespace-only name means the object has no IAU name and is
// stored as the empty string.
//
// # Linkage
//
// A NearEarthObject holds the ordered list of its close approaches, and a
// CloseApproach holds a back-reference to its NEO. Both sides start empty
// and are wired exactly once by the neodb package; construction only
// records the designation key that drives that association.
package domain
