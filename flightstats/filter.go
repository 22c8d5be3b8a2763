package flightstats

import (
	"github.com/robert-bryson/rsmb.tv/flightdata"
)

// Filter is the active filter set. Nil dimensions are no-ops. An empty
// airline string is a real filter value (flights logged without an
// airline), distinct from no airline filter at all.
type Filter struct {
	Year    *int
	Airline *string
	Airport *string
}

// IsZero reports whether no filter dimension is active.
func (f Filter) IsZero() bool {
	return f.Year == nil && f.Airline == nil && f.Airport == nil
}

// Apply narrows the flight collection one stage at a time: year, then
// airport (either endpoint), then airline (exact match). Each stage
// feeds the next, so the result only ever shrinks. An empty result is
// valid, not an error.
func (f Filter) Apply(flights []flightdata.Flight) []flightdata.Flight {
	result := flights

	if f.Year != nil {
		year := *f.Year
		filtered := make([]flightdata.Flight, 0, len(result))
		for _, fl := range result {
			if flightdata.Year(fl.Date) == year {
				filtered = append(filtered, fl)
			}
		}
		result = filtered
	}

	if f.Airport != nil {
		code := *f.Airport
		filtered := make([]flightdata.Flight, 0, len(result))
		for _, fl := range result {
			if fl.Origin.Code == code || fl.Destination.Code == code {
				filtered = append(filtered, fl)
			}
		}
		result = filtered
	}

	if f.Airline != nil {
		airline := *f.Airline
		filtered := make([]flightdata.Flight, 0, len(result))
		for _, fl := range result {
			if fl.Airline == airline {
				filtered = append(filtered, fl)
			}
		}
		result = filtered
	}

	return result
}
