// Package flightdata holds the flight-history dataset: the airport
// catalog, the flight log, and the derived visited-airport index.
package flightdata

// Airport is immutable reference data from the airport catalog.
type Airport struct {
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Municipality  string  `json:"municipality"`
	Region        string  `json:"region"`
	RegionName    string  `json:"regionName"`
	Country       string  `json:"country"`
	CountryName   string  `json:"countryName"`
	Continent     string  `json:"continent"`
	ContinentName string  `json:"continentName"`
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	ElevationFt   float64 `json:"elevationFt"`
	ElevationM    float64 `json:"elevationM"`
}

// Endpoint is the denormalized airport view carried on each side of a
// flight, so downstream aggregation never re-joins against the catalog.
type Endpoint struct {
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Municipality  string  `json:"municipality"`
	Region        string  `json:"region"`
	RegionName    string  `json:"regionName"`
	Country       string  `json:"country"`
	CountryName   string  `json:"countryName"`
	Continent     string  `json:"continent"`
	ContinentName string  `json:"continentName"`
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
}

// Flight is a single enriched flight-log entry. Immutable once loaded;
// the collection is only ever replaced wholesale.
type Flight struct {
	ID          int      `json:"id"`
	Date        string   `json:"date"` // M/D/YYYY
	Airline     string   `json:"airline"`
	Origin      Endpoint `json:"origin"`
	Destination Endpoint `json:"destination"`
}

// RawFlight is a flight-log entry as stored on disk, endpoints by code only.
type RawFlight struct {
	ID          int    `json:"id"`
	Date        string `json:"date"`
	Airline     string `json:"airline"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// VisitedAirport aggregates every flight touching one airport.
// Recomputed from scratch whenever the flight log changes.
type VisitedAirport struct {
	Airport
	VisitCount     int      `json:"visitCount"`
	ArrivalCount   int      `json:"arrivalCount"`
	DepartureCount int      `json:"departureCount"`
	VisitDates     []string `json:"visitDates"`
}

func endpointFrom(a Airport) Endpoint {
	return Endpoint{
		Code:          a.Code,
		Name:          a.Name,
		Municipality:  a.Municipality,
		Region:        a.Region,
		RegionName:    a.RegionName,
		Country:       a.Country,
		CountryName:   a.CountryName,
		Continent:     a.Continent,
		ContinentName: a.ContinentName,
		Lat:           a.Lat,
		Lon:           a.Lon,
	}
}
