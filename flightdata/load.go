package flightdata

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/robert-bryson/rsmb.tv/pkg/logger"
)

// geoJSON wire types for the airport catalog.
type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string            `json:"type"`
	Properties airportProperties `json:"properties"`
	Geometry   geometry          `json:"geometry"`
}

type geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"` // [lon, lat]
}

type airportProperties struct {
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Municipality  string  `json:"municipality"`
	Region        string  `json:"region"`
	RegionName    string  `json:"regionName"`
	Country       string  `json:"country"`
	CountryName   string  `json:"countryName"`
	Continent     string  `json:"continent"`
	ContinentName string  `json:"continentName"`
	ElevationFt   float64 `json:"elevationFt"`
	ElevationM    float64 `json:"elevationM"`
}

// LoadAirports reads the airport catalog GeoJSON and returns it keyed by code.
func LoadAirports(path string) (map[string]Airport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read airport catalog: %w", err)
	}

	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse airport catalog: %w", err)
	}

	airports := make(map[string]Airport, len(fc.Features))
	for _, f := range fc.Features {
		if f.Properties.Code == "" {
			continue
		}
		if len(f.Geometry.Coordinates) < 2 {
			logger.WithField("code", f.Properties.Code).Warn("Airport feature missing coordinates, skipping")
			continue
		}
		p := f.Properties
		airports[p.Code] = Airport{
			Code:          p.Code,
			Name:          p.Name,
			Municipality:  p.Municipality,
			Region:        p.Region,
			RegionName:    p.RegionName,
			Country:       p.Country,
			CountryName:   p.CountryName,
			Continent:     p.Continent,
			ContinentName: p.ContinentName,
			Lat:           f.Geometry.Coordinates[1],
			Lon:           f.Geometry.Coordinates[0],
			ElevationFt:   p.ElevationFt,
			ElevationM:    p.ElevationM,
		}
	}
	return airports, nil
}

// LoadFlights reads the flight log JSON array.
func LoadFlights(path string) ([]RawFlight, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read flight log: %w", err)
	}

	var flights []RawFlight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, fmt.Errorf("failed to parse flight log: %w", err)
	}
	return flights, nil
}

// Enrich denormalizes both endpoints of every raw flight from the
// catalog. Flights referencing an unknown airport code are dropped;
// that is an upstream data-quality problem, logged and excluded from
// every derived structure.
func Enrich(raw []RawFlight, catalog map[string]Airport) []Flight {
	flights := make([]Flight, 0, len(raw))
	for _, r := range raw {
		origin, ok := catalog[r.Origin]
		if !ok {
			logger.WithFields(map[string]interface{}{
				"date": r.Date, "origin": r.Origin, "destination": r.Destination,
			}).Warn("Dropping flight with unknown origin code")
			continue
		}
		dest, ok := catalog[r.Destination]
		if !ok {
			logger.WithFields(map[string]interface{}{
				"date": r.Date, "origin": r.Origin, "destination": r.Destination,
			}).Warn("Dropping flight with unknown destination code")
			continue
		}

		f := Flight{
			ID:          r.ID,
			Date:        r.Date,
			Airline:     r.Airline,
			Origin:      endpointFrom(origin),
			Destination: endpointFrom(dest),
		}
		if f.ID == 0 {
			f.ID = len(flights) + 1
		}
		flights = append(flights, f)
	}
	return flights
}

// BuildVisitedAirports aggregates the full flight log into one
// VisitedAirport per airport code that appears in at least one flight.
// Visit dates keep flight processing order and may repeat.
func BuildVisitedAirports(flights []Flight, catalog map[string]Airport) map[string]*VisitedAirport {
	visited := make(map[string]*VisitedAirport)

	touch := func(code string) *VisitedAirport {
		if v, ok := visited[code]; ok {
			return v
		}
		v := &VisitedAirport{Airport: catalog[code]}
		visited[code] = v
		return v
	}

	for _, f := range flights {
		origin := touch(f.Origin.Code)
		origin.DepartureCount++
		origin.VisitCount++
		origin.VisitDates = append(origin.VisitDates, f.Date)

		dest := touch(f.Destination.Code)
		dest.ArrivalCount++
		dest.VisitCount++
		dest.VisitDates = append(dest.VisitDates, f.Date)
	}
	return visited
}
