package flightstats

import (
	"github.com/robert-bryson/rsmb.tv/flightdata"
)

// Shared airport fixtures with real coordinates so distance-dependent
// assertions hold.
var fixtureAirports = map[string]flightdata.Airport{
	"JFK": {
		Code: "JFK", Name: "John F Kennedy International Airport", Municipality: "New York",
		Region: "US-NY", RegionName: "New York", Country: "US", CountryName: "United States",
		Continent: "NA", ContinentName: "North America",
		Lat: 40.6413, Lon: -73.7781, ElevationFt: 13, ElevationM: 4,
	},
	"LGA": {
		Code: "LGA", Name: "LaGuardia Airport", Municipality: "New York",
		Region: "US-NY", RegionName: "New York", Country: "US", CountryName: "United States",
		Continent: "NA", ContinentName: "North America",
		Lat: 40.7769, Lon: -73.8740, ElevationFt: 21, ElevationM: 6,
	},
	"LAX": {
		Code: "LAX", Name: "Los Angeles International Airport", Municipality: "Los Angeles",
		Region: "US-CA", RegionName: "California", Country: "US", CountryName: "United States",
		Continent: "NA", ContinentName: "North America",
		Lat: 33.9425, Lon: -118.4081, ElevationFt: 125, ElevationM: 38,
	},
	"ORD": {
		Code: "ORD", Name: "Chicago O'Hare International Airport", Municipality: "Chicago",
		Region: "US-IL", RegionName: "Illinois", Country: "US", CountryName: "United States",
		Continent: "NA", ContinentName: "North America",
		Lat: 41.9742, Lon: -87.9073, ElevationFt: 672, ElevationM: 205,
	},
	"DEN": {
		Code: "DEN", Name: "Denver International Airport", Municipality: "Denver",
		Region: "US-CO", RegionName: "Colorado", Country: "US", CountryName: "United States",
		Continent: "NA", ContinentName: "North America",
		Lat: 39.8561, Lon: -104.6737, ElevationFt: 5434, ElevationM: 1656,
	},
	"CDG": {
		Code: "CDG", Name: "Charles de Gaulle International Airport", Municipality: "Paris",
		Region: "FR-IDF", RegionName: "Île-de-France", Country: "FR", CountryName: "France",
		Continent: "EU", ContinentName: "Europe",
		Lat: 49.0097, Lon: 2.5479, ElevationFt: 392, ElevationM: 119,
	},
	"LHR": {
		Code: "LHR", Name: "London Heathrow Airport", Municipality: "London",
		Region: "GB-ENG", RegionName: "England", Country: "GB", CountryName: "United Kingdom",
		Continent: "EU", ContinentName: "Europe",
		Lat: 51.4700, Lon: -0.4543, ElevationFt: 83, ElevationM: 25,
	},
}

func endpoint(code string) flightdata.Endpoint {
	a := fixtureAirports[code]
	return flightdata.Endpoint{
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

func flight(id int, date, airline, origin, dest string) flightdata.Flight {
	return flightdata.Flight{
		ID:          id,
		Date:        date,
		Airline:     airline,
		Origin:      endpoint(origin),
		Destination: endpoint(dest),
	}
}

func visitedIndex(flights []flightdata.Flight) map[string]*flightdata.VisitedAirport {
	return flightdata.BuildVisitedAirports(flights, fixtureAirports)
}
