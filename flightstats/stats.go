package flightstats

import (
	"sort"

	"github.com/robert-bryson/rsmb.tv/flightdata"
	"github.com/robert-bryson/rsmb.tv/pkg/geo"
)

const (
	// MinReportableKm is the floor below which a flight is treated as a
	// data artifact and never reported as the shortest flight.
	MinReportableKm = 50.0

	// topN is the ranking depth for countries, regions, airlines, routes.
	topN = 10

	// topConnections is the ranking depth for a selected airport's
	// origin/destination lists.
	topConnections = 5
)

// CountryStat is one entry in the per-country breakdown.
type CountryStat struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Visits     int    `json:"visits"`
	Arrivals   int    `json:"arrivals"`
	Departures int    `json:"departures"`
}

// RegionStat is one entry in the per-region breakdown.
type RegionStat struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	CountryName string `json:"countryName"`
	Visits      int    `json:"visits"`
}

// AirlineStat is one entry in the per-airline breakdown.
type AirlineStat struct {
	Name    string `json:"name"`
	Flights int    `json:"flights"`
}

// AirportStat is one entry in the per-airport breakdown.
type AirportStat struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Visits     int    `json:"visits"`
	Arrivals   int    `json:"arrivals"`
	Departures int    `json:"departures"`
}

// NotableFlight identifies a distance extreme.
type NotableFlight struct {
	ID          int     `json:"id"`
	Date        string  `json:"date"`
	Airline     string  `json:"airline,omitempty"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	DistanceKm  float64 `json:"distanceKm"`
}

// FlightRef identifies a chronological extreme.
type FlightRef struct {
	ID          int    `json:"id"`
	Date        string `json:"date"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// ElevationExtreme identifies the highest or lowest visited airport.
type ElevationExtreme struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	ElevationFt float64 `json:"elevationFt"`
	ElevationM  float64 `json:"elevationM"`
}

// VisitRef is one visit to the selected airport with its counterpart.
type VisitRef struct {
	Date        string `json:"date"`
	Counterpart string `json:"counterpart"`
}

// ConnectionStat counts flights between the selected airport and one counterpart.
type ConnectionStat struct {
	Code  string `json:"code"`
	Count int    `json:"count"`
}

// SelectedAirportInfo is the deep-dive record for an airport filter,
// scoped to the current filtered flight subset.
type SelectedAirportInfo struct {
	Code               string           `json:"code"`
	Name               string           `json:"name"`
	TotalVisits        int              `json:"totalVisits"`
	Arrivals           int              `json:"arrivals"`
	Departures         int              `json:"departures"`
	FirstVisit         *VisitRef        `json:"firstVisit,omitempty"`
	LastVisit          *VisitRef        `json:"lastVisit,omitempty"`
	ConnectedAirports  int              `json:"connectedAirports"`
	ConnectedCountries []string         `json:"connectedCountries"`
	TopDestinations    []ConnectionStat `json:"topDestinations"`
	TopOrigins         []ConnectionStat `json:"topOrigins"`
	Airlines           []string         `json:"airlines"`
}

// FlightStatistics is the full derived summary for one filter
// combination. Recomputed from scratch on every filter change; an empty
// subset yields zero counts and absent extremes, never an error.
type FlightStatistics struct {
	TotalFlights            int            `json:"totalFlights"`
	TotalAirports           int            `json:"totalAirports"`
	TotalCountries          int            `json:"totalCountries"`
	TotalAirlines           int            `json:"totalAirlines"`
	UniqueRoutes            int            `json:"uniqueRoutes"`
	TotalDistanceKm         float64        `json:"totalDistanceKm"`
	AverageDistanceKm       float64        `json:"averageDistanceKm"`
	EstimatedHours          float64        `json:"estimatedHours"`
	DomesticFlights         int            `json:"domesticFlights"`
	InternationalFlights    int            `json:"internationalFlights"`
	IntercontinentalFlights int            `json:"intercontinentalFlights"`
	ContinentCounts         map[string]int `json:"continentCounts"`
	Years                   []int          `json:"years"`

	TopCountries []CountryStat `json:"topCountries"`
	TopRegions   []RegionStat  `json:"topRegions"`
	TopAirlines  []AirlineStat `json:"topAirlines"`
	TopRoutes    []*Route      `json:"topRoutes"`

	LongestFlight      *NotableFlight    `json:"longestFlight,omitempty"`
	ShortestFlight     *NotableFlight    `json:"shortestFlight,omitempty"`
	BusiestAirport     *AirportStat      `json:"busiestAirport,omitempty"`
	MostVisitedCountry *CountryStat      `json:"mostVisitedCountry,omitempty"`
	HighestAirport     *ElevationExtreme `json:"highestAirport,omitempty"`
	LowestAirport      *ElevationExtreme `json:"lowestAirport,omitempty"`
	FirstFlight        *FlightRef        `json:"firstFlight,omitempty"`
	LastFlight         *FlightRef        `json:"lastFlight,omitempty"`

	SelectedAirport *SelectedAirportInfo `json:"selectedAirport,omitempty"`
}

// Aggregate computes the full statistics record for an
// already-filtered flight subset. The visited map is the index built
// over the *full* flight log; it backs the elevation extremes, which
// only consider codes present in the subset. Ranking ties are broken
// by lexicographic code so results are deterministic.
func Aggregate(flights []flightdata.Flight, catalog map[string]flightdata.Airport, visited map[string]*flightdata.VisitedAirport, f Filter) *FlightStatistics {
	stats := &FlightStatistics{
		ContinentCounts: make(map[string]int),
		Years:           []int{},
		TopCountries:    []CountryStat{},
		TopRegions:      []RegionStat{},
		TopAirlines:     []AirlineStat{},
		TopRoutes:       []*Route{},
	}

	years := make(map[int]bool)
	airlines := make(map[string]int)
	countries := make(map[string]*CountryStat)
	regions := make(map[string]*RegionStat)
	airports := make(map[string]*AirportStat)

	// First-seen-wins display-name caches live inside the stat records:
	// every flight endpoint carries its names redundantly, so the first
	// flight to touch a code fixes the names for that code.
	touchCountry := func(ep flightdata.Endpoint) *CountryStat {
		c, ok := countries[ep.Country]
		if !ok {
			c = &CountryStat{Code: ep.Country, Name: ep.CountryName}
			countries[ep.Country] = c
		}
		return c
	}
	touchRegion := func(ep flightdata.Endpoint) *RegionStat {
		r, ok := regions[ep.Region]
		if !ok {
			r = &RegionStat{Code: ep.Region, Name: ep.RegionName, CountryName: ep.CountryName}
			regions[ep.Region] = r
		}
		return r
	}
	touchAirport := func(ep flightdata.Endpoint) *AirportStat {
		a, ok := airports[ep.Code]
		if !ok {
			a = &AirportStat{Code: ep.Code, Name: ep.Name}
			airports[ep.Code] = a
		}
		return a
	}

	var longest, shortest *NotableFlight
	var first, last *FlightRef
	var firstTime, lastTime int64

	for i := range flights {
		fl := &flights[i]

		years[flightdata.Year(fl.Date)] = true
		if fl.Airline != "" {
			airlines[fl.Airline]++
		}

		origin := touchCountry(fl.Origin)
		origin.Visits++
		origin.Departures++
		dest := touchCountry(fl.Destination)
		dest.Visits++
		dest.Arrivals++

		touchRegion(fl.Origin).Visits++
		touchRegion(fl.Destination).Visits++

		oa := touchAirport(fl.Origin)
		oa.Visits++
		oa.Departures++
		da := touchAirport(fl.Destination)
		da.Visits++
		da.Arrivals++

		stats.ContinentCounts[fl.Origin.Continent]++
		stats.ContinentCounts[fl.Destination.Continent]++

		if fl.Origin.Country == fl.Destination.Country {
			stats.DomesticFlights++
		} else {
			stats.InternationalFlights++
		}
		if fl.Origin.Continent != fl.Destination.Continent {
			stats.IntercontinentalFlights++
		}

		dist := geo.HaversineKm(fl.Origin.Lat, fl.Origin.Lon, fl.Destination.Lat, fl.Destination.Lon)
		stats.TotalDistanceKm += dist
		stats.EstimatedHours += geo.EstimatedFlightHours(dist)

		if longest == nil || dist > longest.DistanceKm {
			longest = notable(fl, dist)
		}
		if dist >= MinReportableKm && (shortest == nil || dist < shortest.DistanceKm) {
			shortest = notable(fl, dist)
		}

		if t, err := flightdata.ParseDate(fl.Date); err == nil {
			unix := t.Unix()
			if first == nil || unix < firstTime {
				first = ref(fl)
				firstTime = unix
			}
			if last == nil || unix > lastTime {
				last = ref(fl)
				lastTime = unix
			}
		}
	}

	routeIndex := BuildRouteIndex(flights)

	stats.TotalFlights = len(flights)
	stats.TotalAirports = len(airports)
	stats.TotalCountries = len(countries)
	stats.TotalAirlines = len(airlines)
	stats.UniqueRoutes = len(routeIndex)
	if len(flights) > 0 {
		stats.AverageDistanceKm = stats.TotalDistanceKm / float64(len(flights))
	}

	for y := range years {
		stats.Years = append(stats.Years, y)
	}
	sort.Ints(stats.Years)

	stats.TopCountries = rankCountries(countries, topN)
	stats.TopRegions = rankRegions(regions, topN)
	stats.TopAirlines = rankAirlines(airlines, topN)
	stats.TopRoutes = TopRoutes(routeIndex, topN)

	stats.LongestFlight = longest
	stats.ShortestFlight = shortest
	stats.FirstFlight = first
	stats.LastFlight = last

	if len(countries) > 0 {
		top := rankCountries(countries, 1)[0]
		stats.MostVisitedCountry = &top
	}
	if len(airports) > 0 {
		stats.BusiestAirport = busiest(airports)
	}
	stats.HighestAirport, stats.LowestAirport = elevationExtremes(airports, catalog, visited)

	if f.Airport != nil {
		stats.SelectedAirport = selectedAirportInfo(*f.Airport, flights, catalog)
	}

	return stats
}

func notable(fl *flightdata.Flight, dist float64) *NotableFlight {
	return &NotableFlight{
		ID:          fl.ID,
		Date:        fl.Date,
		Airline:     fl.Airline,
		Origin:      fl.Origin.Code,
		Destination: fl.Destination.Code,
		DistanceKm:  dist,
	}
}

func ref(fl *flightdata.Flight) *FlightRef {
	return &FlightRef{
		ID:          fl.ID,
		Date:        fl.Date,
		Origin:      fl.Origin.Code,
		Destination: fl.Destination.Code,
	}
}

func rankCountries(countries map[string]*CountryStat, n int) []CountryStat {
	ranked := make([]CountryStat, 0, len(countries))
	for _, c := range countries {
		ranked = append(ranked, *c)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Visits != ranked[j].Visits {
			return ranked[i].Visits > ranked[j].Visits
		}
		return ranked[i].Code < ranked[j].Code
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func rankRegions(regions map[string]*RegionStat, n int) []RegionStat {
	ranked := make([]RegionStat, 0, len(regions))
	for _, r := range regions {
		ranked = append(ranked, *r)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Visits != ranked[j].Visits {
			return ranked[i].Visits > ranked[j].Visits
		}
		return ranked[i].Code < ranked[j].Code
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func rankAirlines(airlines map[string]int, n int) []AirlineStat {
	ranked := make([]AirlineStat, 0, len(airlines))
	for name, count := range airlines {
		ranked = append(ranked, AirlineStat{Name: name, Flights: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Flights != ranked[j].Flights {
			return ranked[i].Flights > ranked[j].Flights
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func busiest(airports map[string]*AirportStat) *AirportStat {
	var best *AirportStat
	for _, a := range airports {
		if best == nil || a.Visits > best.Visits || (a.Visits == best.Visits && a.Code < best.Code) {
			best = a
		}
	}
	out := *best
	return &out
}

// elevationExtremes scans the visited-airport catalog restricted to the
// codes present in the filtered subset.
func elevationExtremes(inView map[string]*AirportStat, catalog map[string]flightdata.Airport, visited map[string]*flightdata.VisitedAirport) (highest, lowest *ElevationExtreme) {
	codes := make([]string, 0, len(inView))
	for code := range inView {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		var a flightdata.Airport
		if v, ok := visited[code]; ok {
			a = v.Airport
		} else if c, ok := catalog[code]; ok {
			a = c
		} else {
			continue
		}

		if highest == nil || a.ElevationFt > highest.ElevationFt {
			highest = &ElevationExtreme{Code: a.Code, Name: a.Name, ElevationFt: a.ElevationFt, ElevationM: a.ElevationM}
		}
		if lowest == nil || a.ElevationFt < lowest.ElevationFt {
			lowest = &ElevationExtreme{Code: a.Code, Name: a.Name, ElevationFt: a.ElevationFt, ElevationM: a.ElevationM}
		}
	}
	return highest, lowest
}

// selectedAirportInfo re-scans the (already airport-filtered) subset to
// split arrivals from departures around one airport. Present with zero
// counts when the filter matched nothing; the caller only invokes this
// when an airport filter is active.
func selectedAirportInfo(code string, flights []flightdata.Flight, catalog map[string]flightdata.Airport) *SelectedAirportInfo {
	info := &SelectedAirportInfo{
		Code:               code,
		ConnectedCountries: []string{},
		TopDestinations:    []ConnectionStat{},
		TopOrigins:         []ConnectionStat{},
		Airlines:           []string{},
	}
	if a, ok := catalog[code]; ok {
		info.Name = a.Name
	}

	destinations := make(map[string]int)
	origins := make(map[string]int)
	connected := make(map[string]bool)
	countries := make(map[string]bool)
	airlines := make(map[string]bool)

	var firstTime, lastTime int64

	for i := range flights {
		fl := &flights[i]

		var counterpart flightdata.Endpoint
		switch code {
		case fl.Origin.Code:
			info.Departures++
			counterpart = fl.Destination
			destinations[counterpart.Code]++
		case fl.Destination.Code:
			info.Arrivals++
			counterpart = fl.Origin
			origins[counterpart.Code]++
		default:
			continue
		}

		info.TotalVisits++
		connected[counterpart.Code] = true
		countries[counterpart.CountryName] = true
		if fl.Airline != "" {
			airlines[fl.Airline] = true
		}

		if t, err := flightdata.ParseDate(fl.Date); err == nil {
			unix := t.Unix()
			if info.FirstVisit == nil || unix < firstTime {
				info.FirstVisit = &VisitRef{Date: fl.Date, Counterpart: counterpart.Code}
				firstTime = unix
			}
			if info.LastVisit == nil || unix > lastTime {
				info.LastVisit = &VisitRef{Date: fl.Date, Counterpart: counterpart.Code}
				lastTime = unix
			}
		}
	}

	info.ConnectedAirports = len(connected)
	for name := range countries {
		info.ConnectedCountries = append(info.ConnectedCountries, name)
	}
	sort.Strings(info.ConnectedCountries)
	for name := range airlines {
		info.Airlines = append(info.Airlines, name)
	}
	sort.Strings(info.Airlines)

	info.TopDestinations = rankConnections(destinations, topConnections)
	info.TopOrigins = rankConnections(origins, topConnections)

	return info
}

func rankConnections(counts map[string]int, n int) []ConnectionStat {
	ranked := make([]ConnectionStat, 0, len(counts))
	for code, count := range counts {
		ranked = append(ranked, ConnectionStat{Code: code, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Code < ranked[j].Code
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
