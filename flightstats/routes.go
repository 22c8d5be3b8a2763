// Package flightstats is the flight-history aggregation engine: route
// indexing, filtering, and derived statistics. Every function is a pure
// transformation of the dataset; all state lives in the caller.
package flightstats

import (
	"sort"

	"github.com/robert-bryson/rsmb.tv/flightdata"
)

// Route aggregates all flights on one undirected airport pair.
// Origin/Destination keep the direction of the first flight that
// established the key; direction is cosmetic only.
type Route struct {
	Key         string   `json:"key"`
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	Count       int      `json:"count"`
	Years       []int    `json:"years"`
	Dates       []string `json:"dates"`
}

// RouteIndex maps canonical route key to its aggregate record.
type RouteIndex map[string]*Route

// RouteKey returns the canonical undirected key for an airport pair:
// the two codes sorted lexicographically, hyphen-joined. Symmetric in
// its arguments.
func RouteKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "-" + b
}

// BuildRouteIndex builds the route table in a single pass over a flight
// collection. It is invoked once over the full log (filter-stable route
// weights) and once over the filtered subset (in-view rankings).
func BuildRouteIndex(flights []flightdata.Flight) RouteIndex {
	index := make(RouteIndex)
	yearSeen := make(map[string]map[int]bool)

	for _, f := range flights {
		key := RouteKey(f.Origin.Code, f.Destination.Code)
		route, ok := index[key]
		if !ok {
			route = &Route{
				Key:         key,
				Origin:      f.Origin.Code,
				Destination: f.Destination.Code,
			}
			index[key] = route
			yearSeen[key] = make(map[int]bool)
		}

		route.Count++
		route.Dates = append(route.Dates, f.Date)
		if year := flightdata.Year(f.Date); !yearSeen[key][year] {
			yearSeen[key][year] = true
			route.Years = append(route.Years, year)
		}
	}

	for _, route := range index {
		sort.Ints(route.Years)
	}
	return index
}

// TopRoutes returns up to n routes ranked by count descending, ties
// broken by lexicographic key.
func TopRoutes(index RouteIndex, n int) []*Route {
	routes := make([]*Route, 0, len(index))
	for _, r := range index {
		routes = append(routes, r)
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Count != routes[j].Count {
			return routes[i].Count > routes[j].Count
		}
		return routes[i].Key < routes[j].Key
	})
	if n > 0 && len(routes) > n {
		routes = routes[:n]
	}
	return routes
}

// MaxRouteCount returns the largest count in the index, 0 when empty.
func MaxRouteCount(index RouteIndex) int {
	max := 0
	for _, r := range index {
		if r.Count > max {
			max = r.Count
		}
	}
	return max
}
