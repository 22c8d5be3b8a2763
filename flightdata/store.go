package flightdata

import (
	"fmt"
	"sort"
	"sync"
)

// Store holds the in-memory dataset behind a read-write lock. Reads hand
// out the current snapshot; Reload and ReplaceFlights swap it atomically.
type Store struct {
	mu       sync.RWMutex
	airports map[string]Airport
	flights  []Flight
	visited  map[string]*VisitedAirport
	loaded   bool
}

// NewStore creates an empty dataset store.
func NewStore() *Store {
	return &Store{}
}

// NewStoreFromData builds a loaded store from in-memory collections,
// bypassing the filesystem. Used by tests and tooling.
func NewStoreFromData(airports map[string]Airport, raw []RawFlight) *Store {
	s := &Store{airports: airports}
	s.flights = Enrich(raw, airports)
	s.visited = BuildVisitedAirports(s.flights, airports)
	s.loaded = true
	return s
}

// Load reads the airport catalog and flight log from disk, enriches the
// flights, and swaps the whole dataset in.
func (s *Store) Load(airportsPath, flightsPath string) error {
	airports, err := LoadAirports(airportsPath)
	if err != nil {
		return err
	}
	raw, err := LoadFlights(flightsPath)
	if err != nil {
		return err
	}

	flights := Enrich(raw, airports)
	visited := BuildVisitedAirports(flights, airports)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.airports = airports
	s.flights = flights
	s.visited = visited
	s.loaded = true
	return nil
}

// ReplaceFlights swaps in a new raw flight log against the already
// loaded catalog. Used by the sheet sync; the catalog itself never
// changes at runtime.
func (s *Store) ReplaceFlights(raw []RawFlight) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.airports == nil {
		return fmt.Errorf("airport catalog not loaded")
	}
	s.flights = Enrich(raw, s.airports)
	s.visited = BuildVisitedAirports(s.flights, s.airports)
	s.loaded = true
	return nil
}

// Snapshot returns the current dataset. The returned values are shared,
// never mutated after publication; callers treat them as read-only.
func (s *Store) Snapshot() (map[string]Airport, []Flight, map[string]*VisitedAirport) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.airports, s.flights, s.visited
}

// Loaded reports whether a dataset has been loaded.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Counts returns the catalog, flight, and visited-airport sizes.
func (s *Store) Counts() (airports, flights, visited int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.airports), len(s.flights), len(s.visited)
}

// AirportList returns the catalog sorted by code.
func (s *Store) AirportList() []Airport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]Airport, 0, len(s.airports))
	for _, a := range s.airports {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return list
}

// VisitedList returns the visited airports sorted by visit count
// descending, ties by code.
func (s *Store) VisitedList() []*VisitedAirport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]*VisitedAirport, 0, len(s.visited))
	for _, v := range s.visited {
		list = append(list, v)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].VisitCount != list[j].VisitCount {
			return list[i].VisitCount > list[j].VisitCount
		}
		return list[i].Code < list[j].Code
	})
	return list
}

// Years returns the distinct years in the full flight log, ascending.
func (s *Store) Years() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[int]bool)
	for _, f := range s.flights {
		seen[Year(f.Date)] = true
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
