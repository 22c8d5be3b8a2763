package flightdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() map[string]Airport {
	return map[string]Airport{
		"JFK": {Code: "JFK", Name: "JFK Intl", Country: "US"},
		"LAX": {Code: "LAX", Name: "LAX Intl", Country: "US"},
		"ORD": {Code: "ORD", Name: "O'Hare Intl", Country: "US"},
	}
}

func TestStore_Load(t *testing.T) {
	airportsPath := writeFixture(t, "airports.geojson", airportFixture)
	flightsPath := writeFixture(t, "flights.json", flightFixture)

	store := NewStore()
	assert.False(t, store.Loaded())

	require.NoError(t, store.Load(airportsPath, flightsPath))
	assert.True(t, store.Loaded())

	airports, flights, visited := store.Counts()
	assert.Equal(t, 2, airports)
	assert.Equal(t, 2, flights) // third fixture flight is dropped on enrichment
	assert.Equal(t, 2, visited)
}

func TestStore_ReplaceFlights(t *testing.T) {
	store := NewStoreFromData(testCatalog(), []RawFlight{
		{Date: "1/1/2020", Origin: "JFK", Destination: "LAX"},
	})

	require.NoError(t, store.ReplaceFlights([]RawFlight{
		{Date: "3/1/2021", Origin: "JFK", Destination: "ORD"},
		{Date: "4/1/2021", Origin: "ORD", Destination: "JFK"},
	}))

	_, flights, visited := store.Snapshot()
	assert.Len(t, flights, 2)
	assert.Contains(t, visited, "ORD")
	assert.NotContains(t, visited, "LAX")
}

func TestStore_ReplaceFlights_RequiresCatalog(t *testing.T) {
	store := NewStore()
	err := store.ReplaceFlights([]RawFlight{{Date: "1/1/2020", Origin: "JFK", Destination: "LAX"}})
	assert.Error(t, err)
}

func TestStore_Years(t *testing.T) {
	store := NewStoreFromData(testCatalog(), []RawFlight{
		{Date: "3/1/2021", Origin: "JFK", Destination: "ORD"},
		{Date: "1/1/2020", Origin: "JFK", Destination: "LAX"},
		{Date: "6/1/2020", Origin: "LAX", Destination: "JFK"},
	})

	assert.Equal(t, []int{2020, 2021}, store.Years())
}

func TestStore_AirportList_SortedByCode(t *testing.T) {
	store := NewStoreFromData(testCatalog(), nil)

	list := store.AirportList()
	require.Len(t, list, 3)
	assert.Equal(t, "JFK", list[0].Code)
	assert.Equal(t, "LAX", list[1].Code)
	assert.Equal(t, "ORD", list[2].Code)
}

func TestStore_VisitedList_BusiestFirst(t *testing.T) {
	store := NewStoreFromData(testCatalog(), []RawFlight{
		{Date: "1/1/2020", Origin: "JFK", Destination: "LAX"},
		{Date: "2/1/2020", Origin: "LAX", Destination: "JFK"},
		{Date: "3/1/2020", Origin: "JFK", Destination: "ORD"},
	})

	list := store.VisitedList()
	require.Len(t, list, 3)
	assert.Equal(t, "JFK", list[0].Code)
	assert.Equal(t, 3, list[0].VisitCount)
	assert.Equal(t, "LAX", list[1].Code)
	assert.Equal(t, 2, list[1].VisitCount)
	assert.Equal(t, "ORD", list[2].Code)
	assert.Equal(t, 1, list[2].VisitCount)
}
