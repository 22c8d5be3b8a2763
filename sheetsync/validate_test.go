package sheetsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-bryson/rsmb.tv/flightdata"
)

func testCatalog() map[string]flightdata.Airport {
	return map[string]flightdata.Airport{
		"JFK": {Code: "JFK", Name: "John F Kennedy International Airport", Lat: 40.6413, Lon: -73.7781},
		"LAX": {Code: "LAX", Name: "Los Angeles International Airport", Lat: 33.9425, Lon: -118.4081},
		"ORD": {Code: "ORD", Name: "Chicago O'Hare International Airport", Lat: 41.9742, Lon: -87.9073},
	}
}

func TestValidate_AcceptsCleanRows(t *testing.T) {
	rows := []Row{
		{Date: "1/5/2020", Airline: "Delta", Origin: "JFK", Destination: "LAX"},
		{Date: "12/31/2021", Airline: "", Origin: "lax", Destination: " ord "},
	}

	flights, report := Validate(rows, testCatalog())

	require.Len(t, flights, 2)
	assert.Equal(t, 2, report.FetchedRows)
	assert.Equal(t, 2, report.Accepted)
	assert.Equal(t, 0, report.Rejected)
	assert.Empty(t, report.Errors)

	assert.Equal(t, 1, flights[0].ID)
	assert.Equal(t, 2, flights[1].ID)

	// Codes are normalized to uppercase, whitespace trimmed
	assert.Equal(t, "LAX", flights[1].Origin)
	assert.Equal(t, "ORD", flights[1].Destination)
}

func TestValidate_RejectsBadRows(t *testing.T) {
	rows := []Row{
		{Date: "1/5/2020", Airline: "Delta", Origin: "JFK", Destination: "LAX"}, // good
		{Date: "2020-01-05", Origin: "JFK", Destination: "LAX"},                 // wrong date shape
		{Date: "2/30/2020", Origin: "JFK", Destination: "LAX"},                  // impossible date
		{Date: "1/5/2020", Origin: "", Destination: "LAX"},                      // missing code
		{Date: "1/5/2020", Origin: "JFK", Destination: "JFK"},                   // self-loop
		{Date: "1/5/2020", Origin: "ZZZ", Destination: "LAX"},                   // unknown origin
		{Date: "1/5/2020", Origin: "JFK", Destination: "QQQ"},                   // unknown destination
	}

	flights, report := Validate(rows, testCatalog())

	require.Len(t, flights, 1)
	assert.Equal(t, 7, report.FetchedRows)
	assert.Equal(t, 1, report.Accepted)
	assert.Equal(t, 6, report.Rejected)
	require.Len(t, report.Errors, 6)

	// Row numbers are 1-based data rows
	assert.Equal(t, 2, report.Errors[0].Row)
	assert.Contains(t, report.Errors[0].Reason, "M/D/YYYY")
	assert.Equal(t, 5, report.Errors[3].Row)
	assert.Contains(t, report.Errors[3].Reason, "origin and destination")
	assert.Contains(t, report.Errors[4].Reason, "unknown origin")
}

func TestValidate_SequentialIDsSkipRejects(t *testing.T) {
	rows := []Row{
		{Date: "1/5/2020", Origin: "JFK", Destination: "LAX"},
		{Date: "bad", Origin: "JFK", Destination: "LAX"},
		{Date: "2/5/2020", Origin: "LAX", Destination: "ORD"},
	}

	flights, _ := Validate(rows, testCatalog())

	require.Len(t, flights, 2)
	assert.Equal(t, 1, flights[0].ID)
	assert.Equal(t, 2, flights[1].ID)
}

func TestValidate_RejectsDuplicateRows(t *testing.T) {
	rows := []Row{
		{Date: "1/5/2020", Airline: "Delta", Origin: "JFK", Destination: "LAX"},
		{Date: "1/5/2020", Airline: "Delta", Origin: "JFK", Destination: "LAX"},
		{Date: "1/5/2020", Airline: "Delta", Origin: " jfk", Destination: "lax "}, // same after normalization
		{Date: "1/5/2020", Airline: "United", Origin: "JFK", Destination: "LAX"},  // different airline, kept
		{Date: "1/5/2020", Airline: "Delta", Origin: "LAX", Destination: "JFK"},   // reverse leg, kept
	}

	flights, report := Validate(rows, testCatalog())

	require.Len(t, flights, 3)
	assert.Equal(t, 3, report.Accepted)
	assert.Equal(t, 2, report.Rejected)
	require.Len(t, report.Errors, 2)
	assert.Equal(t, 2, report.Errors[0].Row)
	assert.Equal(t, "duplicate of row 1", report.Errors[0].Reason)
	assert.Equal(t, 3, report.Errors[1].Row)
	assert.Equal(t, "duplicate of row 1", report.Errors[1].Reason)
}

func TestValidate_Empty(t *testing.T) {
	flights, report := Validate(nil, testCatalog())
	assert.Empty(t, flights)
	assert.Equal(t, 0, report.FetchedRows)
	assert.Equal(t, 0, report.Accepted)
}
