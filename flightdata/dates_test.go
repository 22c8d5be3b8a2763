package flightdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYear(t *testing.T) {
	tests := []struct {
		date     string
		expected int
	}{
		{"1/1/2020", 2020},
		{"12/31/1999", 1999},
		{"3/7/2023", 2023},
		{"garbage", 0},
		{"", 0},
		{"1/2", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Year(tt.date), "Year(%q)", tt.date)
	}
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("6/1/2020")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC), parsed)

	// Zero-padded dates are accepted too
	padded, err := ParseDate("06/01/2020")
	require.NoError(t, err)
	assert.True(t, parsed.Equal(padded))

	_, err = ParseDate("2020-06-01")
	assert.Error(t, err)
}

func TestParseDate_Ordering(t *testing.T) {
	early, err := ParseDate("1/1/2020")
	require.NoError(t, err)
	late, err := ParseDate("6/1/2020")
	require.NoError(t, err)

	assert.True(t, early.Before(late))
}
