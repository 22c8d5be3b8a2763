package flightdata

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the flight-log date format (M/D/YYYY, no zero padding).
const DateLayout = "1/2/2006"

// Year extracts the year from an M/D/YYYY date string. The flight log
// is validated upstream, so no shape checking happens here; malformed
// input yields 0.
func Year(date string) int {
	parts := strings.Split(date, "/")
	if len(parts) != 3 {
		return 0
	}
	y, _ := strconv.Atoi(parts[2])
	return y
}

// ParseDate parses an M/D/YYYY date string for chronological comparison.
func ParseDate(date string) (time.Time, error) {
	return time.Parse(DateLayout, date)
}
