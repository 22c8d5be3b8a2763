package sheetsync

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/robert-bryson/rsmb.tv/flightdata"
)

// dateShape is the sheet's date column format: M/D/YYYY, no zero padding required.
var dateShape = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)

// Validate applies the sheet QA rules row by row and converts the
// survivors into raw flights with sequential 1-based ids. Rejection
// reasons are collected per row; a bad row never aborts the run.
// Exact duplicates (same date, airline, and endpoints) are rejected;
// the sheet records each leg once, so a repeat is a paste error.
func Validate(rows []Row, catalog map[string]flightdata.Airport) ([]flightdata.RawFlight, *Report) {
	report := &Report{FetchedRows: len(rows)}
	flights := make([]flightdata.RawFlight, 0, len(rows))
	seen := make(map[string]int)

	for i, row := range rows {
		if err := validateRow(row, catalog); err != nil {
			report.Rejected++
			report.Errors = append(report.Errors, RowError{Row: i + 1, Reason: err.Error()})
			continue
		}

		key := strings.Join([]string{
			strings.TrimSpace(row.Date),
			strings.TrimSpace(row.Airline),
			normalizeCode(row.Origin),
			normalizeCode(row.Destination),
		}, "|")
		if prev, ok := seen[key]; ok {
			report.Rejected++
			report.Errors = append(report.Errors, RowError{Row: i + 1, Reason: fmt.Sprintf("duplicate of row %d", prev)})
			continue
		}
		seen[key] = i + 1

		report.Accepted++
		flights = append(flights, flightdata.RawFlight{
			ID:          len(flights) + 1,
			Date:        strings.TrimSpace(row.Date),
			Airline:     strings.TrimSpace(row.Airline),
			Origin:      normalizeCode(row.Origin),
			Destination: normalizeCode(row.Destination),
		})
	}
	return flights, report
}

func validateRow(row Row, catalog map[string]flightdata.Airport) error {
	date := strings.TrimSpace(row.Date)
	if !dateShape.MatchString(date) {
		return fmt.Errorf("date %q is not M/D/YYYY", row.Date)
	}
	if _, err := flightdata.ParseDate(date); err != nil {
		return fmt.Errorf("date %q is not a real date", row.Date)
	}

	origin := normalizeCode(row.Origin)
	dest := normalizeCode(row.Destination)
	if origin == "" || dest == "" {
		return fmt.Errorf("missing airport code")
	}
	if origin == dest {
		return fmt.Errorf("origin and destination are both %s", origin)
	}
	if _, ok := catalog[origin]; !ok {
		return fmt.Errorf("unknown origin code %s", origin)
	}
	if _, ok := catalog[dest]; !ok {
		return fmt.Errorf("unknown destination code %s", dest)
	}
	return nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
