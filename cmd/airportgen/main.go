// Command airportgen converts an airport catalog CSV into the GeoJSON
// FeatureCollection the server loads at startup. One-shot ETL; run it
// whenever the catalog spreadsheet changes.
//
//	go run ./cmd/airportgen -in airports.csv -out data/airports.geojson
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/jszwec/csvutil"
)

type airportRow struct {
	Code          string  `csv:"code"`
	Name          string  `csv:"name"`
	Municipality  string  `csv:"municipality"`
	Region        string  `csv:"region"`
	RegionName    string  `csv:"regionName"`
	Country       string  `csv:"country"`
	CountryName   string  `csv:"countryName"`
	Continent     string  `csv:"continent"`
	ContinentName string  `csv:"continentName"`
	Lat           float64 `csv:"lat"`
	Lon           float64 `csv:"lon"`
	ElevationFt   float64 `csv:"elevationFt"`
}

type feature struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   geometry               `json:"geometry"`
}

type geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

const feetPerMeter = 3.28084

func main() {
	in := flag.String("in", "", "airport catalog CSV")
	out := flag.String("out", "data/airports.geojson", "output GeoJSON path")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: airportgen -in airports.csv [-out data/airports.geojson]")
		os.Exit(2)
	}

	if err := run(*in, *out); err != nil {
		fmt.Fprintf(os.Stderr, "airportgen: %v\n", err)
		os.Exit(1)
	}
}

func run(in, out string) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	dec, err := csvutil.NewDecoder(csv.NewReader(f))
	if err != nil {
		return fmt.Errorf("reading CSV header: %w", err)
	}
	var rows []airportRow
	if err := dec.Decode(&rows); err != nil {
		return fmt.Errorf("decoding CSV: %w", err)
	}

	fc := featureCollection{Type: "FeatureCollection"}
	seen := make(map[string]bool)
	for _, row := range rows {
		if row.Code == "" {
			return fmt.Errorf("row with empty code (name %q)", row.Name)
		}
		if seen[row.Code] {
			return fmt.Errorf("duplicate airport code %s", row.Code)
		}
		seen[row.Code] = true
		if row.Lat < -90 || row.Lat > 90 || row.Lon < -180 || row.Lon > 180 {
			return fmt.Errorf("airport %s has out-of-range coordinates (%f, %f)", row.Code, row.Lat, row.Lon)
		}

		fc.Features = append(fc.Features, feature{
			Type: "Feature",
			Properties: map[string]interface{}{
				"code":          row.Code,
				"name":          row.Name,
				"municipality":  row.Municipality,
				"region":        row.Region,
				"regionName":    row.RegionName,
				"country":       row.Country,
				"countryName":   row.CountryName,
				"continent":     row.Continent,
				"continentName": row.ContinentName,
				"elevationFt":   row.ElevationFt,
				"elevationM":    math.Round(row.ElevationFt / feetPerMeter),
			},
			Geometry: geometry{
				Type:        "Point",
				Coordinates: []float64{row.Lon, row.Lat},
			},
		})
	}

	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}

	fmt.Printf("wrote %d airports to %s\n", len(fc.Features), out)
	return nil
}
