package flightviz

import (
	"fmt"

	"github.com/robert-bryson/rsmb.tv/flightdata"
	"github.com/robert-bryson/rsmb.tv/flightstats"
	"github.com/robert-bryson/rsmb.tv/pkg/geo"
)

// ColorMode selects how arcs are colored.
type ColorMode string

const (
	ColorModeConstant  ColorMode = "constant"
	ColorModeYear      ColorMode = "year"
	ColorModeFrequency ColorMode = "frequency"
	ColorModeAirline   ColorMode = "airline"
)

// ParseColorMode maps a query value onto a ColorMode, defaulting to constant.
func ParseColorMode(s string) ColorMode {
	switch ColorMode(s) {
	case ColorModeYear, ColorModeFrequency, ColorModeAirline, ColorModeConstant:
		return ColorMode(s)
	default:
		return ColorModeConstant
	}
}

// Selection is the renderer's current highlight target. Zero value
// means nothing is selected.
type Selection struct {
	AirportCode string
	RouteKey    string
}

func (s Selection) active() bool {
	return s.AirportCode != "" || s.RouteKey != ""
}

// Arc is one directed flight edge for the globe renderer.
type Arc struct {
	FlightID  int     `json:"flightId"`
	RouteKey  string  `json:"routeKey"`
	StartLat  float64 `json:"startLat"`
	StartLon  float64 `json:"startLng"`
	EndLat    float64 `json:"endLat"`
	EndLon    float64 `json:"endLng"`
	Color     string  `json:"color"`
	Stroke    float64 `json:"stroke"`
	AnimateMs float64 `json:"animateMs"`
	Label     string  `json:"label"`
	Dimmed    bool    `json:"dimmed"`
}

// Point is one visited-airport marker for the globe renderer.
type Point struct {
	Code        string  `json:"code"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lng"`
	Size        float64 `json:"size"`
	Color       string  `json:"color"`
	Label       string  `json:"label"`
	Visits      int     `json:"visits"`
	Highlighted bool    `json:"highlighted"`
	Dimmed      bool    `json:"dimmed"`
}

// Globe is the full renderer payload for one filter combination.
type Globe struct {
	Arcs   []Arc   `json:"arcs"`
	Points []Point `json:"points"`
}

// Project maps the filtered flights onto arcs and points. Stroke widths
// come from the route index built over the *full* flight log so route
// weight stays stable as filters change; point sizes come from the
// full visited-airport index for the same reason.
func Project(flights []flightdata.Flight, visited map[string]*flightdata.VisitedAirport, fullIndex flightstats.RouteIndex, mode ColorMode, sel Selection) Globe {
	globe := Globe{
		Arcs:   make([]Arc, 0, len(flights)),
		Points: []Point{},
	}

	for i := range flights {
		fl := &flights[i]
		key := flightstats.RouteKey(fl.Origin.Code, fl.Destination.Code)

		globalCount := 1
		if r, ok := fullIndex[key]; ok {
			globalCount = r.Count
		}

		dist := geo.HaversineKm(fl.Origin.Lat, fl.Origin.Lon, fl.Destination.Lat, fl.Destination.Lon)

		arc := Arc{
			FlightID:  fl.ID,
			RouteKey:  key,
			StartLat:  fl.Origin.Lat,
			StartLon:  fl.Origin.Lon,
			EndLat:    fl.Destination.Lat,
			EndLon:    fl.Destination.Lon,
			Color:     arcColor(fl, globalCount, fullIndex, mode),
			Stroke:    StrokeWidth(globalCount),
			AnimateMs: dist / geo.CruiseSpeedKmh * 1000,
			Label:     fmt.Sprintf("%s → %s (%s)", fl.Origin.Code, fl.Destination.Code, fl.Date),
		}
		if sel.active() {
			arc.Dimmed = !arcSelected(fl, key, sel)
		}
		globe.Arcs = append(globe.Arcs, arc)
	}

	busiest := maxVisits(visited)
	for _, code := range visitedCodes(flights) {
		v, ok := visited[code]
		if !ok {
			continue
		}
		point := Point{
			Code:   v.Code,
			Lat:    v.Lat,
			Lon:    v.Lon,
			Size:   MarkerSize(v.VisitCount),
			Color:  FrequencyColor(v.VisitCount, busiest),
			Label:  fmt.Sprintf("%s — %s (%d visits)", v.Code, v.Name, v.VisitCount),
			Visits: v.VisitCount,
		}
		if sel.active() {
			if pointSelected(code, sel) {
				point.Highlighted = true
				point.Size = MaxPointSize
			} else {
				point.Dimmed = true
			}
		}
		globe.Points = append(globe.Points, point)
	}

	return globe
}

func arcColor(fl *flightdata.Flight, globalCount int, fullIndex flightstats.RouteIndex, mode ColorMode) string {
	switch mode {
	case ColorModeYear:
		return YearColor(flightdata.Year(fl.Date))
	case ColorModeFrequency:
		return FrequencyColor(globalCount, flightstats.MaxRouteCount(fullIndex))
	case ColorModeAirline:
		return AirlineColor(fl.Airline)
	default:
		return DefaultArcColor
	}
}

func arcSelected(fl *flightdata.Flight, key string, sel Selection) bool {
	if sel.RouteKey != "" && key == sel.RouteKey {
		return true
	}
	if sel.AirportCode != "" && (fl.Origin.Code == sel.AirportCode || fl.Destination.Code == sel.AirportCode) {
		return true
	}
	return false
}

func pointSelected(code string, sel Selection) bool {
	if sel.AirportCode != "" && code == sel.AirportCode {
		return true
	}
	if sel.RouteKey != "" {
		// Route keys are "AAA-BBB"; both endpoints count as selected.
		if len(sel.RouteKey) > len(code) &&
			(sel.RouteKey[:len(code)] == code && sel.RouteKey[len(code)] == '-' ||
				sel.RouteKey[len(sel.RouteKey)-len(code):] == code && sel.RouteKey[len(sel.RouteKey)-len(code)-1] == '-') {
			return true
		}
	}
	return false
}

// visitedCodes returns the airport codes present in the flight subset,
// first-appearance order, deduplicated.
func visitedCodes(flights []flightdata.Flight) []string {
	seen := make(map[string]bool)
	codes := []string{}
	for i := range flights {
		for _, code := range []string{flights[i].Origin.Code, flights[i].Destination.Code} {
			if !seen[code] {
				seen[code] = true
				codes = append(codes, code)
			}
		}
	}
	return codes
}

func maxVisits(visited map[string]*flightdata.VisitedAirport) int {
	max := 0
	for _, v := range visited {
		if v.VisitCount > max {
			max = v.VisitCount
		}
	}
	return max
}
