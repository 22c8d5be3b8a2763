// Package flightviz maps the filtered dataset into renderer-friendly
// primitives for the 3D globe: colored arcs and sized points. It is a
// pure projection; the renderer owns all interaction state.
package flightviz

import (
	"fmt"
	"math"
)

// Point size bounds for airport markers. Square-root scaling keeps
// low-traffic airports visible without letting hubs dominate.
const (
	MinPointSize = 0.15
	MaxPointSize = 0.9

	MinStrokeWidth = 0.3
	MaxStrokeWidth = 1.6
)

// DefaultArcColor is used in constant color mode.
const DefaultArcColor = "#38bdf8"

// fallbackYearColor covers years outside the palette.
const fallbackYearColor = "#94a3b8"

// yearPalette assigns each travel year a stable color.
var yearPalette = map[int]string{
	2015: "#f87171",
	2016: "#fb923c",
	2017: "#fbbf24",
	2018: "#a3e635",
	2019: "#34d399",
	2020: "#22d3ee",
	2021: "#60a5fa",
	2022: "#818cf8",
	2023: "#c084fc",
	2024: "#f472b6",
	2025: "#fb7185",
}

// Frequency bands, highest first. Thresholds are fractions of the
// maximum observed route count.
var frequencyBands = []struct {
	threshold float64
	color     string
}{
	{0.7, "#ef4444"},
	{0.4, "#f97316"},
	{0.2, "#eab308"},
	{0.0, "#38bdf8"},
}

// YearColor looks up the palette color for a year.
func YearColor(year int) string {
	if c, ok := yearPalette[year]; ok {
		return c
	}
	return fallbackYearColor
}

// FrequencyColor buckets a route count into one of four bands relative
// to the maximum observed count.
func FrequencyColor(count, maxCount int) string {
	if maxCount <= 0 {
		return frequencyBands[len(frequencyBands)-1].color
	}
	ratio := float64(count) / float64(maxCount)
	for _, band := range frequencyBands {
		if ratio >= band.threshold {
			return band.color
		}
	}
	return frequencyBands[len(frequencyBands)-1].color
}

// AirlineColor derives a stable, arbitrary hue from an airline name:
// the sum of character codes modulo 360.
func AirlineColor(airline string) string {
	sum := 0
	for _, r := range airline {
		sum += int(r)
	}
	return fmt.Sprintf("hsl(%d, 70%%, 55%%)", sum%360)
}

// MarkerSize scales an airport marker by the square root of its visit
// count, clamped to the fixed size range.
func MarkerSize(visitCount int) float64 {
	if visitCount < 1 {
		return MinPointSize
	}
	size := MinPointSize * math.Sqrt(float64(visitCount))
	return math.Min(size, MaxPointSize)
}

// StrokeWidth scales an arc stroke by the square root of the route's
// global flight count, clamped to the fixed width range.
func StrokeWidth(routeCount int) float64 {
	if routeCount < 1 {
		return MinStrokeWidth
	}
	width := MinStrokeWidth * math.Sqrt(float64(routeCount))
	return math.Min(width, MaxStrokeWidth)
}
