package domain

import "time"

// FlightCategory is the standard ceiling/visibility classification carried on
// aviationweather.gov METAR responses.
type FlightCategory string

const (
	CategoryVFR  FlightCategory = "VFR"
	CategoryMVFR FlightCategory = "MVFR"
	CategoryIFR  FlightCategory = "IFR"
	CategoryLIFR FlightCategory = "LIFR"
)

var categoryOrdinal = map[FlightCategory]int{
	CategoryVFR:  0,
	CategoryMVFR: 1,
	CategoryIFR:  2,
	CategoryLIFR: 3,
}

// Ordinal returns 0 (VFR) through 3 (LIFR); unknown categories map to 0.
func (c FlightCategory) Ordinal() int {
	return categoryOrdinal[c]
}

// WeatherReport is a decoded METAR observation for one station.
type WeatherReport struct {
	Station         string         `json:"station"`
	ObservedAt      time.Time      `json:"observed_at"`
	TempC           float64        `json:"temp_c"`
	DewpointC       float64        `json:"dewpoint_c"`
	WindDirDeg      int            `json:"wind_dir_deg"`
	WindSpeedKt     int            `json:"wind_speed_kt"`
	WindGustKt      int            `json:"wind_gust_kt"`
	VisibilityMiles float64        `json:"visibility_miles"`
	AltimeterHpa    float64        `json:"altimeter_hpa"`
	Category        FlightCategory `json:"flight_category"`
	RawText         string         `json:"raw_text"`
}
