package domain

// Block-hour operating costs in USD by ICAO aircraft type. This is the single
// home for the table; disruption cost estimates in reports read it through
// OperatingCostPerHour.
var aircraftOperatingCostUSD = map[string]float64{
	"A319": 5200,
	"A320": 5600,
	"A321": 6100,
	"A332": 9800,
	"A333": 10400,
	"A339": 10900,
	"A343": 11200,
	"A359": 11600,
	"A35K": 12400,
	"A388": 17500,
	"B735": 4900,
	"B738": 5500,
	"B739": 5800,
	"B744": 14200,
	"B748": 15100,
	"B752": 7200,
	"B763": 9100,
	"B772": 11800,
	"B77W": 12900,
	"B788": 9900,
	"B789": 10700,
	"B78X": 11300,
	"E190": 4100,
	"E195": 4300,
	"DH8D": 2700,
	"AT76": 2500,
}

// defaultOperatingCostUSD covers types missing from the table; it is a
// narrowbody-class rate and callers should flag estimates built on it.
const defaultOperatingCostUSD = 5500

// OperatingCostPerHour returns the block-hour cost for an aircraft type and
// whether the type was found in the table.
func OperatingCostPerHour(aircraftType string) (float64, bool) {
	if c, ok := aircraftOperatingCostUSD[aircraftType]; ok {
		return c, true
	}
	return defaultOperatingCostUSD, false
}

type AircraftClass string

const (
	AircraftWidebody   AircraftClass = "WIDEBODY"
	AircraftNarrowbody AircraftClass = "NARROWBODY"
	AircraftRegional   AircraftClass = "REGIONAL"
)

var widebodyTypes = map[string]bool{
	"A332": true, "A333": true, "A339": true, "A343": true,
	"A359": true, "A35K": true, "A388": true,
	"B744": true, "B748": true, "B763": true,
	"B772": true, "B77W": true, "B788": true, "B789": true, "B78X": true,
}

var regionalTypes = map[string]bool{
	"E190": true, "E195": true, "DH8D": true, "AT76": true,
}

// ClassOf buckets an aircraft type; unknown types count as narrowbody.
func ClassOf(aircraftType string) AircraftClass {
	switch {
	case widebodyTypes[aircraftType]:
		return AircraftWidebody
	case regionalTypes[aircraftType]:
		return AircraftRegional
	default:
		return AircraftNarrowbody
	}
}
