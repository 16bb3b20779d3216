// Package connection builds and scores passenger connections at the hub.
package connection

import "github.com/ainohq/aino/internal/domain"

// terminalPair keys the MCT table. Terminals are the short names used on
// flight records ("T2".."T5").
type terminalPair struct {
	from, to string
}

// Published LHR minimum connection times, in minutes. International legs on
// either side use the international table.
var (
	mctDomestic = map[terminalPair]int{
		{"T2", "T2"}: 45,
		{"T3", "T3"}: 45,
		{"T5", "T5"}: 45,
		{"T2", "T3"}: 60,
		{"T3", "T2"}: 60,
		{"T2", "T5"}: 75,
		{"T5", "T2"}: 75,
		{"T3", "T5"}: 75,
		{"T5", "T3"}: 75,
		{"T4", "T4"}: 45,
		{"T4", "T2"}: 75,
		{"T2", "T4"}: 75,
		{"T4", "T3"}: 75,
		{"T3", "T4"}: 75,
		{"T4", "T5"}: 90,
		{"T5", "T4"}: 90,
	}
	mctInternational = map[terminalPair]int{
		{"T2", "T2"}: 60,
		{"T3", "T3"}: 60,
		{"T5", "T5"}: 60,
		{"T4", "T4"}: 60,
		{"T2", "T3"}: 75,
		{"T3", "T2"}: 75,
		{"T2", "T5"}: 90,
		{"T5", "T2"}: 90,
		{"T3", "T5"}: 90,
		{"T5", "T3"}: 90,
		{"T4", "T2"}: 90,
		{"T2", "T4"}: 90,
		{"T4", "T3"}: 90,
		{"T3", "T4"}: 90,
		{"T4", "T5"}: 90,
		{"T5", "T4"}: 90,
	}
)

// mctFallbackMinutes covers unknown terminal pairs with the most
// conservative published value.
const mctFallbackMinutes = 90

// MinimumConnectionMinutes looks up the MCT for a terminal pair. The
// international table applies when either leg is international.
func MinimumConnectionMinutes(arr, dep *domain.Flight) int {
	pair := terminalPair{from: arr.Terminal, to: dep.Terminal}
	table := mctDomestic
	if arr.International || dep.International {
		table = mctInternational
	}
	if mct, ok := table[pair]; ok {
		return mct
	}
	return mctFallbackMinutes
}

// terminalDistanceRank orders terminal transfers by walking/transit effort:
// 0 same terminal, 1 adjacent (T2/T3), 2 everything else.
func terminalDistanceRank(from, to string) int {
	if from == to {
		return 0
	}
	if (from == "T2" && to == "T3") || (from == "T3" && to == "T2") {
		return 1
	}
	return 2
}
