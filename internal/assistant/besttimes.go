package assistant

import "strings"

// PostingTime is a recommended publication slot.
type PostingTime struct {
	Day   string `json:"day"`
	Hour  string `json:"hour"`
	Score int    `json:"score"`
}

// Static engagement windows per platform. Platforms without data fall
// back to the LinkedIn slots.
var bestTimes = map[string][]PostingTime{
	"linkedin": {
		{Day: "Mardi", Hour: "10:00", Score: 95},
		{Day: "Mercredi", Hour: "12:00", Score: 90},
		{Day: "Jeudi", Hour: "09:00", Score: 85},
	},
	"facebook": {
		{Day: "Mercredi", Hour: "11:00", Score: 92},
		{Day: "Vendredi", Hour: "14:00", Score: 88},
		{Day: "Samedi", Hour: "12:00", Score: 82},
	},
	"instagram": {
		{Day: "Mardi", Hour: "11:00", Score: 94},
		{Day: "Mercredi", Hour: "14:00", Score: 89},
		{Day: "Vendredi", Hour: "17:00", Score: 86},
	},
}

// BestTimes returns the recommended posting slots for a platform.
func BestTimes(platformID string) []PostingTime {
	if times, ok := bestTimes[strings.ToLower(platformID)]; ok {
		return times
	}
	return bestTimes["linkedin"]
}
