// Package models: models/cities.go
package models

// City maps a short URL key to the event that scopes its submissions.
type City struct {
	Key       string
	Label     string
	EventSlug string
}

// DefaultCityKey is used when a request carries no city parameter.
const DefaultCityKey = "sf"

// Cities lists every city the board serves.
var Cities = []City{
	{Key: "sf", Label: "San Francisco", EventSlug: "con-sf"},
	{Key: "nyc", Label: "New York", EventSlug: "con-nyc"},
	{Key: "austin", Label: "Austin", EventSlug: "con-austin"},
	{Key: "london", Label: "London", EventSlug: "con-london"},
	{Key: "tokyo", Label: "Tokyo", EventSlug: "con-tokyo"},
}

// GetCity returns the city for the given key, falling back to the default
// when the key is unknown or empty.
func GetCity(key string) City {
	for _, c := range Cities {
		if c.Key == key {
			return c
		}
	}
	return GetCity(DefaultCityKey)
}
