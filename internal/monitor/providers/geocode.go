package providers

import (
	"fmt"

	"github.com/kelvins/geocoder"
)

// GoogleGeocoder resolves place names to coordinates through the Google
// geocoding API. It implements monitor.PlaceResolver.
type GoogleGeocoder struct{}

// NewGoogleGeocoder configures the shared geocoder API key and returns a
// resolver. Geocoding requires a Google API key.
func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	geocoder.ApiKey = apiKey
	return &GoogleGeocoder{}
}

func (g *GoogleGeocoder) Resolve(place string) (float64, float64, error) {
	location, err := geocoder.Geocoding(geocoder.Address{Street: place})
	if err != nil {
		return 0, 0, fmt.Errorf("geocode %q: %w", place, err)
	}
	return location.Latitude, location.Longitude, nil
}
