package monitor

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

const dateLayout = "2006-01-02"

// ParseDateRange parses start/end date strings (YYYY-MM-DD or RFC3339),
// normalizes them to YYYY-MM-DD and enforces start <= end. It performs no
// network calls.
func ParseDateRange(start, end string) (DateRange, error) {
	from, err := parseDate(start)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid start date %q: use YYYY-MM-DD", start)
	}
	to, err := parseDate(end)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid end date %q: use YYYY-MM-DD", end)
	}
	if from.After(to) {
		return DateRange{}, errors.New("start date must not be after end date")
	}
	return DateRange{
		Start: from.Format(dateLayout),
		End:   to.Format(dateLayout),
	}, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if ts, err := time.Parse(dateLayout, s); err == nil {
		return ts, nil
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts.UTC(), nil
	}
	return time.Time{}, errors.New("unrecognized date format")
}

// coordinates is validated with the validator tag set the HTTP layer also uses.
type coordinates struct {
	Lat float64 `validate:"latitude"`
	Lon float64 `validate:"longitude"`
}

// ValidateCoordinates checks latitude/longitude bounds (-90..90, -180..180).
func ValidateCoordinates(lat, lon float64) error {
	if err := validate.Struct(coordinates{Lat: lat, Lon: lon}); err != nil {
		return fmt.Errorf("coordinates out of range: latitude must be -90..90 and longitude -180..180")
	}
	return nil
}

// ValidateMeasureEndpoint checks that the measure endpoint is a well-formed
// absolute http(s) URL. The endpoint is otherwise treated as opaque.
func ValidateMeasureEndpoint(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("measure endpoint must be a well-formed http(s) URL")
	}
	return nil
}

// ValidateParameter checks that a parameter name is non-empty.
func ValidateParameter(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("parameter name must not be empty")
	}
	return nil
}
