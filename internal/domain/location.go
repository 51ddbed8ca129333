package domain

import (
	"fmt"
	"strings"
)

// Location is a named point the daily report covers.
type Location struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// Validate checks that the location has a name and coordinates within range.
func (l Location) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("location name cannot be empty")
	}
	if l.Latitude < -90 || l.Latitude > 90 {
		return fmt.Errorf("latitude %v is outside [-90, 90]", l.Latitude)
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return fmt.Errorf("longitude %v is outside [-180, 180]", l.Longitude)
	}
	return nil
}

// DefaultLocations returns the built-in location list used when no locations
// file is supplied.
func DefaultLocations() []Location {
	return []Location{
		{Name: "Naples, FL", Latitude: 26.1420, Longitude: -81.7948},
		{Name: "Davidson, NC", Latitude: 35.5024, Longitude: -80.8437},
	}
}
