package infrastructure

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dailybrief/weather-mailer/internal/domain"
)

// LoadLocations reads a JSON array of locations from path. Every entry must
// carry a unique name and coordinates within range.
func LoadLocations(path string) ([]domain.Location, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read locations file: %w", err)
	}

	var entries []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse locations file: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("locations file %s contains no entries", path)
	}

	seen := make(map[string]struct{}, len(entries))
	locations := make([]domain.Location, 0, len(entries))
	for _, entry := range entries {
		location := domain.Location{
			Name:      entry.Name,
			Latitude:  entry.Latitude,
			Longitude: entry.Longitude,
		}
		if err := location.Validate(); err != nil {
			return nil, fmt.Errorf("invalid location %q: %w", entry.Name, err)
		}
		if _, duplicate := seen[location.Name]; duplicate {
			return nil, fmt.Errorf("duplicate location name %q", location.Name)
		}
		seen[location.Name] = struct{}{}
		locations = append(locations, location)
	}

	return locations, nil
}
