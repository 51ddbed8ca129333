package domain

// Forecast holds the current-day weather values retrieved for one location.
// Temperatures are in degrees Fahrenheit, precipitation sum in millimetres.
type Forecast struct {
	CurrentTemp              float64
	MaxTemp                  float64
	MinTemp                  float64
	WeatherCode              int
	PrecipitationSum         float64
	PrecipitationProbability int
}
