package domain

// unknownWeatherCode is returned for any WMO code outside the documented set.
const unknownWeatherCode = "Unknown weather code"

// wmoCodes maps WMO weather interpretation codes to their descriptions, as
// documented at https://open-meteo.com/en/docs.
var wmoCodes = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	56: "Light freezing drizzle",
	57: "Dense freezing drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	66: "Light freezing rain",
	67: "Heavy freezing rain",
	71: "Slight snow fall",
	73: "Moderate snow fall",
	75: "Heavy snow fall",
	77: "Snow grains",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

// DescribeWeatherCode returns the human-readable description for a WMO
// weather code, or a fallback string for codes outside the documented set.
func DescribeWeatherCode(code int) string {
	if description, ok := wmoCodes[code]; ok {
		return description
	}
	return unknownWeatherCode
}
