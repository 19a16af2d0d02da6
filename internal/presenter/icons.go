package presenter

// DefaultIcon is shown for any condition category not in the table.
const DefaultIcon = "fas fa-cloud"

var icons = map[string]string{
	"Clear":        "fas fa-sun",
	"Clouds":       "fas fa-cloud",
	"Rain":         "fas fa-cloud-rain",
	"Drizzle":      "fas fa-cloud-rain",
	"Thunderstorm": "fas fa-bolt",
	"Snow":         "fas fa-snowflake",
	"Mist":         "fas fa-smog",
	"Fog":          "fas fa-smog",
	"Haze":         "fas fa-smog",
}

// IconFor maps a provider condition category to an icon class. Lookups are case sensitive.
func IconFor(category string) string {
	if icon, ok := icons[category]; ok {
		return icon
	}
	return DefaultIcon
}
