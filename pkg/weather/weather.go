// Package weather serves the canned weather table behind the weather
// command. There is no network lookup.
package weather

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultCity is used when no city is given and for unknown cities.
const DefaultCity = "Madrid"

// Report is a single canned observation.
type Report struct {
	City        string `json:"city"`
	Temperature string `json:"temperature"`
	Condition   string `json:"condition"`
	Humidity    string `json:"humidity"`
	Wind        string `json:"wind"`
}

var table = map[string]Report{
	"madrid":    {Temperature: "22°C", Condition: "Soleado", Humidity: "45%", Wind: "12 km/h"},
	"barcelona": {Temperature: "24°C", Condition: "Parcialmente nublado", Humidity: "58%", Wind: "8 km/h"},
	"valencia":  {Temperature: "26°C", Condition: "Despejado", Humidity: "42%", Wind: "15 km/h"},
	"bilbao":    {Temperature: "18°C", Condition: "Lluvioso", Humidity: "78%", Wind: "20 km/h"},
}

// Lookup returns the report for city. Matching ignores case; unknown
// cities get Madrid's data under the requested name.
func Lookup(city string) Report {
	city = strings.TrimSpace(city)
	if city == "" {
		city = DefaultCity
	}
	r, ok := table[strings.ToLower(city)]
	if !ok {
		r = table[strings.ToLower(DefaultCity)]
	}
	r.City = DisplayName(city)
	return r
}

// Cities lists the cities with their own data.
func Cities() []string {
	return []string{"Madrid", "Barcelona", "Valencia", "Bilbao"}
}

// DisplayName upper-cases the first letter and lower-cases the rest, so
// "MADRID" and "madrid" display the same.
func DisplayName(city string) string {
	if city == "" {
		return city
	}
	lower := strings.ToLower(city)
	r, size := utf8.DecodeRuneInString(lower)
	return string(unicode.ToUpper(r)) + lower[size:]
}
