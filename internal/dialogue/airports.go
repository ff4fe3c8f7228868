package dialogue

import "strings"

var cityAirports = map[string]string{
	"vancouver":  "YVR",
	"calgary":    "YYC",
	"edmonton":   "YEG",
	"toronto":    "YYZ",
	"ottawa":     "YOW",
	"montreal":   "YUL",
	"halifax":    "YHZ",
	"victoria":   "YYJ",
	"winnipeg":   "YWG",
	"kelowna":    "YLW",
	"saskatoon":  "YXE",
	"regina":     "YQR",
	"kamloops":   "YKA",
	"abbotsford": "YXX",
	"nanaimo":    "YCD",
}

// AirportCode resolves a city name to its IATA code. Unknown names fall back
// to their first three characters, upper-cased.
func AirportCode(city string) string {
	key := strings.ToLower(strings.TrimSpace(city))
	if code, ok := cityAirports[key]; ok {
		return code
	}
	code := strings.ToUpper(strings.TrimSpace(city))
	if r := []rune(code); len(r) > 3 {
		code = string(r[:3])
	}
	return code
}
