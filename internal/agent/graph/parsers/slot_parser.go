package parsers

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Chative-fare-advisor/server/internal/agent/model"
	errx "github.com/Chative-fare-advisor/server/internal/core/error"
	logx "github.com/Chative-fare-advisor/server/pkg/logger"
)

// basic safety limits to avoid pathological inputs
const (
	maxContentLen = 16 * 1024 // 16KB
	maxTextLen    = 100       // city names and similar free text
	maxTravelers  = 9
	maxBags       = 10
	maxErrSnippet = 200
)

// Result is a validated slot update plus the problems met while decoding it.
type Result struct {
	Update   *model.SlotUpdate
	Warnings []string
}

// ParseSlotUpdate decodes the oracle's JSON object into a typed update.
// Unknown keys and invalid values are dropped and reported as warnings; only
// a body that is not a JSON object is an error.
func ParseSlotUpdate(content string) (res *Result, err error) {
	// panic safety
	defer func() {
		if r := recover(); r != nil {
			logx.Error().Str("component", "slot_parser").Msgf("panic recovered: %v", r)
			err = errx.New(fmt.Errorf("slot parser panic"), http.StatusInternalServerError, errx.SystemErrorMessage)
			res = nil
		}
	}()

	if len(content) > maxContentLen {
		return nil, fmt.Errorf("content too large: %d bytes", len(content))
	}
	body, ok := extractObject(content)
	if !ok {
		return nil, fmt.Errorf("no json object in %q", safeSnippet(content))
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return nil, fmt.Errorf("unmarshal slot update: %w", err)
	}

	res = &Result{Update: &model.SlotUpdate{}}
	u := res.Update
	warn := func(key, msg string) {
		res.Warnings = append(res.Warnings, key+": "+msg)
	}

	// deterministic warning order
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		v := raw[key]
		if v == nil {
			// null means "nothing to update"
			continue
		}
		switch key {
		case "origin":
			u.Origin = textValue(v, key, warn)
		case "destination":
			u.Destination = textValue(v, key, warn)
		case "ambiguousCity":
			u.AmbiguousCity = textValue(v, key, warn)
		case "departureDate":
			u.DepartureDate = dateValue(v, key, warn)
		case "returnDate":
			u.ReturnDate = dateValue(v, key, warn)
		case "travelers":
			u.Travelers = intValue(v, key, 1, maxTravelers, warn)
		case "checkedBags":
			u.CheckedBags = intValue(v, key, 0, maxBags, warn)
		case "carryOn":
			u.CarryOn = boolValue(v, key, warn)
		case "rewardsEarn":
			u.RewardsEarn = boolValue(v, key, warn)
		case "tripType":
			if s, ok := v.(string); ok {
				if tt, ok := tripTypes[normalizeWord(s)]; ok {
					u.TripType = model.Ptr(tt)
					continue
				}
			}
			warn(key, "unknown value")
		case "changePolicy":
			if s, ok := v.(string); ok {
				if cp, ok := changePolicies[normalizeWord(s)]; ok {
					u.ChangePolicy = model.Ptr(cp)
					continue
				}
			}
			warn(key, "unknown value")
		case "seatSelection":
			if seat, ok := seatValue(v); ok {
				u.SeatSelection = model.Ptr(seat)
				continue
			}
			warn(key, "unknown value")
		case "intent":
			if s, ok := v.(string); ok && normalizeWord(s) == string(model.IntentQuestion) {
				u.Intent = model.IntentQuestion
			}
		default:
			warn(key, "unknown key")
		}
	}

	if len(res.Warnings) > 0 {
		logx.Warn().
			Str("component", "slot_parser").
			Strs("warnings", res.Warnings).
			Msg("slot update partially rejected")
	}
	return res, nil
}

var tripTypes = map[string]model.TripType{
	"round-trip": model.TripRoundTrip,
	"roundtrip":  model.TripRoundTrip,
	"round":      model.TripRoundTrip,
	"return":     model.TripRoundTrip,
	"one-way":    model.TripOneWay,
	"oneway":     model.TripOneWay,
	"one":        model.TripOneWay,
}

var changePolicies = map[string]model.ChangePolicy{
	"flexible":       model.ChangeFlexible,
	"flexibility":    model.ChangeFlexible,
	"flex":           model.ChangeFlexible,
	"included":       model.ChangeFlexible,
	"price-priority": model.ChangePricePriority,
	"price":          model.ChangePricePriority,
	"lowest-price":   model.ChangePricePriority,
	"cheapest":       model.ChangePricePriority,
}

var seatSelections = map[string]model.SeatSelection{
	"included":  model.SeatIncluded,
	"important": model.SeatIncluded,
	"yes":       model.SeatIncluded,
	"cheapest":  model.SeatCheapest,
	"no":        model.SeatCheapest,
	"fee":       model.SeatCheapest,
}

func normalizeWord(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "-")
	return strings.ReplaceAll(s, " ", "-")
}

func textValue(v any, key string, warn func(string, string)) *string {
	s, ok := v.(string)
	if !ok {
		warn(key, "not a string")
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" || !utf8.ValidString(s) || utf8.RuneCountInString(s) > maxTextLen {
		warn(key, "invalid text")
		return nil
	}
	return &s
}

func dateValue(v any, key string, warn func(string, string)) *model.Date {
	s, ok := v.(string)
	if !ok {
		warn(key, "not a string")
		return nil
	}
	switch normalizeWord(s) {
	case "one-way", "oneway", "none":
		return model.Ptr(model.DateNotApplicable)
	}
	d, err := model.ParseDate(s)
	if err != nil {
		warn(key, "invalid date")
		return nil
	}
	return &d
}

func intValue(v any, key string, min, max int, warn func(string, string)) *int {
	var f float64
	switch vv := v.(type) {
	case float64:
		f = vv
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(vv), 64)
		if err != nil {
			warn(key, "not a number")
			return nil
		}
		f = n
	default:
		warn(key, "not a number")
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		warn(key, "not an integer")
		return nil
	}
	n := int(f)
	if n < min || n > max {
		warn(key, "out of range")
		return nil
	}
	return &n
}

func boolValue(v any, key string, warn func(string, string)) *bool {
	switch vv := v.(type) {
	case bool:
		return &vv
	case string:
		switch normalizeWord(vv) {
		case "true", "yes", "y", "sure", "yep":
			return model.Ptr(true)
		case "false", "no", "n", "nope", "nah":
			return model.Ptr(false)
		}
	}
	warn(key, "not a boolean")
	return nil
}

func seatValue(v any) (model.SeatSelection, bool) {
	switch vv := v.(type) {
	case bool:
		if vv {
			return model.SeatIncluded, true
		}
		return model.SeatCheapest, true
	case string:
		s, ok := seatSelections[normalizeWord(vv)]
		return s, ok
	}
	return "", false
}

// extractObject returns the outermost {...} span, tolerating markdown fences
// and chatter around the JSON.
func extractObject(content string) (string, bool) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return content[start : end+1], true
}

func safeSnippet(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxErrSnippet {
		return s
	}
	return s[:maxErrSnippet]
}
