package usecase

import (
	"strconv"
	"strings"

	"storekit-backend/internal/domain"
)

// stateCodes maps lower-cased Indian state and union territory names (and
// common alternate spellings) to their two-letter codes.
var stateCodes = map[string]string{
	"andhra pradesh":    "AP",
	"arunachal pradesh": "AR",
	"assam":             "AS",
	"bihar":             "BR",
	"chhattisgarh":      "CG",
	"chattisgarh":       "CG",
	"goa":               "GA",
	"gujarat":           "GJ",
	"haryana":           "HR",
	"himachal pradesh":  "HP",
	"jharkhand":         "JH",
	"karnataka":         "KA",
	"kerala":            "KL",
	"madhya pradesh":    "MP",
	"maharashtra":       "MH",
	"manipur":           "MN",
	"meghalaya":         "ML",
	"mizoram":           "MZ",
	"nagaland":          "NL",
	"odisha":            "OD",
	"orissa":            "OD",
	"punjab":            "PB",
	"rajasthan":         "RJ",
	"sikkim":            "SK",
	"tamil nadu":        "TN",
	"telangana":         "TS",
	"tripura":           "TR",
	"uttar pradesh":     "UP",
	"uttarakhand":       "UK",
	"uttaranchal":       "UK",
	"west bengal":       "WB",

	// Union territories
	"andaman & nicobar islands": "AN",
	"chandigarh":                "CH",
	"dadra and nagar haveli":    "DN",
	"daman and diu":             "DN",
	"delhi":                     "DL",
	"new delhi":                 "DL",
	"nct of delhi":              "DL",
	"jammu and kashmir":         "JK",
	"jammu & kashmir":           "JK",
	"ladakh":                    "LA",
	"lakshadweep":               "LD",
	"puducherry":                "PY",
	"pondicherry":               "PY",

	"andaman and nicobar islands": "AN",

	"dadra and nagar haveli and daman and diu": "DN",
}

// NormalizeStateCode resolves a state name or code to its two-letter code.
// Two-letter input is treated as a code and upper-cased.
func NormalizeStateCode(stateName string) (string, bool) {
	s := strings.TrimSpace(stateName)
	if s == "" {
		return "", false
	}
	if len(s) == 2 {
		return strings.ToUpper(s), true
	}
	code, ok := stateCodes[strings.ToLower(s)]
	return code, ok
}

// MatchZone picks the zone that applies to a destination. Pincode zones win
// on first match, then state zones, then the first default zone seen.
// Returns nil when nothing applies.
func MatchZone(stateName, pincode string, zones []domain.ShippingZone) *domain.ShippingZone {
	stateCode, stateKnown := NormalizeStateCode(stateName)
	pincode = strings.TrimSpace(pincode)

	var defaultZone *domain.ShippingZone
	var stateZone *domain.ShippingZone

	for i := range zones {
		zone := &zones[i]

		if zone.IsDefaultZone() {
			if defaultZone == nil {
				defaultZone = zone
			}
			continue
		}

		switch zone.Type {
		case domain.ZoneTypePincodes:
			if pincode != "" && pincodeMatchesAny(pincode, zone.Pincodes) {
				return zone
			}
		case domain.ZoneTypeStates:
			if stateZone == nil && stateKnown && containsState(zone.States, stateCode) {
				stateZone = zone
			}
		}
	}

	if stateZone != nil {
		return stateZone
	}
	return defaultZone
}

// containsState accepts zone entries written as codes or full names.
func containsState(states []string, code string) bool {
	for _, s := range states {
		if entry, ok := NormalizeStateCode(s); ok && entry == code {
			return true
		}
		if strings.EqualFold(strings.TrimSpace(s), code) {
			return true
		}
	}
	return false
}

func pincodeMatchesAny(pincode string, patterns []string) bool {
	for _, p := range patterns {
		if PincodeMatches(pincode, p) {
			return true
		}
	}
	return false
}

// PincodeMatches tests a pincode against one pattern: exact, "start-end"
// numeric range (inclusive), or prefix.
func PincodeMatches(pincode, pattern string) bool {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return false
	}
	if pincode == pattern {
		return true
	}
	if lo, hi, ok := parsePincodeRange(pattern); ok {
		n, err := strconv.Atoi(pincode)
		if err != nil {
			return false
		}
		return n >= lo && n <= hi
	}
	return strings.HasPrefix(pincode, pattern)
}

func parsePincodeRange(pattern string) (int, int, bool) {
	start, end, found := strings.Cut(pattern, "-")
	if !found {
		return 0, 0, false
	}
	lo, err := strconv.Atoi(strings.TrimSpace(start))
	if err != nil {
		return 0, 0, false
	}
	hi, err := strconv.Atoi(strings.TrimSpace(end))
	if err != nil {
		return 0, 0, false
	}
	return lo, hi, true
}
