package usecase

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"storekit-backend/internal/domain"
)

var (
	pincodePrefixRe = regexp.MustCompile(`^\d{1,6}$`)
	pincodeRangeRe  = regexp.MustCompile(`^(\d{6})\s*-\s*(\d{6})$`)
)

// ValidatePincodePattern accepts a 1-6 digit exact/prefix pattern or a
// "start-end" range of two 6-digit pincodes with start <= end.
func ValidatePincodePattern(pattern string) error {
	p := strings.TrimSpace(pattern)
	if pincodePrefixRe.MatchString(p) {
		return nil
	}
	m := pincodeRangeRe.FindStringSubmatch(p)
	if m == nil {
		return fmt.Errorf("invalid pincode pattern %q", pattern)
	}
	lo, _ := strconv.Atoi(m[1])
	hi, _ := strconv.Atoi(m[2])
	if lo > hi {
		return errors.New("pincode range start is after its end: " + p)
	}
	return nil
}

// ValidateZoneConfig lists every consistency problem in a zone set as a
// human-readable message. Matching never consults it.
func ValidateZoneConfig(zones []domain.ShippingZone) []string {
	blocking, advisory := CheckZoneConfig(zones)
	return append(blocking, advisory...)
}

// CheckZoneConfig splits findings into problems that block a save and
// advisories that matching tolerates (first match wins).
func CheckZoneConfig(zones []domain.ShippingZone) (blocking []string, advisory []string) {
	stateOwner := make(map[string]string)
	seenIDs := make(map[string]bool)
	defaults := 0

	for _, z := range zones {
		label := zoneLabel(z)

		if z.ID != "" {
			if seenIDs[z.ID] {
				blocking = append(blocking, fmt.Sprintf("%s: duplicate zone id", label))
			}
			seenIDs[z.ID] = true
		}

		if !slices.Contains(domain.ZoneTypes, z.Type) {
			blocking = append(blocking, fmt.Sprintf("%s: unknown zone type %q", label, z.Type))
		}

		if z.FlatRate < 0 || negative(z.CODFee) || negative(z.FreeShippingThreshold) {
			blocking = append(blocking, fmt.Sprintf("%s: amounts must not be negative", label))
		}

		if z.IsDefaultZone() {
			defaults++
			continue
		}

		switch z.Type {
		case domain.ZoneTypePincodes:
			if len(z.Pincodes) == 0 {
				advisory = append(advisory, fmt.Sprintf("%s: no pincodes configured", label))
			}
			for _, p := range z.Pincodes {
				if err := ValidatePincodePattern(p); err != nil {
					blocking = append(blocking, fmt.Sprintf("%s: %v", label, err))
				}
			}
		case domain.ZoneTypeStates:
			if len(z.States) == 0 {
				advisory = append(advisory, fmt.Sprintf("%s: no states configured", label))
			}
			for _, s := range z.States {
				code, ok := NormalizeStateCode(s)
				if !ok {
					advisory = append(advisory, fmt.Sprintf("%s: unknown state %q", label, s))
					continue
				}
				if owner, taken := stateOwner[code]; taken {
					advisory = append(advisory, fmt.Sprintf("state %s is in both %s and %s; %s wins", code, owner, label, owner))
					continue
				}
				stateOwner[code] = label
			}
		}
	}

	if defaults > 1 {
		blocking = append(blocking, fmt.Sprintf("only one default zone is allowed, found %d", defaults))
	}
	if defaults == 0 && len(zones) > 0 {
		advisory = append(advisory, "no default zone: destinations outside every zone cannot be delivered to")
	}
	return blocking, advisory
}

func zoneLabel(z domain.ShippingZone) string {
	if z.Name != "" {
		return fmt.Sprintf("zone %q", z.Name)
	}
	return fmt.Sprintf("zone %q", z.ID)
}

func negative(v *float64) bool {
	return v != nil && *v < 0
}
