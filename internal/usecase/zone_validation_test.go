package usecase

import (
	"testing"

	"storekit-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestValidatePincodePattern(t *testing.T) {
	for _, p := range []string{"5", "560", "560001", "110001-110096", "110001 - 110096"} {
		assert.NoError(t, ValidatePincodePattern(p), p)
	}
	for _, p := range []string{"", "56a", "5600011", "110096-110001", "11-ab", "110001-"} {
		assert.Error(t, ValidatePincodePattern(p), p)
	}
}

func TestCheckZoneConfig(t *testing.T) {
	zones := []domain.ShippingZone{
		{ID: "a", Name: "South", Type: domain.ZoneTypeStates, States: []string{"KA", "Tamil Nadu"}},
		{ID: "b", Name: "Tamil", Type: domain.ZoneTypeStates, States: []string{"TN"}},
		{ID: "c", Name: "Metro", Type: domain.ZoneTypePincodes, Pincodes: []string{"560", "99-ab"}},
	}

	blocking, advisory := CheckZoneConfig(zones)
	assert.Len(t, blocking, 1)
	assert.Contains(t, blocking[0], "99-ab")
	assert.Contains(t, advisory, `state TN is in both zone "South" and zone "Tamil"; zone "South" wins`)
	assert.Contains(t, advisory, "no default zone: destinations outside every zone cannot be delivered to")
}

func TestCheckZoneConfig_MultipleDefaults(t *testing.T) {
	zones := []domain.ShippingZone{
		{ID: "a", Name: "Everywhere", Type: domain.ZoneTypeDefault},
		{ID: "b", Name: "Also", Type: domain.ZoneTypeStates, IsDefault: true},
	}
	blocking, advisory := CheckZoneConfig(zones)
	assert.Equal(t, []string{"only one default zone is allowed, found 2"}, blocking)
	assert.Empty(t, advisory)
}

func TestCheckZoneConfig_TypeAndAmounts(t *testing.T) {
	zones := []domain.ShippingZone{
		{ID: "a", Name: "Odd", Type: "country"},
		{ID: "a", Name: "Neg", Type: domain.ZoneTypeDefault, FlatRate: -1},
	}
	blocking, _ := CheckZoneConfig(zones)
	assert.Len(t, blocking, 3)
}

func TestValidateZoneConfig_Clean(t *testing.T) {
	assert.Empty(t, ValidateZoneConfig(testZones()))
	assert.Empty(t, ValidateZoneConfig(nil))
}
