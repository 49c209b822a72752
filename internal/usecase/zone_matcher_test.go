package usecase

import (
	"testing"

	"storekit-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testZones() []domain.ShippingZone {
	return []domain.ShippingZone{
		{ID: "south", Name: "South", Type: domain.ZoneTypeStates, States: []string{"KA", "TN", "KL"}, FlatRate: 40},
		{ID: "blr", Name: "Bangalore Metro", Type: domain.ZoneTypePincodes, Pincodes: []string{"560"}, FlatRate: 30},
		{ID: "ncr", Name: "NCR", Type: domain.ZoneTypePincodes, Pincodes: []string{"110001-110096", "122001"}, FlatRate: 35},
		{ID: "rest", Name: "Rest of India", Type: domain.ZoneTypeDefault, FlatRate: 80},
	}
}

func TestNormalizeStateCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Karnataka", "KA", true},
		{"  tamil nadu ", "TN", true},
		{"ka", "KA", true},
		{"Orissa", "OD", true},
		{"Jammu & Kashmir", "JK", true},
		{"Atlantis", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := NormalizeStateCode(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPincodeMatches(t *testing.T) {
	assert.True(t, PincodeMatches("560001", "560001"), "exact")
	assert.True(t, PincodeMatches("560034", "560"), "prefix")
	assert.True(t, PincodeMatches("110001", "110001-110096"), "range lower bound")
	assert.True(t, PincodeMatches("110096", "110001-110096"), "range upper bound")
	assert.False(t, PincodeMatches("110097", "110001-110096"))
	assert.False(t, PincodeMatches("560001", ""))
	assert.False(t, PincodeMatches("abc", "110001-110096"))
}

func TestMatchZone_PincodeBeatsState(t *testing.T) {
	// Bangalore pincode in Karnataka: the states zone is listed first but the
	// pincode zone must still win.
	zone := MatchZone("Karnataka", "560034", testZones())
	require.NotNil(t, zone)
	assert.Equal(t, "blr", zone.ID)
}

func TestMatchZone_StateMatch(t *testing.T) {
	zone := MatchZone("Kerala", "682001", testZones())
	require.NotNil(t, zone)
	assert.Equal(t, "south", zone.ID)
}

func TestMatchZone_RangeMatch(t *testing.T) {
	zone := MatchZone("Delhi", "110045", testZones())
	require.NotNil(t, zone)
	assert.Equal(t, "ncr", zone.ID)
}

func TestMatchZone_FallsBackToDefault(t *testing.T) {
	zone := MatchZone("Gujarat", "380001", testZones())
	require.NotNil(t, zone)
	assert.Equal(t, "rest", zone.ID)
}

func TestMatchZone_UnknownStateStillMatchesPincode(t *testing.T) {
	zone := MatchZone("Narnia", "122001", testZones())
	require.NotNil(t, zone)
	assert.Equal(t, "ncr", zone.ID)

	zone = MatchZone("Narnia", "999999", testZones())
	require.NotNil(t, zone)
	assert.Equal(t, "rest", zone.ID)
}

func TestMatchZone_NoDefault(t *testing.T) {
	zones := testZones()[:3]
	assert.Nil(t, MatchZone("Gujarat", "380001", zones))
}

func TestMatchZone_EmptyZones(t *testing.T) {
	assert.Nil(t, MatchZone("Karnataka", "560001", nil))
}

func TestMatchZone_FirstListedWins(t *testing.T) {
	zones := []domain.ShippingZone{
		{ID: "a", Type: domain.ZoneTypePincodes, Pincodes: []string{"4000"}},
		{ID: "b", Type: domain.ZoneTypePincodes, Pincodes: []string{"400001"}},
		{ID: "d1", Type: domain.ZoneTypeDefault},
		{ID: "d2", IsDefault: true, Type: domain.ZoneTypeStates},
	}
	zone := MatchZone("MH", "400001", zones)
	require.NotNil(t, zone)
	assert.Equal(t, "a", zone.ID)

	zone = MatchZone("MH", "999999", zones)
	require.NotNil(t, zone)
	assert.Equal(t, "d1", zone.ID, "first default zone wins")
}

func TestMatchZone_DefaultFlagOnStatesZoneIsNotAStateMatch(t *testing.T) {
	zones := []domain.ShippingZone{
		{ID: "d", IsDefault: true, Type: domain.ZoneTypeStates, States: []string{"GJ"}},
		{ID: "gj", Type: domain.ZoneTypeStates, States: []string{"GJ"}},
	}
	zone := MatchZone("Gujarat", "380001", zones)
	require.NotNil(t, zone)
	assert.Equal(t, "gj", zone.ID)
}

func TestMatchZone_FullStateNamesInZone(t *testing.T) {
	zones := []domain.ShippingZone{
		{ID: "west", Name: "West", Type: domain.ZoneTypeStates, States: []string{"Maharashtra", " gujarat "}, FlatRate: 60},
	}

	blocking, _ := CheckZoneConfig(zones)
	assert.Empty(t, blocking)

	zone := MatchZone("Maharashtra", "400001", zones)
	require.NotNil(t, zone)
	assert.Equal(t, "west", zone.ID)

	zone = MatchZone("GJ", "380001", zones)
	require.NotNil(t, zone)
	assert.Equal(t, "west", zone.ID)

	res := CheckAvailability(domain.Destination{State: "MH", Pincode: "400001"}, domain.ShippingConfig{UseZones: true, Zones: zones})
	assert.True(t, res.Available)
}
