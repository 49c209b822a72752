package courier

import (
	"testing"
	"time"

	"storekit-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightGrams(t *testing.T) {
	assert.Equal(t, 500, weightGrams(0.5))
	assert.Equal(t, 1235, weightGrams(1.2345))
	assert.Equal(t, 1, weightGrams(0))
	assert.Equal(t, 2000, weightGrams(2))
}

func TestNormalizeStatus(t *testing.T) {
	tests := map[string]string{
		"Delivered":               domain.ShipmentStatusDelivered,
		"DELIVERED":               domain.ShipmentStatusDelivered,
		"Undelivered":             domain.ShipmentStatusInTransit,
		"Out for Delivery":        domain.ShipmentStatusOutForDelivery,
		"In Transit":              domain.ShipmentStatusInTransit,
		"Shipment Picked Up":      domain.ShipmentStatusPickedUp,
		"Not Picked":              domain.ShipmentStatusPending,
		"Manifested":              domain.ShipmentStatusPending,
		"Pickup Generated":        domain.ShipmentStatusPending,
		"PICKUP QUEUED":           domain.ShipmentStatusPending,
		"Pickup Rescheduled":      domain.ShipmentStatusPending,
		"Pickup Done":             domain.ShipmentStatusPickedUp,
		"RTO Initiated":           domain.ShipmentStatusRTO,
		"Returned to origin":      domain.ShipmentStatusRTO,
		"Canceled":                domain.ShipmentStatusCancelled,
		"Reached at Destination":  domain.ShipmentStatusInTransit,
		"something else entirely": domain.ShipmentStatusUnknown,
		"":                        domain.ShipmentStatusUnknown,
	}
	for raw, want := range tests {
		assert.Equal(t, want, NormalizeStatus(raw), raw)
	}
}

func TestParseCourierTime(t *testing.T) {
	got, ok := parseCourierTime("2025-03-01T10:30:00.000")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 1, 5, 0, 0, 0, time.UTC), got.UTC())

	got, ok = parseCourierTime("2025-03-01 10:30:00")
	require.True(t, ok)
	assert.Equal(t, 10, got.Hour())

	_, ok = parseCourierTime("yesterday")
	assert.False(t, ok)
}

func TestRateResult_PicksCheapestAndFastest(t *testing.T) {
	res := rateResult([]domain.Rate{
		{CourierName: "A", Rate: 80, EstimatedDays: 5},
		{CourierName: "B", Rate: 120, EstimatedDays: 2},
		{CourierName: "C", Rate: 80, EstimatedDays: 4},
	})
	require.True(t, res.Success)
	assert.Equal(t, "A", res.Cheapest.CourierName, "ties keep the first")
	assert.Equal(t, "B", res.Fastest.CourierName)

	empty := rateResult(nil)
	assert.False(t, empty.Success)
	assert.NotNil(t, empty.Rates)
	assert.NotEmpty(t, empty.Error)
}
