package registry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMockClientLookup(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	client := NewMockClient(WithSeed(42), WithClock(func() time.Time { return now }))

	rec, err := client.Lookup(context.Background(), "  mh12ab1234 ")
	require.NoError(t, err)
	require.Equal(t, "MH12AB1234", rec.RegistrationNumber)
	require.Equal(t, "Commercial Vehicle", rec.VehicleType)
	require.Contains(t, manufacturers, rec.Manufacturer)
	require.Contains(t, truckModels, rec.Model)
	require.GreaterOrEqual(t, rec.Year, 2015)
	require.LessOrEqual(t, rec.Year, 2024)

	require.NotNil(t, rec.RoadTaxExpiry)
	require.NotNil(t, rec.InsuranceExpiry)
	require.NotNil(t, rec.PUCExpiry)
	require.NotNil(t, rec.FitnessExpiry)

	// Fitness certificates come back with a fixed one-year validity.
	require.Equal(t, now.AddDate(0, 0, 365), *rec.FitnessExpiry)

	// Floating documents stay inside their generation windows.
	requireWithin(t, now, *rec.RoadTaxExpiry, -30, 90)
	requireWithin(t, now, *rec.InsuranceExpiry, -30, 120)
	requireWithin(t, now, *rec.PUCExpiry, -30, 60)
}

func TestMockClientDeterministicWithSeed(t *testing.T) {
	now := func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }

	a, err := NewMockClient(WithSeed(7), WithClock(now)).Lookup(context.Background(), "KA01CD5678")
	require.NoError(t, err)
	b, err := NewMockClient(WithSeed(7), WithClock(now)).Lookup(context.Background(), "KA01CD5678")
	require.NoError(t, err)

	require.Equal(t, a, b)
}

func TestMockClientHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMockClient().Lookup(ctx, "MH12AB1234")
	require.ErrorIs(t, err, context.Canceled)
}

func requireWithin(t *testing.T, base, got time.Time, minDays, maxDays int) {
	t.Helper()
	require.False(t, got.Before(base.AddDate(0, 0, minDays)))
	require.False(t, got.After(base.AddDate(0, 0, maxDays)))
}
