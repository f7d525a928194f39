package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShouldNotifySkipsNonAlertStates(t *testing.T) {
	dedup, err := NewDeduplicator(newMemFixture())
	require.NoError(t, err)

	for _, state := range []ComplianceState{
		{Kind: StateUnknown},
		{Kind: StateValid},
	} {
		should, _, err := dedup.ShouldNotify(context.Background(), "veh-1", DocumentRoadTax, "2024-01-10", state)
		require.NoError(t, err)
		require.False(t, should)
	}
}

func TestShouldNotifyOncePerKey(t *testing.T) {
	f := newMemFixture()
	dedup, err := NewDeduplicator(f)
	require.NoError(t, err)

	state := ComplianceState{Kind: StateExpiringSoon, Days: 9}

	should, key, err := dedup.ShouldNotify(context.Background(), "veh-1", DocumentRoadTax, "2024-01-10", state)
	require.NoError(t, err)
	require.True(t, should)
	require.Equal(t, NotificationKey{
		VehicleID:    "veh-1",
		DocumentType: DocumentRoadTax,
		ExpiryDate:   "2024-01-10",
		StateClass:   ClassExpiringSoon,
	}, key)

	_, err = f.CreateIfAbsent(context.Background(), NotificationRecord{Key: key})
	require.NoError(t, err)

	should, _, err = dedup.ShouldNotify(context.Background(), "veh-1", DocumentRoadTax, "2024-01-10", state)
	require.NoError(t, err)
	require.False(t, should)
}

func TestShouldNotifyDistinguishesClasses(t *testing.T) {
	f := newMemFixture()
	dedup, err := NewDeduplicator(f)
	require.NoError(t, err)

	_, key, err := dedup.ShouldNotify(context.Background(), "veh-1", DocumentInsurance, "2024-01-10",
		ComplianceState{Kind: StateExpiringSoon, Days: 3})
	require.NoError(t, err)

	_, err = f.CreateIfAbsent(context.Background(), NotificationRecord{Key: key})
	require.NoError(t, err)

	// The expired class for the same occurrence is a fresh key.
	should, expiredKey, err := dedup.ShouldNotify(context.Background(), "veh-1", DocumentInsurance, "2024-01-10",
		ComplianceState{Kind: StateExpired, Days: 2})
	require.NoError(t, err)
	require.True(t, should)
	require.Equal(t, ClassExpired, expiredKey.StateClass)
}
