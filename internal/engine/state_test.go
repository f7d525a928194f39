package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	date := func(day int) *time.Time {
		d := time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)
		return &d
	}

	tests := []struct {
		name       string
		expiry     *time.Time
		daysBefore int
		want       ComplianceState
	}{
		{"absent date is unknown", nil, 15, ComplianceState{Kind: StateUnknown}},
		{"far future is valid", date(20), 15, ComplianceState{Kind: StateValid}},
		{"inside window", date(10), 15, ComplianceState{Kind: StateExpiringSoon, Days: 9}},
		{"boundary day counts as expiring", date(16), 15, ComplianceState{Kind: StateExpiringSoon, Days: 15}},
		{"expiring today", date(1), 15, ComplianceState{Kind: StateExpiringSoon, Days: 0}},
		{"one day overdue", &[]time.Time{time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)}[0], 15, ComplianceState{Kind: StateExpired, Days: 1}},
		{"narrow window keeps valid", date(10), 5, ComplianceState{Kind: StateValid}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.expiry, tc.daysBefore, now, time.UTC)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestClassifyExpiredDaysOverdue(t *testing.T) {
	now := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)
	expiry := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	got := Classify(&expiry, 15, now, time.UTC)
	require.Equal(t, ComplianceState{Kind: StateExpired, Days: 2}, got)
}

func TestAlertWorthy(t *testing.T) {
	require.False(t, ComplianceState{Kind: StateUnknown}.AlertWorthy())
	require.False(t, ComplianceState{Kind: StateValid}.AlertWorthy())
	require.True(t, ComplianceState{Kind: StateExpiringSoon, Days: 3}.AlertWorthy())
	require.True(t, ComplianceState{Kind: StateExpired, Days: 1}.AlertWorthy())
}

func TestStateClass(t *testing.T) {
	class, ok := ComplianceState{Kind: StateExpiringSoon, Days: 5}.Class()
	require.True(t, ok)
	require.Equal(t, ClassExpiringSoon, class)

	class, ok = ComplianceState{Kind: StateExpired, Days: 2}.Class()
	require.True(t, ok)
	require.Equal(t, ClassExpired, class)

	_, ok = ComplianceState{Kind: StateValid}.Class()
	require.False(t, ok)

	_, ok = ComplianceState{Kind: StateUnknown}.Class()
	require.False(t, ok)
}

func TestNotificationText(t *testing.T) {
	require.Equal(t, "Insurance expiring in 5 days",
		NotificationTitle(DocumentInsurance, ComplianceState{Kind: StateExpiringSoon, Days: 5}))
	require.Equal(t, "Road tax expired 3 days ago",
		NotificationTitle(DocumentRoadTax, ComplianceState{Kind: StateExpired, Days: 3}))
	require.Equal(t, "PUC certificate expiring today",
		NotificationTitle(DocumentPUC, ComplianceState{Kind: StateExpiringSoon, Days: 0}))
	require.Equal(t, "Fitness certificate expiring in 1 day",
		NotificationTitle(DocumentFitness, ComplianceState{Kind: StateExpiringSoon, Days: 1}))

	msg := NotificationMessage("MH12AB1234", DocumentInsurance, ComplianceState{Kind: StateExpiringSoon, Days: 5})
	require.Contains(t, msg, "MH12AB1234")
	require.Contains(t, msg, "expires in 5 days")
}
