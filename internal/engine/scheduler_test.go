package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ghatak0982/fleetcare/internal/models"
)

func TestSchedulerRunOnce(t *testing.T) {
	f := newMemFixture()
	f.owners = []DueOwner{{OwnerID: "owner-1"}}
	f.vehicles["owner-1"] = []models.Vehicle{{
		BaseModel:          models.BaseModel{ID: "veh-1"},
		UserID:             "owner-1",
		RegistrationNumber: "MH12AB1234",
		PUCExpiry:          datePtr(2024, 1, 10),
	}}

	runner := newTestRunner(t, f, time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC))
	sched, err := NewScheduler(runner, WithTickSpec("@every 1h"))
	require.NoError(t, err)

	summary, err := sched.RunOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, summary.NotificationsCreated)
}

func TestSchedulerStartStop(t *testing.T) {
	runner := newTestRunner(t, newMemFixture(), time.Now())

	sched, err := NewScheduler(runner)
	require.NoError(t, err)
	require.NoError(t, sched.Start())

	done := sched.Stop()
	select {
	case <-done.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestNewSchedulerRequiresRunner(t *testing.T) {
	_, err := NewScheduler(nil)
	require.Error(t, err)
}
