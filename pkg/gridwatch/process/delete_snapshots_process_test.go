package process_test

import (
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/tauraamui/gridwatch/pkg/gridwatch/process"
)

type mockSnapshotPruner struct {
	cutoffs chan time.Time
	err     error
}

func (m *mockSnapshotPruner) DeleteOlderThan(cutoff time.Time) error {
	select {
	case m.cutoffs <- cutoff:
	default:
	}
	return m.err
}

func TestDeleteOldSnapshotsProcessPrunesBeyondMaxAge(t *testing.T) {
	is := is.New(t)

	pruner := mockSnapshotPruner{cutoffs: make(chan time.Time, 5)}
	deleteProcess := process.Settings{
		WaitForShutdownMsg: "Stopping test deleting old grid snapshots...",
		Process:            process.DeleteOldSnapshots(&pruner, 30),
	}

	deleteSnapshots := process.New(deleteProcess)
	deleteSnapshots.Start()

	var cutoff time.Time
	select {
	case <-time.After(3 * time.Second):
		t.Fatal("test timeout 3s limit exceeded")
	case cutoff = <-pruner.cutoffs:
	}

	deleteSnapshots.Stop()
	deleteSnapshots.Wait()

	expected := time.Now().Add(-30 * 24 * time.Hour)
	drift := cutoff.Sub(expected)
	if drift < 0 {
		drift = -drift
	}
	is.True(drift < time.Minute)
}

func TestPruneLeavesLastRunUntouchedWithinCheckInterval(t *testing.T) {
	is := is.New(t)

	pruner := mockSnapshotPruner{cutoffs: make(chan time.Time, 5)}
	lastRun := time.Now()
	is.True(process.Prune(&pruner, 30, lastRun).Equal(lastRun))
	is.Equal(len(pruner.cutoffs), 0)
}
