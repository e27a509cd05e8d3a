package process

import (
	"context"
	"time"

	"github.com/tauraamui/gridwatch/pkg/log"
)

const pruneCheckInterval = 5 * time.Minute

// SnapshotPruner removes persisted grids older than a cutoff. Satisfied by
// repos.SnapshotRepository.
type SnapshotPruner interface {
	DeleteOlderThan(cutoff time.Time) error
}

func DeleteOldSnapshots(pruner SnapshotPruner, maxAgeDays int) func(cancel context.Context) []chan interface{} {
	var lastDeleteInvokedAt time.Time
	return func(cancel context.Context) []chan interface{} {
		var stopSignals []chan interface{}
		log.Info("Pruning grid snapshots older than %d days", maxAgeDays)
		stopping := make(chan interface{})
		go func(cancel context.Context, stopping chan interface{}) {
		procLoop:
			for {
				time.Sleep(1 * time.Microsecond)
				select {
				case <-cancel.Done():
					close(stopping)
					break procLoop
				default:
					lastDeleteInvokedAt = prune(pruner, maxAgeDays, lastDeleteInvokedAt)
				}
			}
		}(cancel, stopping)
		stopSignals = append(stopSignals, stopping)
		return stopSignals
	}
}

func prune(pruner SnapshotPruner, maxAgeDays int, lastRun time.Time) time.Time {
	if time.Now().After(lastRun.Add(pruneCheckInterval)) {
		cutoff := time.Now().Add(time.Duration(-maxAgeDays) * 24 * time.Hour)
		if err := pruner.DeleteOlderThan(cutoff); err != nil {
			log.Error("Unable to delete old grid snapshots: %v", err)
		}
		return time.Now()
	}
	return lastRun
}
