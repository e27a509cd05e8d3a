package gridwatch

import (
	"os"
	"sync"
	"time"

	"github.com/tauraamui/gridwatch/pkg/camera"
	"github.com/tauraamui/gridwatch/pkg/gridwatch/process"
	"github.com/tauraamui/gridwatch/pkg/luminance"
)

func (s *Server) SetupProcesses() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cam := range s.cameras {
		proc := process.NewCoreProcess(cam, s.publishSettings(cam))
		proc.Setup()
		s.coreProcesses = append(s.coreProcesses, proc)
	}

	if s.snapshots != nil && s.config.MaxSnapshotAgeInDays > 0 {
		s.pruneProcess = process.New(process.Settings{
			WaitForShutdownMsg: "Stopping pruning of old grid snapshots...",
			Process:            process.DeleteOldSnapshots(s.snapshots, s.config.MaxSnapshotAgeInDays),
		})
	}
}

func (s *Server) publishSettings(cam camera.Connection) process.PublishSettings {
	sett := process.PublishSettings{
		Publish:         s.publishResult(cam),
		PersistInterval: time.Duration(s.config.SnapshotIntervalSeconds) * time.Second,
	}
	if s.snapshots != nil {
		sett.Snapshots = s.snapshots
	}
	if s.config.Debug {
		sett.Preview = os.Stdout
	}
	return sett
}

func (s *Server) publishResult(cam camera.Connection) func(luminance.Result) {
	return func(r luminance.Result) {
		s.storeLatest(cam, r)
	}
}

func (s *Server) RunProcesses() {
	for _, proc := range s.coreProcesses {
		proc.Start()
	}
	if s.pruneProcess != nil {
		s.pruneProcess.Start()
	}
}

func (s *Server) shutdownProcesses() {
	wg := sync.WaitGroup{}
	wg.Add(len(s.coreProcesses))
	for _, proc := range s.coreProcesses {
		go func(wg *sync.WaitGroup, proc process.Process) {
			proc.Stop()
			proc.Wait()
			wg.Done()
		}(&wg, proc)
	}
	wg.Wait()

	if s.pruneProcess != nil {
		s.pruneProcess.Stop()
		s.pruneProcess.Wait()
		s.pruneProcess = nil
	}
	s.coreProcesses = nil
}
