package process

import (
	"context"
	"io"
	"time"

	"github.com/tauraamui/gridwatch/pkg/camera"
	"github.com/tauraamui/gridwatch/pkg/database/models"
	"github.com/tauraamui/gridwatch/pkg/gridrender"
	"github.com/tauraamui/gridwatch/pkg/log"
	"github.com/tauraamui/gridwatch/pkg/luminance"
)

// SnapshotWriter persists analysed grids. Satisfied by repos.SnapshotRepository.
type SnapshotWriter interface {
	Create(*models.GridSnapshot) error
}

type PublishSettings struct {
	// Publish receives every grid result, called from the process goroutine.
	Publish func(luminance.Result)
	// Snapshots, when non-nil, receives a persisted snapshot at most once
	// per PersistInterval.
	Snapshots       SnapshotWriter
	PersistInterval time.Duration
	// Preview, when non-nil, receives a braille rendering of each grid.
	Preview io.Writer
}

type publishGridProcess struct {
	ctx           context.Context
	cancel        context.CancelFunc
	stopping      chan interface{}
	cam           camera.Connection
	results       chan luminance.Result
	sett          PublishSettings
	lastPersistAt time.Time
}

func NewPublishGridProcess(cam camera.Connection, results chan luminance.Result, sett PublishSettings) Process {
	ctx, cancel := context.WithCancel(context.Background())
	return &publishGridProcess{
		ctx: ctx, cancel: cancel,
		cam: cam, results: results, sett: sett,
		stopping: make(chan interface{}),
	}
}

func (proc *publishGridProcess) Setup() Process { return proc }

func (proc *publishGridProcess) Start() {
	go proc.run()
}

func (proc *publishGridProcess) run() {
	for {
		time.Sleep(1 * time.Microsecond)
		select {
		case <-proc.ctx.Done():
			close(proc.stopping)
			return
		default:
			select {
			case result := <-proc.results:
				proc.publish(result)
			default:
				continue
			}
		}
	}
}

func (proc *publishGridProcess) publish(result luminance.Result) {
	if proc.sett.Publish != nil {
		proc.sett.Publish(result)
	}

	if proc.sett.Preview != nil {
		if err := gridrender.Print(proc.sett.Preview, result.Matrix); err != nil {
			log.Error("Unable to render grid preview for camera [%s]: %v", proc.cam.Title(), err)
		}
	}

	proc.persist(result)
}

func (proc *publishGridProcess) persist(result luminance.Result) {
	if proc.sett.Snapshots == nil {
		return
	}

	if result.Timestamp.Sub(proc.lastPersistAt) < proc.sett.PersistInterval {
		return
	}

	snapshot := models.GridSnapshot{
		CameraUUID:  proc.cam.UUID(),
		CameraTitle: proc.cam.Title(),
		Rows:        result.Config.Rows,
		Columns:     result.Config.Columns,
		BrightCells: result.BrightCount(),
		Cells:       models.PackCells(result.Matrix),
		CapturedAt:  result.Timestamp,
	}
	if err := proc.sett.Snapshots.Create(&snapshot); err != nil {
		log.Error("Unable to persist grid snapshot for camera [%s]: %v", proc.cam.Title(), err)
		return
	}
	proc.lastPersistAt = result.Timestamp
}

func (proc *publishGridProcess) Stop() {
	proc.cancel()
}

func (proc *publishGridProcess) Wait() {
	<-proc.stopping
}
