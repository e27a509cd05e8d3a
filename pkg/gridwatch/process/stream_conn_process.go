package process

import (
	"context"
	"fmt"
	"time"

	"github.com/tauraamui/gridwatch/pkg/camera"
	"github.com/tauraamui/gridwatch/pkg/log"
	"github.com/tauraamui/gridwatch/pkg/videoframe"
)

type streamConnProcess struct {
	ctx      context.Context
	cancel   context.CancelFunc
	stopping chan interface{}
	cam      camera.Connection
	dest     chan videoframe.Frame
}

func NewStreamConnProcess(cam camera.Connection, dest chan videoframe.Frame) Process {
	ctx, cancel := context.WithCancel(context.Background())
	return &streamConnProcess{
		ctx: ctx, cancel: cancel,
		cam: cam, dest: dest, stopping: make(chan interface{}),
	}
}

func (proc *streamConnProcess) Setup() Process { return proc }

func (proc *streamConnProcess) Start() {
	go proc.run()
}

func (proc *streamConnProcess) run() {
	interval := frameInterval(proc.cam.FPS())
	if interval == 0 {
		// frame aligned: read as fast as the source produces
		for {
			time.Sleep(1 * time.Microsecond)
			select {
			case <-proc.ctx.Done():
				close(proc.stopping)
				return
			default:
				stream(proc.cam, proc.dest)
			}
		}
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-proc.ctx.Done():
			close(proc.stopping)
			return
		case <-ticker.C:
			stream(proc.cam, proc.dest)
		}
	}
}

func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Second / time.Duration(fps)
}

func stream(cam camera.Connection, frames chan videoframe.Frame) {
	if cam.IsOpen() {
		log.Debug("Reading frame from vid stream for camera [%s]", cam.Title())
		frame, err := cam.Read()
		if err != nil {
			log.Error(fmt.Errorf("Unable to retrieve frame: %w. Auto re-connecting is not yet implemented", err).Error())
			return
		}
		select {
		case frames <- frame:
			log.Debug("Sending frame from cam to buffer...")
		default:
			frame.Close()
			log.Debug("Buffer full...")
		}
	}
}

func (proc *streamConnProcess) Stop() {
	proc.cancel()
}

func (proc *streamConnProcess) Wait() {
	<-proc.stopping
}
