package process

import (
	"context"
	"time"

	"github.com/tauraamui/gridwatch/pkg/camera"
	"github.com/tauraamui/gridwatch/pkg/log"
	"github.com/tauraamui/gridwatch/pkg/luminance"
	"github.com/tauraamui/gridwatch/pkg/videoframe"
)

type analyzeFrameProcess struct {
	ctx         context.Context
	cancel      context.CancelFunc
	stopping    chan interface{}
	cam         camera.Connection
	frames      chan videoframe.Frame
	dest        chan luminance.Result
	gridInvalid bool
}

func NewAnalyzeFrameProcess(cam camera.Connection, frames chan videoframe.Frame, dest chan luminance.Result) Process {
	ctx, cancel := context.WithCancel(context.Background())
	return &analyzeFrameProcess{
		ctx: ctx, cancel: cancel,
		cam: cam, frames: frames, dest: dest,
		stopping: make(chan interface{}),
	}
}

func (proc *analyzeFrameProcess) Setup() Process { return proc }

func (proc *analyzeFrameProcess) Start() {
	go proc.run()
}

func (proc *analyzeFrameProcess) run() {
	for {
		time.Sleep(1 * time.Microsecond)
		select {
		case <-proc.ctx.Done():
			close(proc.stopping)
			return
		default:
			select {
			case frame := <-proc.frames:
				proc.analyze(frame)
			default:
				continue
			}
		}
	}
}

func (proc *analyzeFrameProcess) analyze(frame videoframe.Frame) {
	defer frame.Close()

	// a rejected grid config never becomes valid again for this
	// connection, so stop analysing but keep draining the frame buffer
	if proc.gridInvalid {
		return
	}

	img, err := frame.ToRGBA()
	if err != nil {
		log.Error("Unable to convert frame from camera [%s] for analysis: %v", proc.cam.Title(), err)
		return
	}

	buf := luminance.BufferFromImage(img)
	result, err := luminance.Analyze(buf, resolveGrid(proc.cam.Grid(), frame.Dimensions()))
	if err != nil {
		proc.gridInvalid = true
		log.Error("Halting analysis for camera [%s], grid config rejected: %v", proc.cam.Title(), err)
		return
	}

	select {
	case proc.dest <- result:
		log.Debug("Sending grid result from analyser to buffer...")
	default:
		log.Debug("Result buffer full...")
	}
}

// resolveGrid fills a zero-valued sampling window with the frame's full
// dimensions. Explicit window placement is passed through untouched.
func resolveGrid(cfg luminance.Config, dims videoframe.Dimensions) luminance.Config {
	if cfg.OffsetX != 0 || cfg.OffsetY != 0 || cfg.WindowWidth != 0 || cfg.WindowHeight != 0 {
		return cfg
	}

	full := luminance.Default(dims.W, dims.H)
	if cfg.Rows > 0 {
		full.Rows = cfg.Rows
	}
	if cfg.Columns > 0 {
		full.Columns = cfg.Columns
	}
	full.Threshold = cfg.Threshold
	return full
}

func (proc *analyzeFrameProcess) Stop() {
	proc.cancel()
}

func (proc *analyzeFrameProcess) Wait() {
	<-proc.stopping
}
