package process

import (
	"sync"

	"github.com/tauraamui/gridwatch/pkg/camera"
	"github.com/tauraamui/gridwatch/pkg/luminance"
	"github.com/tauraamui/gridwatch/pkg/videoframe"
)

func NewCoreProcess(cam camera.Connection, sett PublishSettings) Process {
	return &analyzeCameraStream{
		cam:     cam,
		sett:    sett,
		frames:  make(chan videoframe.Frame, 3),
		results: make(chan luminance.Result, 3),
	}
}

type analyzeCameraStream struct {
	cam           camera.Connection
	sett          PublishSettings
	frames        chan videoframe.Frame
	results       chan luminance.Result
	streamConn    Process
	analyzeFrames Process
	publishGrids  Process
}

func (proc *analyzeCameraStream) Setup() Process {
	proc.publishGrids = NewPublishGridProcess(proc.cam, proc.results, proc.sett)
	proc.analyzeFrames = NewAnalyzeFrameProcess(proc.cam, proc.frames, proc.results)
	proc.streamConn = NewStreamConnProcess(proc.cam, proc.frames)
	return proc
}

func (proc *analyzeCameraStream) Start() {
	proc.publishGrids.Start()
	proc.analyzeFrames.Start()
	proc.streamConn.Start()
}

func (proc *analyzeCameraStream) Stop() {
	proc.publishGrids.Stop()
	proc.analyzeFrames.Stop()
	proc.streamConn.Stop()
}

func (proc *analyzeCameraStream) Wait() {
	wg := sync.WaitGroup{}
	wg.Add(3)
	go func(wg *sync.WaitGroup) {
		proc.publishGrids.Wait()
		wg.Done()
	}(&wg)
	go func(wg *sync.WaitGroup) {
		proc.analyzeFrames.Wait()
		wg.Done()
	}(&wg)
	go func(wg *sync.WaitGroup) {
		proc.streamConn.Wait()
		wg.Done()
	}(&wg)
	wg.Wait()
}
