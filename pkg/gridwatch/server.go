package gridwatch

import (
	"context"
	"sync"

	"github.com/tauraamui/gridwatch/common"
	"github.com/tauraamui/gridwatch/pkg/camera"
	"github.com/tauraamui/gridwatch/pkg/config"
	"github.com/tauraamui/gridwatch/pkg/configdef"
	"github.com/tauraamui/gridwatch/pkg/database/dbconn"
	"github.com/tauraamui/gridwatch/pkg/database/repos"
	"github.com/tauraamui/gridwatch/pkg/gridwatch/process"
	"github.com/tauraamui/gridwatch/pkg/log"
	"github.com/tauraamui/gridwatch/pkg/videobackend"
	"github.com/tauraamui/xerror"
)

type Server struct {
	shutdownDone   chan interface{}
	configResolver config.Resolver
	config         configdef.Values
	backend        videobackend.Backend
	mu             sync.Mutex
	cameras        []camera.Connection
	coreProcesses  []process.Process
	pruneProcess   process.Process
	snapshots      *repos.SnapshotRepository
	latestMu       sync.Mutex
	latest         map[string]common.GridData
}

func NewServer(resolver config.Resolver, backend videobackend.Backend) (*Server, error) {
	if resolver == nil {
		return nil, xerror.New("server requires a config resolver")
	}
	if backend == nil {
		return nil, xerror.New("server requires a video backend")
	}
	return &Server{
		configResolver: resolver,
		backend:        backend,
		latest:         map[string]common.GridData{},
	}, nil
}

// AttachSnapshotStore enables grid snapshot persistence and pruning
// against the given database connection.
func (s *Server) AttachSnapshotStore(db dbconn.GormWrapper) {
	s.snapshots = &repos.SnapshotRepository{DB: db}
}

func (s *Server) LoadConfiguration() error {
	config, err := s.configResolver.Resolve()
	if err != nil {
		return err
	}

	s.config = config
	return nil
}

func (s *Server) Connect() []error {
	return s.connect(context.Background())
}

func (s *Server) ConnectWithCancel(cancel context.Context) []error {
	return s.connect(cancel)
}

func (s *Server) connect(cancel context.Context) []error {
	s.shutdownDone = make(chan interface{})
	var errs []error

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cam := range s.config.Cameras {
		select {
		case <-cancel.Done():
			return nil
		default:
			if cam.Disabled {
				log.Warn("Camera [%s] is disabled... skipping...", cam.Title)
				continue
			}
			settings := camera.Settings{
				FPS:  cam.FPS,
				Grid: cam.Grid.Luminance(),
			}
			conn, err := connectToCamera(cancel, cam.Title, cam.Address, settings, s.resolveBackend(cam))
			if err != nil {
				errs = append(errs, err)
			}

			if conn != nil {
				log.Info("Connected successfully to camera: [%s]", cam.Title)
				s.cameras = append(s.cameras, conn)
			}
		}
	}
	return errs
}

func (s *Server) resolveBackend(cam configdef.Camera) videobackend.Backend {
	if cam.MockCapturer {
		return videobackend.Mock()
	}
	return s.backend
}

func connectToCamera(ctx context.Context, title, addr string, sett camera.Settings, backend videobackend.Backend) (camera.Connection, error) {
	log.Info("Connecting to camera: [%s@%s]...", title, addr)
	return camera.ConnectWithCancel(ctx, title, addr, sett, backend)
}

func (s *Server) shutdown() {
	s.shutdownProcesses()

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cam := range s.cameras {
		log.Warn("Closing camera connection: [%s]...", cam.Title())
		cam.Close()
	}
	s.cameras = nil
	close(s.shutdownDone)
}

func (s *Server) Shutdown() chan interface{} {
	s.shutdown()
	return s.shutdownDone
}
