package gridwatch

import (
	"fmt"

	"github.com/tauraamui/gridwatch/common"
	"github.com/tauraamui/gridwatch/pkg/camera"
	"github.com/tauraamui/gridwatch/pkg/luminance"
	"github.com/tauraamui/xerror"
)

// APIFetchActiveConnections returns descriptions of current active camera connections.
func (s *Server) APIFetchActiveConnections() []common.ConnectionData {
	s.mu.Lock()
	defer s.mu.Unlock()

	connections := []common.ConnectionData{}
	for _, cam := range s.cameras {
		if cam == nil || cam.IsClosing() {
			continue
		}
		connections = append(connections, common.ConnectionData{
			UUID:  cam.UUID(),
			Title: cam.Title(),
			Size:  s.connectionSize(cam),
		})
	}
	return connections
}

func (s *Server) connectionSize(cam camera.Connection) string {
	s.latestMu.Lock()
	defer s.latestMu.Unlock()
	data, ok := s.latest[cam.UUID()]
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf("%dx%d", data.Columns, data.Rows)
}

// APIFetchLatestGrid returns the most recent analysed grid for the given
// camera connection.
func (s *Server) APIFetchLatestGrid(cameraUUID string) (common.GridData, error) {
	s.latestMu.Lock()
	defer s.latestMu.Unlock()

	data, ok := s.latest[cameraUUID]
	if !ok {
		return common.GridData{}, xerror.Errorf("no grid analysed yet for camera connection [%s]", cameraUUID)
	}
	return data, nil
}

func (s *Server) storeLatest(cam camera.Connection, r luminance.Result) {
	data := common.GridData{
		CameraUUID:  cam.UUID(),
		CameraTitle: cam.Title(),
		Rows:        r.Config.Rows,
		Columns:     r.Config.Columns,
		Cells:       r.Matrix,
		BrightCells: r.BrightCount(),
		CapturedAt:  r.Timestamp,
	}

	s.latestMu.Lock()
	defer s.latestMu.Unlock()
	s.latest[cam.UUID()] = data
}
