package common

import (
	"net/rpc"
	"time"

	"github.com/tauraamui/gridwatch/pkg/log"
)

func init() {
	if err := rpc.Register(ConnectionData{}); err != nil {
		log.Error("unable to register connection data type for RPC") //nolint
	}
	if err := rpc.Register(GridData{}); err != nil {
		log.Error("unable to register grid data type for RPC") //nolint
	}
}

type ConnectionData struct {
	UUID,
	Title,
	Size string
}

func (c ConnectionData) GetUUID(args string, dst *string) error {
	*dst = c.UUID
	return nil
}

func (c ConnectionData) GetTitle(args string, dst *string) error {
	*dst = c.Title
	return nil
}

func (c ConnectionData) GetSize(string, dst *string) error {
	*dst = c.Size
	return nil
}

// GridData is the analysed boolean grid for a camera as handed to RPC
// clients. Cells are row-major, true means bright.
type GridData struct {
	CameraUUID  string
	CameraTitle string
	Rows        int
	Columns     int
	Cells       [][]bool
	BrightCells int
	CapturedAt  time.Time
}

func (g GridData) GetCameraUUID(args string, dst *string) error {
	*dst = g.CameraUUID
	return nil
}

func (g GridData) GetCameraTitle(args string, dst *string) error {
	*dst = g.CameraTitle
	return nil
}

func (g GridData) GetCells(args string, dst *[][]bool) error {
	*dst = g.Cells
	return nil
}
