package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func init() {
	registerForAutomigration(&GridSnapshot{})
}

// GridSnapshot is a single analysed grid persisted for a camera. Cells are
// bit-packed row-major, one bit per grid cell, bright high.
type GridSnapshot struct {
	gorm.Model
	UUID        string
	CameraUUID  string `gorm:"index"`
	CameraTitle string
	Rows        int
	Columns     int
	BrightCells int
	Cells       []byte
	CapturedAt  time.Time
}

func (s *GridSnapshot) BeforeCreate(tx *gorm.DB) error {
	s.UUID = uuid.NewString()
	return nil
}

// Matrix unpacks the stored cells back into a row-major boolean grid.
func (s *GridSnapshot) Matrix() [][]bool {
	return UnpackCells(s.Cells, s.Rows, s.Columns)
}

func PackCells(cells [][]bool) []byte {
	rows := len(cells)
	if rows == 0 {
		return nil
	}
	cols := len(cells[0])

	packed := make([]byte, (rows*cols+7)/8)
	i := 0
	for _, row := range cells {
		for _, bright := range row {
			if bright {
				packed[i/8] |= 1 << uint(i%8)
			}
			i++
		}
	}
	return packed
}

func UnpackCells(packed []byte, rows, cols int) [][]bool {
	if rows <= 0 || cols <= 0 {
		return nil
	}

	cells := make([][]bool, rows)
	i := 0
	for r := 0; r < rows; r++ {
		cells[r] = make([]bool, cols)
		for c := 0; c < cols; c++ {
			if i/8 < len(packed) {
				cells[r][c] = packed[i/8]&(1<<uint(i%8)) != 0
			}
			i++
		}
	}
	return cells
}
