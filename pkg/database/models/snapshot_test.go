package models_test

import (
	"testing"

	"github.com/matryer/is"
	"github.com/tauraamui/gridwatch/pkg/database/models"
)

func TestPackCellsRoundTripsAsymmetricGrid(t *testing.T) {
	is := is.New(t)
	cells := [][]bool{
		{true, false, true},
		{false, true, false},
		{true, true, false},
	}

	packed := models.PackCells(cells)
	is.Equal(len(packed), 2) // 9 cells fit into two bytes
	is.Equal(models.UnpackCells(packed, 3, 3), cells)
}

func TestPackCellsOfEmptyGridIsNil(t *testing.T) {
	is := is.New(t)
	is.Equal(models.PackCells(nil), nil)
	is.Equal(models.UnpackCells(nil, 0, 0), nil)
}

func TestGridSnapshotMatrixUnpacksStoredCells(t *testing.T) {
	is := is.New(t)
	cells := [][]bool{
		{true, false},
		{false, true},
	}
	snapshot := models.GridSnapshot{
		Rows: 2, Columns: 2,
		Cells: models.PackCells(cells),
	}

	is.Equal(snapshot.Matrix(), cells)
}

func TestGridSnapshotBeforeCreateAssignsUUID(t *testing.T) {
	is := is.New(t)
	snapshot := models.GridSnapshot{}
	is.NoErr(snapshot.BeforeCreate(nil))
	is.True(len(snapshot.UUID) > 0)
}
