package repos

import (
	"time"

	"github.com/tauraamui/gridwatch/pkg/database/dbconn"
	"github.com/tauraamui/gridwatch/pkg/database/models"
	"github.com/tauraamui/xerror"
)

type SnapshotRepository struct {
	DB dbconn.GormWrapper
}

func (r *SnapshotRepository) Create(snapshot *models.GridSnapshot) error {
	return r.DB.Create(snapshot).Error()
}

func (r *SnapshotRepository) FindLatestByCamera(cameraUUID string) (models.GridSnapshot, error) {
	snapshot := models.GridSnapshot{}
	if err := r.DB.Where("camera_uuid = ?", cameraUUID).Order("captured_at desc").First(&snapshot).Error(); err != nil {
		return snapshot, xerror.Errorf("no snapshots found for camera of uuid %s", cameraUUID)
	}

	return snapshot, nil
}

func (r *SnapshotRepository) DeleteOlderThan(cutoff time.Time) error {
	return r.DB.Where("captured_at < ?", cutoff).Delete(&models.GridSnapshot{}).Error()
}
