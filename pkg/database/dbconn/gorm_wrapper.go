package dbconn

import "gorm.io/gorm"

// GormWrapper narrows the gorm API surface to what the repositories use,
// so repo tests can run against an in-memory mock instead of a real
// sqlite file.
type GormWrapper interface {
	Error() error
	AutoMigrate(...interface{}) error
	Create(interface{}) GormWrapper
	Where(interface{}, ...interface{}) GormWrapper
	Order(interface{}) GormWrapper
	First(interface{}, ...interface{}) GormWrapper
	Delete(interface{}, ...interface{}) GormWrapper
}

type wrapper struct {
	db *gorm.DB
}

func Wrap(db *gorm.DB) GormWrapper {
	return &wrapper{
		db: db,
	}
}

func (w *wrapper) Error() error {
	return w.db.Error
}

func (w *wrapper) AutoMigrate(models ...interface{}) error {
	return w.db.AutoMigrate(models...)
}

func (w *wrapper) Create(value interface{}) GormWrapper {
	return &wrapper{db: w.db.Create(value)}
}

func (w *wrapper) Where(query interface{}, args ...interface{}) GormWrapper {
	return &wrapper{db: w.db.Where(query, args...)}
}

func (w *wrapper) Order(value interface{}) GormWrapper {
	return &wrapper{db: w.db.Order(value)}
}

func (w *wrapper) First(dest interface{}, conds ...interface{}) GormWrapper {
	return &wrapper{db: w.db.First(dest, conds...)}
}

func (w *wrapper) Delete(value interface{}, conds ...interface{}) GormWrapper {
	return &wrapper{db: w.db.Delete(value, conds...)}
}
