// Package models contains the GORM entity definitions for canvaspilot.
//
// All domain entities embed Model and are soft-deletable: delete flips
// IsDeleted and stamps DeletedAt, rows are only removed by the retention
// sweeper. gorm.DeletedAt is deliberately not used: its implicit query
// scoping would hide soft-deleted rows from the sweeper and from cascade
// bookkeeping, both of which must see them.
package models

import "time"

// Model is the shared base for all soft-deletable entities.
type Model struct {
	ID         int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	CreatedBy  string     `gorm:"size:255" json:"createdBy"`
	ModifiedAt time.Time  `gorm:"autoUpdateTime" json:"modifiedAt"`
	ModifiedBy string     `gorm:"size:255" json:"modifiedBy"`
	IsDeleted  bool       `gorm:"not null;default:false;index" json:"-"`
	DeletedAt  *time.Time `json:"-"`
}

// SoftDelete marks the row deleted. A second call leaves the original
// DeletedAt stamp untouched.
func (m *Model) SoftDelete(now time.Time) {
	if m.IsDeleted {
		return
	}
	m.IsDeleted = true
	m.DeletedAt = &now
}

// AllModels lists every entity for AutoMigrate, parents before children so
// foreign keys resolve.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Project{},
		&Page{},
		&PageObject{},
		&Event{},
	}
}
