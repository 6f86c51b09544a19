package models

import "gorm.io/datatypes"

// Project is the root of the ownership tree. OwnerID is immutable after
// creation; every descendant's accessibility derives from it.
type Project struct {
	Model

	OwnerID   int64                                  `gorm:"not null;index" json:"ownerId"`
	Title     string                                 `gorm:"size:255;not null" json:"title"`
	Variables datatypes.JSONType[map[string]string]  `json:"variables"`

	Owner *User  `gorm:"foreignKey:OwnerID" json:"-"`
	Pages []Page `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
}

// IsAccessibleTo reports whether uid owns this project.
func (p *Project) IsAccessibleTo(uid int64) bool {
	return p.OwnerID == uid
}
