package models

// Page is a slide within a project. ProjectID is immutable.
//
// TriggeredEvents is a non-owning back-reference: events anywhere in the
// same project whose NextPageID points here. Soft-deleting a page does not
// touch it; a dangling navigation target is the linking event's problem.
type Page struct {
	Model

	ProjectID int64  `gorm:"not null;index" json:"projectId"`
	Name      string `gorm:"size:255;not null" json:"name"`

	Project *Project     `gorm:"foreignKey:ProjectID" json:"-"`
	Objects []PageObject `gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE" json:"-"`

	TriggeredEvents []Event `gorm:"foreignKey:NextPageID" json:"-"`
}

// IsAccessibleTo delegates to the owning project. The project must be
// loaded; an unloaded parent chain is never accessible.
func (g *Page) IsAccessibleTo(uid int64) bool {
	return g.Project != nil && g.Project.IsAccessibleTo(uid)
}
