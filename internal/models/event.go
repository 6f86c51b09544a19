package models

// TransitionType names the animation used when an event navigates.
type TransitionType string

// Transition types.
const (
	TransitionNone       TransitionType = "NONE"
	TransitionFade       TransitionType = "FADE"
	TransitionSlideLeft  TransitionType = "SLIDE_LEFT"
	TransitionSlideRight TransitionType = "SLIDE_RIGHT"
	TransitionSlideUp    TransitionType = "SLIDE_UP"
	TransitionSlideDown  TransitionType = "SLIDE_DOWN"
)

// Valid reports whether t is a known transition type.
func (t TransitionType) Valid() bool {
	switch t {
	case TransitionNone, TransitionFade, TransitionSlideLeft,
		TransitionSlideRight, TransitionSlideUp, TransitionSlideDown:
		return true
	}
	return false
}

// Event is a navigation trigger attached to an object. ObjectID is
// immutable. NextPageID, when set, must reference a page of the same
// project; the retention sweeper may null it out when the target page is
// purged (ON DELETE SET NULL).
type Event struct {
	Model

	ObjectID       int64          `gorm:"not null;index" json:"objectId"`
	TransitionType TransitionType `gorm:"size:16;not null;default:NONE" json:"transitionType"`
	NextPageID     *int64         `gorm:"index" json:"nextPageId,omitempty"`

	Object   *PageObject `gorm:"foreignKey:ObjectID" json:"-"`
	NextPage *Page       `gorm:"foreignKey:NextPageID;constraint:OnDelete:SET NULL" json:"-"`
}

// IsAccessibleTo delegates to the owning object.
func (e *Event) IsAccessibleTo(uid int64) bool {
	return e.Object != nil && e.Object.IsAccessibleTo(uid)
}
