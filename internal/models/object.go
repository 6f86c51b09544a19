package models

// ObjectType classifies a canvas element.
type ObjectType string

// Object types.
const (
	ObjectDefault ObjectType = "DEFAULT"
	ObjectText    ObjectType = "TEXT"
	ObjectImage   ObjectType = "IMAGE"
)

// Valid reports whether t is a known object type.
func (t ObjectType) Valid() bool {
	switch t {
	case ObjectDefault, ObjectText, ObjectImage:
		return true
	}
	return false
}

// PageObject is a positioned element on a page canvas. PageID is immutable.
// Geometry fields are always set; style fields are optional and nil when
// absent. The Events list may hold any number of soft-deleted events but at
// most one live one (the "active event").
type PageObject struct {
	Model

	PageID int64      `gorm:"not null;index" json:"pageId"`
	Type   ObjectType `gorm:"size:16;not null;default:DEFAULT" json:"type"`

	Width     float64 `gorm:"not null" json:"width"`
	Height    float64 `gorm:"not null" json:"height"`
	XPosition float64 `gorm:"not null" json:"xPosition"`
	YPosition float64 `gorm:"not null" json:"yPosition"`
	ZIndex    int     `gorm:"not null" json:"zIndex"`
	Opacity   float64 `gorm:"not null;default:1" json:"opacity"`

	TextContent     *string  `json:"textContent,omitempty"`
	FontSize        *float64 `json:"fontSize,omitempty"`
	LineHeight      *float64 `json:"lineHeight,omitempty"`
	LetterSpacing   *float64 `json:"letterSpacing,omitempty"`
	BackgroundColor *string  `gorm:"size:32" json:"backgroundColor,omitempty"`
	StrokeWidth     *float64 `json:"strokeWidth,omitempty"`
	StrokeColor     *string  `gorm:"size:32" json:"strokeColor,omitempty"`
	ImageSource     *string  `json:"imageSource,omitempty"`
	IsReversed      *bool    `json:"isReversed,omitempty"`
	RotateDegree    *float64 `json:"rotateDegree,omitempty"`

	Page   *Page   `gorm:"foreignKey:PageID" json:"-"`
	Events []Event `gorm:"foreignKey:ObjectID;constraint:OnDelete:CASCADE" json:"-"`
}

// IsAccessibleTo delegates to the owning page.
func (o *PageObject) IsAccessibleTo(uid int64) bool {
	return o.Page != nil && o.Page.IsAccessibleTo(uid)
}

// ActiveEvent returns the single undeleted event from the loaded Events
// list, or nil when the object has none.
func (o *PageObject) ActiveEvent() *Event {
	for i := range o.Events {
		if !o.Events[i].IsDeleted {
			return &o.Events[i]
		}
	}
	return nil
}
