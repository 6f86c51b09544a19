package models

// User is a platform account. UserID is the unique login handle; Password
// holds the bcrypt hash and never serializes.
type User struct {
	Model

	UserID   string `gorm:"size:255;not null;uniqueIndex" json:"userId"`
	Username string `gorm:"size:255;not null" json:"username"`
	Email    string `gorm:"size:255" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"`

	Projects []Project `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
}
