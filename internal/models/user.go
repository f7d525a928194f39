package models

// User describes a fleet owner account.
type User struct {
	BaseModel

	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	Vehicles []Vehicle `gorm:"foreignKey:UserID" json:"-"`
}
