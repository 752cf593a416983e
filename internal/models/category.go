package models

// Category groups tasks for one user. Color is either null or a hex color of
// the form #RRGGBB; an empty string from a client is normalized to null
// before it reaches the model.
type Category struct {
	Base
	UserID uint    `gorm:"index;not null" json:"userId"`
	Name   string  `gorm:"size:100;not null" json:"name"`
	Color  *string `gorm:"size:7" json:"color"`
}
