package models

import "strings"

// User represents a registered account. The password column holds a bcrypt
// hash and is never serialized.
type User struct {
	Base
	FirstName string `gorm:"size:100;not null" json:"firstName"`
	LastName  string `gorm:"size:100;not null" json:"lastName"`
	Email     string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string `gorm:"size:255;not null" json:"-"`
	IsStudent bool   `gorm:"default:false" json:"isStudent"`

	Tasks      []Task     `gorm:"foreignKey:UserID" json:"-"`
	Categories []Category `gorm:"foreignKey:UserID" json:"-"`
}

// Identity is the minimal public profile of an authenticated user. It is
// resolved from the session on every request and carried through the gin
// context; it never contains the password hash.
type Identity struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewIdentity derives an Identity from a user row. The display name is the
// first and last name joined and trimmed, so a missing part leaves no stray
// whitespace.
func NewIdentity(u *User) Identity {
	return Identity{
		ID:    u.ID,
		Name:  strings.TrimSpace(u.FirstName + " " + u.LastName),
		Email: u.Email,
	}
}
