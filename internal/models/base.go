package models

import "time"

// Base contains the common columns shared by all tables. Rows are removed with
// hard deletes, so there is no deleted_at column.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
