package models

import "time"

// DefaultTagColor is used when a tag is created without an explicit color.
const DefaultTagColor = "#3B82F6"

// Tag is a user-scoped label. (Name, UserID) is unique: two users may own
// same-named tags, one user may not.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
