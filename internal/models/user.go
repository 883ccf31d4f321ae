// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered member of the board.
// Account deletion is permanent, so there is no soft-delete column.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"user_id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Nickname  string    `gorm:"unique;not null" json:"nickname"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Posts     []Post    `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}
