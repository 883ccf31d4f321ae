// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Comment represents a comment on a post.
type Comment struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Content string `gorm:"not null;size:500" json:"content"`
	UserID  uint   `gorm:"not null" json:"user_id"`
	PostID  uint   `gorm:"not null" json:"post_id"`
	User    User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Post    Post   `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	// Author fields are joined from users at query time
	AuthorNickname  string `gorm:"->;-:migration" json:"author_nickname"`
	AuthorAvatarURL string `gorm:"->;-:migration" json:"author_avatar_url"`
	// PostTitle is joined from posts for the my-comments listing
	PostTitle string    `gorm:"->;-:migration" json:"post_title,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
