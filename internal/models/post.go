package models

import (
	"time"
)

type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"not null" json:"title"`
	Content  string `gorm:"not null" json:"content"`
	ImageURL string `json:"image_url"`
	UserID   uint   `gorm:"not null" json:"user_id"`
	User     User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	// AuthorNickname is not persisted; joined from users at query time
	AuthorNickname string `gorm:"->;-:migration" json:"author_nickname"`
	// LikeCount is not persisted; computed at query time
	LikeCount int `gorm:"->;-:migration" json:"like_count"`
	// TotalCount carries the window-function count of the full filtered
	// set during paginated listing; it is echoed in the page envelope,
	// never on the post itself.
	TotalCount int64     `gorm:"->;-:migration" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PostPage is the envelope returned by paginated and my-page listings.
type PostPage struct {
	Posts      []*Post `json:"posts"`
	TotalCount int64   `json:"total_count"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}
