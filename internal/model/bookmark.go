package model

import (
	"time"
)

type Bookmark struct {
	UserID    uint64    `gorm:"primaryKey" json:"userId"`
	PostID    uint64    `gorm:"primaryKey;index:idx_bookmark_post_id" json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Bookmark) TableName() string {
	return "bookmarks"
}
