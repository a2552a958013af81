package es

import "time"

// PostES 写入 ES 的帖子文档
type PostES struct {
	ID         uint64    `json:"id"`
	UserID     uint64    `json:"user_id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Tags       []string  `json:"tags"`
	IsPublic   bool      `json:"is_public"`
	LikesCount int       `json:"likes_count"`
	ViewsCount int       `json:"views_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
