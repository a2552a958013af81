package model

import (
	"time"
)

type Post struct {
	ID            uint64    `gorm:"primaryKey"`
	UserID        uint64    `gorm:"not null;index:idx_user_id" json:"user_id"`
	Title         string    `gorm:"type:varchar(255)" json:"title"` // moment 可以没有标题
	Content       string    `gorm:"not null" json:"content"`
	Type          string    `gorm:"type:varchar(16);not null;default:'article';index:idx_type" json:"type"` // article / moment
	Tags          TagList   `gorm:"type:json;serializer:json" json:"tags"`
	LikesCount    int       `gorm:"not null;default:0" json:"likes_count"`
	ViewsCount    int       `gorm:"not null;default:0" json:"views_count"`
	CommentsCount int       `gorm:"not null;default:0" json:"comments_count"`
	IsPublic      bool      `gorm:"type:tinyint(1);not null;default:1" json:"is_public"`
	IsPinned      bool      `gorm:"type:tinyint(1);not null;default:0" json:"is_pinned"`
	IsDeleted     bool      `gorm:"type:tinyint(1);not null;default:0" json:"is_deleted"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// 关联关系
	User User `gorm:"foreignKey:UserID;references:ID"`
}

func (Post) TableName() string {
	return "posts"
}

type TagList []string
