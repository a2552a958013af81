package model

import (
	"time"
)

type Comment struct {
	ID        uint64    `gorm:"primaryKey"`
	PostID    uint64    `gorm:"not null;index:idx_comment_post_id" json:"postId"`
	UserID    uint64    `gorm:"not null" json:"userId"`
	ParentID  uint64    `gorm:"not null;default:0;index:idx_parent_id" json:"parentId"` // 0表示直接评论帖子，只支持一级嵌套
	Content   string    `gorm:"type:varchar(1000);not null" json:"content"`
	IsDeleted bool      `gorm:"type:tinyint(1);not null;default:0" json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// 关联关系
	User User `gorm:"foreignKey:UserID;references:ID"`
}

func (Comment) TableName() string {
	return "comments"
}
