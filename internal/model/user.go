package model

import (
	"time"
)

type User struct {
	ID           uint64    `gorm:"primaryKey"`
	Username     string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_username" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Nickname     string    `gorm:"type:varchar(64)" json:"nickname"`
	AvatarURL    string    `gorm:"type:varchar(255)" json:"avatar_url"`
	Bio          string    `gorm:"type:varchar(255)" json:"bio"`
	Theme        string    `gorm:"type:varchar(16);not null;default:'light'" json:"theme"`
	IsAdmin      bool      `gorm:"type:tinyint(1);not null;default:0" json:"is_admin"`
	IsBanned     bool      `gorm:"type:tinyint(1);not null;default:0" json:"is_banned"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Roles 角色列表，写入 Token Claims
func (u *User) Roles() []string {
	if u.IsAdmin {
		return []string{"ADMIN"}
	}
	return nil
}
