package repository

import (
	"Inkstone/internal/model"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// 每个用例独立的内存库，cache=shared 让连接池内的连接指向同一实例
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Like{},
		&model.Bookmark{},
		&model.Comment{},
		&model.Conversation{},
		&model.ConversationMember{},
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	u := &model.User{
		Username:     username,
		PasswordHash: "x",
		Nickname:     username,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedPost(t *testing.T, db *gorm.DB, userID uint64, mutate func(*model.Post)) *model.Post {
	t.Helper()
	p := &model.Post{
		UserID:   userID,
		Title:    "标题",
		Content:  "正文 #日常",
		Type:     "article",
		Tags:     model.TagList{"日常"},
		IsPublic: true,
	}
	if mutate != nil {
		mutate(p)
	}
	require.NoError(t, db.Create(p).Error)
	return p
}
