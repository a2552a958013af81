package service

import (
	"Inkstone/internal/api/config"
	"Inkstone/internal/model"
	"Inkstone/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPostRepo struct {
	repository.PostRepo
	posts      []*model.Post
	lastFilter repository.PostListFilter
}

func (s *stubPostRepo) ListPosts(ctx context.Context, filter repository.PostListFilter) ([]*model.Post, int64, error) {
	s.lastFilter = filter
	return s.posts, int64(len(s.posts)), nil
}

func setupSite(t *testing.T) {
	t.Helper()
	config.Cfg = &config.Config{
		Site: config.SiteConfig{
			URL:         "https://blog.example.com",
			Title:       "测试站",
			Description: "站点描述",
			Author:      "站长",
		},
	}
}

func TestBuildRSSOnlyPublicArticles(t *testing.T) {
	setupSite(t)
	repo := &stubPostRepo{posts: []*model.Post{
		{ID: 1, Title: "第一篇", Content: "正文", CreatedAt: time.Now(), UpdatedAt: time.Now()},
	}}
	svc := NewFeedService(repo)

	rss, err := svc.BuildRSS(context.Background())
	require.NoError(t, err)

	assert.Contains(t, rss, "<title>测试站</title>")
	assert.Contains(t, rss, "https://blog.example.com/posts/1")
	assert.Contains(t, rss, "第一篇")

	// 订阅源只能收录公开的文章
	assert.True(t, repo.lastFilter.OnlyPublic)
	assert.Equal(t, "article", repo.lastFilter.Type)
}

func TestBuildSitemap(t *testing.T) {
	setupSite(t)
	repo := &stubPostRepo{posts: []*model.Post{
		{ID: 7, UpdatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}}
	svc := NewFeedService(repo)

	data, err := svc.BuildSitemap(context.Background())
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, out, "<loc>https://blog.example.com</loc>")
	assert.Contains(t, out, "<loc>https://blog.example.com/posts/7</loc>")
	assert.Contains(t, out, "<lastmod>2024-03-01</lastmod>")
	assert.True(t, repo.lastFilter.OnlyPublic)
}

func TestBuildRobots(t *testing.T) {
	setupSite(t)
	svc := NewFeedService(&stubPostRepo{})

	robots := svc.BuildRobots()
	assert.Contains(t, robots, "Disallow: /admin/")
	assert.Contains(t, robots, "Sitemap: https://blog.example.com/sitemap.xml")
}
