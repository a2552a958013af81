package service

import (
	"Inkstone/internal/api/config"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/repository"
	"context"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/gorilla/feeds"
)

const feedItemLimit = 20

// FeedService 站点对外输出：RSS 订阅、站点地图与爬虫规则
type FeedService interface {
	BuildRSS(ctx context.Context) (string, error)
	BuildSitemap(ctx context.Context) ([]byte, error)
	BuildRobots() string
}

type feedServiceImpl struct {
	postRepo repository.PostRepo
}

func NewFeedService(postRepo repository.PostRepo) FeedService {
	return &feedServiceImpl{postRepo: postRepo}
}

// BuildRSS 只收录公开文章，瞬间不进订阅源
func (s *feedServiceImpl) BuildRSS(ctx context.Context) (string, error) {
	site := config.Cfg.Site
	posts, _, err := s.postRepo.ListPosts(ctx, repository.PostListFilter{
		Type:       consts.PostTypeArticle,
		OnlyPublic: true,
		Limit:      feedItemLimit,
	})
	if err != nil {
		return "", err
	}

	feed := &feeds.Feed{
		Title:       site.Title,
		Link:        &feeds.Link{Href: site.URL},
		Description: site.Description,
		Author:      &feeds.Author{Name: site.Author},
		Created:     time.Now(),
	}

	for _, p := range posts {
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          fmt.Sprintf("%s/posts/%d", site.URL, p.ID),
			Title:       p.Title,
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/posts/%d", site.URL, p.ID)},
			Description: p.Content,
			Author:      &feeds.Author{Name: site.Author},
			Created:     p.CreatedAt,
			Updated:     p.UpdatedAt,
		})
	}

	return feed.ToRss()
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// BuildSitemap 首页加全部公开帖子
func (s *feedServiceImpl) BuildSitemap(ctx context.Context) ([]byte, error) {
	site := config.Cfg.Site
	posts, _, err := s.postRepo.ListPosts(ctx, repository.PostListFilter{
		OnlyPublic: true,
		Limit:      10000,
	})
	if err != nil {
		return nil, err
	}

	urlSet := sitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  []sitemapURL{{Loc: site.URL}},
	}
	for _, p := range posts {
		urlSet.URLs = append(urlSet.URLs, sitemapURL{
			Loc:     fmt.Sprintf("%s/posts/%d", site.URL, p.ID),
			LastMod: p.UpdatedAt.Format("2006-01-02"),
		})
	}

	data, err := xml.MarshalIndent(urlSet, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), data...), nil
}

func (s *feedServiceImpl) BuildRobots() string {
	site := config.Cfg.Site
	return fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s/sitemap.xml\n", site.URL)
}
