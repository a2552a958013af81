package handler

import (
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedSvc service.FeedService
}

func NewFeedHandler(feedSvc service.FeedService) *FeedHandler {
	return &FeedHandler{feedSvc: feedSvc}
}

func (s *FeedHandler) RSS(c *gin.Context) {
	rss, err := s.feedSvc.BuildRSS(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}

func (s *FeedHandler) Sitemap(c *gin.Context) {
	sitemap, err := s.feedSvc.BuildSitemap(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", sitemap)
}

func (s *FeedHandler) Robots(c *gin.Context) {
	c.String(http.StatusOK, s.feedSvc.BuildRobots())
}
