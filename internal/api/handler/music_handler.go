package handler

import (
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type MusicHandler struct {
	musicSvc service.MusicService
}

func NewMusicHandler(musicSvc service.MusicService) *MusicHandler {
	return &MusicHandler{musicSvc: musicSvc}
}

// GetPlaylist 返回站长配置的歌单，上游响应原样透传
func (s *MusicHandler) GetPlaylist(c *gin.Context) {
	body, err := s.musicSvc.GetPlaylist(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func (s *MusicHandler) GetLyric(c *gin.Context) {
	songID := c.Query("id")
	if songID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	body, err := s.musicSvc.GetLyric(c.Request.Context(), songID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
