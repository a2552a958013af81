package service

import (
	"Inkstone/internal/api/config"
	"Inkstone/internal/pkg/cache"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// MusicService 音乐歌单代理：转发上游接口并在进程内缓存响应
type MusicService interface {
	GetPlaylist(ctx context.Context) ([]byte, error)
	GetLyric(ctx context.Context, songID string) ([]byte, error)
}

type musicServiceImpl struct {
	client *resty.Client
	cache  *cache.TTL
}

func NewMusicService(ttlCache *cache.TTL) MusicService {
	client := resty.New().
		SetBaseURL(config.Cfg.Music.BaseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	return &musicServiceImpl{
		client: client,
		cache:  ttlCache,
	}
}

// GetPlaylist 拉取配置用户的歌单，命中缓存时不请求上游
func (s *musicServiceImpl) GetPlaylist(ctx context.Context) ([]byte, error) {
	key := "playlist:" + config.Cfg.Music.UserID
	if data, ok := s.cache.Get(key); ok {
		return data, nil
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("uid", config.Cfg.Music.UserID).
		Get("/playlist")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("歌单接口响应异常: %s", resp.Status())
	}

	body := resp.Body()
	s.cache.Set(key, body)
	return body, nil
}

// GetLyric 按歌曲 ID 拉取歌词
func (s *musicServiceImpl) GetLyric(ctx context.Context, songID string) ([]byte, error) {
	key := "lyric:" + songID
	if data, ok := s.cache.Get(key); ok {
		return data, nil
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("id", songID).
		Get("/lyric")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("歌词接口响应异常: %s", resp.Status())
	}

	body := resp.Body()
	s.cache.Set(key, body)
	return body, nil
}
