package api

import "Inkstone/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler       *handler.UserHandler
	PostHandler       *handler.PostHandler
	PostActionHandler *handler.PostActionHandler
	IMHandler         *handler.IMHandler
	WSHandler         *handler.WsHandler
	NotifyHandler     *handler.NotifyHandler
	MediaHandler      *handler.MediaHandler
	MusicHandler      *handler.MusicHandler
	FeedHandler       *handler.FeedHandler
}
