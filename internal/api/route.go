package api

import (
	"Inkstone/internal/api/middleware"
	"Inkstone/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	// 站点订阅与爬虫入口不走 /api 前缀
	r.GET("/rss.xml", group.FeedHandler.RSS)
	r.GET("/sitemap.xml", group.FeedHandler.Sitemap)
	r.GET("/robots.txt", group.FeedHandler.Robots)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			// 无需登录即可访问的接口
			userGroup.POST("/login", group.UserHandler.Login)
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.GET("/:id/info", group.UserHandler.GetUserInfo)

			// 主题偏好允许匿名：未登录按设备标识记忆
			themeGroup := userGroup.Group("")
			themeGroup.Use(middleware.AuthOptionalMiddleware())
			{
				themeGroup.GET("/theme", group.UserHandler.GetTheme)
				themeGroup.PUT("/theme", group.UserHandler.UpdateTheme)
			}

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/info", group.UserHandler.GetMyInfo)
				authGroup.PUT("/info", group.UserHandler.UpdateMyInfo)
			}

			// 需要登录 & 拥有 admin 角色
			adminGroup := authGroup.Group("")
			adminGroup.Use(middleware.CheckRoles("ADMIN"))
			{
				adminGroup.POST("/:id/ban", group.UserHandler.BanUser)
				adminGroup.POST("/:id/unban", group.UserHandler.UnBanUser)
				adminGroup.GET("/list", group.UserHandler.ListUsers)
			}
		}

		postGroup := apiGroup.Group("/posts")
		{
			authOptGroup := postGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("", group.PostHandler.ListPosts)
				authOptGroup.GET("/search", group.PostHandler.SearchPosts)
				authOptGroup.GET("/detail/:id", group.PostHandler.GetPost)
				authOptGroup.GET("/bookmarked", group.PostHandler.GetBookmarkedPosts)
			}

			authGroup := postGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.PostHandler.CreatePost)
				authGroup.PUT("/:id", group.PostHandler.UpdatePost)
				authGroup.DELETE("/:id", group.PostHandler.DeletePost)
			}

			adminGroup := authGroup.Group("")
			adminGroup.Use(middleware.CheckRoles("ADMIN"))
			{
				adminGroup.GET("/all", group.PostHandler.ListAllPosts)
				adminGroup.PUT("/:id/pin", group.PostHandler.PinPost)
			}
		}

		postActionGroup := apiGroup.Group("/post/action")
		{
			postActionGroup.GET("/comments/:id", group.PostActionHandler.GetComments)

			// 点赞与收藏允许匿名：未登录按设备标识记忆
			authOptGroup := postActionGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.POST("/likes/:id", group.PostActionHandler.ToggleLike)
				authOptGroup.POST("/bookmarks/:id", group.PostActionHandler.ToggleBookmark)
				authOptGroup.GET("/state/:id", group.PostActionHandler.GetActionState)
			}

			authGroup := postActionGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/comments", group.PostActionHandler.CreateComment)
				authGroup.DELETE("/comments/:id", group.PostActionHandler.DeleteComment)
			}
		}

		imGroup := apiGroup.Group("/im")
		{
			imGroup.GET("", group.WSHandler.Connect)
			authGroup := imGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/send", group.IMHandler.SendMessage)
				authGroup.GET("/history/:id", group.IMHandler.GetChatHistory)
				authGroup.GET("/sync/:id", group.IMHandler.SyncMessages)
				authGroup.GET("/list", group.IMHandler.GetConversationList)
				authGroup.GET("/unread", group.IMHandler.GetUnreadTotal)
				authGroup.POST("/read", group.IMHandler.MarkAsRead)
				authGroup.POST("/conversation/:user_id", group.IMHandler.GetOrCreateConversation)
				authGroup.POST("/global/join", group.IMHandler.JoinGlobalConversation)
			}
		}

		notifyGroup := apiGroup.Group("/notify")
		notifyGroup.Use(middleware.AuthMiddleware())
		{
			notifyGroup.GET("/list", group.NotifyHandler.GetList)
			notifyGroup.GET("/unread", group.NotifyHandler.GetUnreadCount)
			notifyGroup.POST("/read/:id", group.NotifyHandler.MarkAsRead)
			notifyGroup.POST("/read/all", group.NotifyHandler.MarkAllAsRead)
		}

		mediaGroup := apiGroup.Group("/media")
		{
			mediaGroup.Use(middleware.AuthMiddleware())
			mediaGroup.POST("/upload", group.MediaHandler.Upload)
		}

		musicGroup := apiGroup.Group("/music")
		{
			musicGroup.GET("/playlist", group.MusicHandler.GetPlaylist)
			musicGroup.GET("/lyric", group.MusicHandler.GetLyric)
		}
	}

	return r
}
