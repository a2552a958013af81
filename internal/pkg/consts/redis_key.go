package consts

const (
	PostLikeKey     = "post:like:"
	PostBookmarkKey = "post:bookmark:"
	PostCommentKey  = "post:comment:"
	PostViewKey     = "post:view:"
	PostDirtyKey    = "post:dirty"

	AnonLikeKey     = "anon:like:"
	AnonBookmarkKey = "anon:bookmark:"
	AnonThemeKey    = "anon:theme:"

	ChatChannelKey = "chat:conversation:"
)
