package consts

const (
	MimePrefixImage = "image"
)

const (
	PostTypeArticle = "article"
	PostTypeMoment  = "moment"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

const (
	DefaultAvatarURL = "default_avatar.png"
)

// GlobalConversationID 全站公共聊天室的固定会话 ID
const GlobalConversationID uint64 = 1
