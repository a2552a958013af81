package dto

// CommentCreateDTO 创建评论请求
type CommentCreateDTO struct {
	PostID   uint64 `json:"post_id" binding:"required"`
	Content  string `json:"content" binding:"required,max=1000"`
	ParentID uint64 `json:"parent_id"` // 0 表示一级评论
}

// CommentDTO 评论返回详情，只支持一层回复
type CommentDTO struct {
	ID        uint64 `json:"id"`
	PostID    uint64 `json:"post_id"`
	UserID    uint64 `json:"user_id"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url"`
	Content   string `json:"content"`
	ParentID  uint64 `json:"parent_id"`
	CreatedAt string `json:"created_at"`

	Replies []*CommentDTO `json:"replies,omitempty"`
}

// PostActionStateDTO 帖子交互状态数据
type PostActionStateDTO struct {
	LikeCount     int64 `json:"like_count"`
	BookmarkCount int64 `json:"bookmark_count"`
	CommentCount  int64 `json:"comment_count"`
	ViewCount     int64 `json:"view_count"`
	IsLiked       bool  `json:"is_liked"`
	IsBookmarked  bool  `json:"is_bookmarked"`
}

// ToggleResultDTO 点赞/收藏开关结果
type ToggleResultDTO struct {
	Active bool  `json:"active"`
	Count  int64 `json:"count"`
}
