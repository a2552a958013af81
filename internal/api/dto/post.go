package dto

// PostCreateDTO 发布文章或瞬间
type PostCreateDTO struct {
	Title    string `json:"title" validate:"omitempty,max=255"`
	Content  string `json:"content" validate:"required"`
	Type     string `json:"type" validate:"required,oneof=article moment"`
	IsPublic *bool  `json:"is_public"`
}

// PostUpdateDTO 编辑帖子，指针字段为空表示不修改
type PostUpdateDTO struct {
	Title    *string `json:"title" validate:"omitempty,max=255"`
	Content  *string `json:"content"`
	IsPublic *bool   `json:"is_public"`
}

// PostDTO 帖子明细响应
type PostDTO struct {
	ID            uint64   `json:"id"`
	Type          string   `json:"type"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Tags          []string `json:"tags"`
	LikesCount    int64    `json:"likes_count"`
	ViewsCount    int64    `json:"views_count"`
	CommentsCount int64    `json:"comments_count"`
	IsPublic      bool     `json:"is_public"`
	IsPinned      bool     `json:"is_pinned"`
	IsLiked       bool     `json:"is_liked"`
	IsBookmarked  bool     `json:"is_bookmarked"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`

	// User
	UserID    uint64 `json:"user_id"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url"`
}

// PostListDTO 帖子分页列表
type PostListDTO struct {
	List  []*PostDTO `json:"list"`
	Total int64      `json:"total"`
}

// PostSearchDTO 全文检索请求
type PostSearchDTO struct {
	Keyword  string `form:"keyword" validate:"required,min=1"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}
