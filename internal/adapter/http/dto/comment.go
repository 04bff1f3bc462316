package dto

type CommentItem struct {
	ID         uint64 `json:"id"`
	TaskID     uint64 `json:"task_id"`
	UserID     uint64 `json:"user_id"`
	AuthorName string `json:"author_name"`
	Content    string `json:"content"`
	CreatedAt  string `json:"created_at"`
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,max=10000"`
}
