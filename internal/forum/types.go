package forum

import "time"

type CreatePostRequest struct {
	CourseID uint   `json:"course_id" binding:"required"`
	Title    string `json:"title" binding:"required,max=255"`
	Content  string `json:"content" binding:"required"`
}

type CreateReplyRequest struct {
	Content string `json:"content" binding:"required"`
}

// PostView is a post with its author's display name and replies attached.
type PostView struct {
	ID         uint        `json:"id"`
	CourseID   uint        `json:"course_id"`
	UserID     uint        `json:"user_id"`
	AuthorName string      `json:"author_name"`
	Title      string      `json:"title"`
	Content    string      `json:"content"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
	Replies    []ReplyView `json:"replies"`
}

type ReplyView struct {
	ID         uint      `json:"id"`
	PostID     uint      `json:"post_id"`
	UserID     uint      `json:"user_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}
