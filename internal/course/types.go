package course

import (
	"time"

	coursemodel "openclass/lms-backend/internal/model/course"
	quizmodel "openclass/lms-backend/internal/model/quiz"
)

type CreateCourseRequest struct {
	Title        string `json:"title" binding:"required,max=255"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type UpdateCourseRequest struct {
	Title        string `json:"title" binding:"required,max=255"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// ContentRequest carries the non-file fields of a multipart content upload.
type ContentRequest struct {
	Title       string `form:"title" binding:"required,max=255"`
	ContentType string `form:"content_type" binding:"required"`
	Content     string `form:"content"`
}

// CourseSummary is a course row joined with its teacher's display name.
type CourseSummary struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	TeacherID    *uint     `json:"teacher_id"`
	TeacherName  string    `json:"teacher_name"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CourseDetail is the full course view: summary plus content and quizzes.
type CourseDetail struct {
	CourseSummary
	Content []coursemodel.CourseContent `json:"content"`
	Quizzes []quizmodel.Quiz            `json:"quizzes"`
}

// DownloadInfo points the handler at a stored file and the name to serve
// it under.
type DownloadInfo struct {
	Path     string
	FileName string
}
