// Package course holds the course and course content models.
package course

import "time"

type Course struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	// Owning teacher. Nullable so a course survives account removal.
	TeacherID    *uint     `gorm:"index" json:"teacher_id"`
	ThumbnailURL string    `gorm:"type:varchar(500)" json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Content []CourseContent `gorm:"foreignKey:CourseID" json:"content,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// Content types a course item can have.
const (
	ContentTypeVideo      = "video"
	ContentTypeDocument   = "document"
	ContentTypeQuiz       = "quiz"
	ContentTypeAssignment = "assignment"
)

func ValidContentType(t string) bool {
	switch t {
	case ContentTypeVideo, ContentTypeDocument, ContentTypeQuiz, ContentTypeAssignment:
		return true
	}
	return false
}

// CourseContent is one item of course material. FilePath, when set, names a
// server-local file whose lifetime is tied to this row: replacing or
// deleting the row must remove the file.
type CourseContent struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CourseID    uint   `gorm:"not null;index" json:"course_id"`
	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	ContentType string `gorm:"type:varchar(20);not null" json:"content_type"`
	// Inline text body, used when no file backs the item.
	Content  string  `gorm:"type:text" json:"content,omitempty"`
	FilePath *string `gorm:"type:varchar(500)" json:"file_path"`
	// Original upload name, served back on download.
	FileName  string    `gorm:"type:varchar(255)" json:"file_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (CourseContent) TableName() string {
	return "course_content"
}
