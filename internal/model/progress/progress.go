// Package progress holds the content completion model.
package progress

import "time"

// ContentCompletion marks one content item done for one student. The
// composite unique index keeps repeat completions idempotent.
type ContentCompletion struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_user_content" json:"user_id"`
	ContentID   uint      `gorm:"not null;uniqueIndex:idx_user_content" json:"content_id"`
	CourseID    uint      `gorm:"not null;index" json:"course_id"`
	CompletedAt time.Time `gorm:"autoCreateTime" json:"completed_at"`
}

func (ContentCompletion) TableName() string {
	return "content_completions"
}
