// Package quiz holds the quiz, question and submission models.
package quiz

import (
	"time"

	"gorm.io/datatypes"
)

type Quiz struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	CourseID uint   `gorm:"not null;index" json:"course_id"`
	Title    string `gorm:"type:varchar(255);not null" json:"title"`
	// Minutes the client gives a student to finish. Zero means unlimited.
	TimeLimit int       `gorm:"default:0" json:"time_limit"`
	CreatedAt time.Time `json:"created_at"`

	Questions []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizQuestion stores the option list as a JSON array in question order.
// CorrectAnswer indexes into Options and must never reach the client before
// submission, hence the json:"-".
type QuizQuestion struct {
	ID            uint                        `gorm:"primaryKey" json:"id"`
	QuizID        uint                        `gorm:"not null;index" json:"quiz_id"`
	Question      string                      `gorm:"type:text;not null" json:"question"`
	Options       datatypes.JSONSlice[string] `gorm:"type:json" json:"options"`
	CorrectAnswer int                         `gorm:"not null" json:"-"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// QuizSubmission is append-only; one row per attempt.
type QuizSubmission struct {
	ID     uint    `gorm:"primaryKey" json:"id"`
	QuizID uint    `gorm:"not null;index" json:"quiz_id"`
	UserID uint    `gorm:"not null;index" json:"user_id"`
	Score  float64 `gorm:"not null" json:"score"`
	// Selected option indices, positionally aligned to question order.
	Answers     datatypes.JSONSlice[int] `gorm:"type:json" json:"answers"`
	SubmittedAt time.Time                `gorm:"autoCreateTime" json:"submitted_at"`
}

func (QuizSubmission) TableName() string {
	return "quiz_submissions"
}
