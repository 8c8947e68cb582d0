package quiz

import (
	"time"

	quizmodel "openclass/lms-backend/internal/model/quiz"
)

// CreateQuizRequest creates a quiz together with its question set.
type CreateQuizRequest struct {
	Title     string            `json:"title" binding:"required,max=255"`
	TimeLimit int               `json:"time_limit" binding:"min=0"`
	Questions []QuestionRequest `json:"questions" binding:"required,min=1,dive"`
}

type QuestionRequest struct {
	Question      string   `json:"question" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2"`
	CorrectAnswer int      `json:"correct_answer" binding:"min=0"`
}

type SubmitRequest struct {
	// Selected option indices, aligned to question order. -1 marks a
	// question left unanswered.
	Answers []int `json:"answers" binding:"required"`
}

// QuizView is the student-facing quiz shape. Questions carry their options
// but never the correct answer.
type QuizView struct {
	ID        uint                     `json:"id"`
	CourseID  uint                     `json:"course_id"`
	Title     string                   `json:"title"`
	TimeLimit int                      `json:"time_limit"`
	CreatedAt time.Time                `json:"created_at"`
	Questions []quizmodel.QuizQuestion `json:"questions"`
}

// SubmitResult is what a grading pass returns to the student.
type SubmitResult struct {
	Score          float64 `json:"score"`
	TotalQuestions int     `json:"totalQuestions"`
	CorrectAnswers int     `json:"correctAnswers"`
}
