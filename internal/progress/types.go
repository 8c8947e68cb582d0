package progress

// CourseProgress is one course's view of a student's progress. Quiz scores
// map quiz IDs to the student's best score across all attempts.
type CourseProgress struct {
	CourseID         uint             `json:"course_id"`
	CourseTitle      string           `json:"course_title"`
	CompletedContent []uint           `json:"completed_content"`
	TotalContent     int              `json:"total_content"`
	QuizScores       map[uint]float64 `json:"quiz_scores"`
	TotalQuizzes     int              `json:"total_quizzes"`
	OverallProgress  float64          `json:"overall_progress"`
}
