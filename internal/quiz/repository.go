package quiz

import (
	"gorm.io/gorm"

	coursemodel "openclass/lms-backend/internal/model/course"
	quizmodel "openclass/lms-backend/internal/model/quiz"
)

type QuizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

// GetWithQuestions loads a quiz and its questions in question order.
func (r *QuizRepository) GetWithQuestions(id uint) (*quizmodel.Quiz, error) {
	var q quizmodel.Quiz
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	}).First(&q, id).Error
	return &q, err
}

func (r *QuizRepository) GetCourse(id uint) (*coursemodel.Course, error) {
	var crs coursemodel.Course
	err := r.db.First(&crs, id).Error
	return &crs, err
}

// CreateWithQuestions inserts a quiz and its questions in one transaction.
func (r *QuizRepository) CreateWithQuestions(q *quizmodel.Quiz) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(q).Error
	})
}

func (r *QuizRepository) CreateSubmission(sub *quizmodel.QuizSubmission) error {
	return r.db.Create(sub).Error
}

// ListSubmissions returns a user's attempts for one quiz, newest first.
func (r *QuizRepository) ListSubmissions(quizID, userID uint) ([]quizmodel.QuizSubmission, error) {
	var subs []quizmodel.QuizSubmission
	err := r.db.Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Order("id DESC").
		Find(&subs).Error
	return subs, err
}
