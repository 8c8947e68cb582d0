package course

import (
	"gorm.io/gorm"

	coursemodel "openclass/lms-backend/internal/model/course"
	quizmodel "openclass/lms-backend/internal/model/quiz"
)

// CourseRepository is the persistence layer for courses and their content.
type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// ListWithTeacher returns all courses joined with the owning teacher's
// display name. No pagination; the catalog is small by design.
func (r *CourseRepository) ListWithTeacher() ([]CourseSummary, error) {
	var rows []CourseSummary
	err := r.db.Table("courses c").
		Select("c.*, u.name AS teacher_name").
		Joins("LEFT JOIN users u ON c.teacher_id = u.id").
		Order("c.id").
		Scan(&rows).Error
	return rows, err
}

func (r *CourseRepository) GetByID(id uint) (*coursemodel.Course, error) {
	var crs coursemodel.Course
	err := r.db.First(&crs, id).Error
	return &crs, err
}

// GetByIDWithTeacher loads one course with the teacher name attached.
func (r *CourseRepository) GetByIDWithTeacher(id uint) (*CourseSummary, error) {
	var row CourseSummary
	err := r.db.Table("courses c").
		Select("c.*, u.name AS teacher_name").
		Joins("LEFT JOIN users u ON c.teacher_id = u.id").
		Where("c.id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *CourseRepository) Create(crs *coursemodel.Course) error {
	return r.db.Create(crs).Error
}

func (r *CourseRepository) Update(crs *coursemodel.Course) error {
	return r.db.Save(crs).Error
}

// ListContent returns a course's content ordered by insertion.
func (r *CourseRepository) ListContent(courseID uint) ([]coursemodel.CourseContent, error) {
	var content []coursemodel.CourseContent
	err := r.db.Where("course_id = ?", courseID).Order("id").Find(&content).Error
	return content, err
}

// ListQuizzes returns a course's quizzes without their questions.
func (r *CourseRepository) ListQuizzes(courseID uint) ([]quizmodel.Quiz, error) {
	var quizzes []quizmodel.Quiz
	err := r.db.Where("course_id = ?", courseID).Order("id").Find(&quizzes).Error
	return quizzes, err
}

func (r *CourseRepository) GetContent(courseID, contentID uint) (*coursemodel.CourseContent, error) {
	var content coursemodel.CourseContent
	err := r.db.Where("id = ? AND course_id = ?", contentID, courseID).First(&content).Error
	return &content, err
}

func (r *CourseRepository) CreateContent(content *coursemodel.CourseContent) error {
	return r.db.Create(content).Error
}

// UpdateContent persists the row and reports how many rows matched, so the
// caller can tell a vanished row from a successful update.
func (r *CourseRepository) UpdateContent(content *coursemodel.CourseContent) (int64, error) {
	result := r.db.Model(&coursemodel.CourseContent{}).
		Where("id = ? AND course_id = ?", content.ID, content.CourseID).
		Updates(map[string]any{
			"title":        content.Title,
			"content_type": content.ContentType,
			"content":      content.Content,
			"file_path":    content.FilePath,
			"file_name":    content.FileName,
		})
	return result.RowsAffected, result.Error
}

func (r *CourseRepository) DeleteContent(courseID, contentID uint) (int64, error) {
	result := r.db.Where("id = ? AND course_id = ?", contentID, courseID).
		Delete(&coursemodel.CourseContent{})
	return result.RowsAffected, result.Error
}

// DeleteCourseTx removes a course and everything it owns in one
// transaction: content rows, quiz questions, quiz submissions, quizzes,
// then the course row itself. If the course row is gone by the time the
// final delete runs, the whole transaction rolls back.
func (r *CourseRepository) DeleteCourseTx(courseID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", courseID).
			Delete(&coursemodel.CourseContent{}).Error; err != nil {
			return err
		}

		var quizIDs []uint
		if err := tx.Model(&quizmodel.Quiz{}).
			Where("course_id = ?", courseID).
			Pluck("id", &quizIDs).Error; err != nil {
			return err
		}
		if len(quizIDs) > 0 {
			if err := tx.Where("quiz_id IN ?", quizIDs).
				Delete(&quizmodel.QuizQuestion{}).Error; err != nil {
				return err
			}
			if err := tx.Where("quiz_id IN ?", quizIDs).
				Delete(&quizmodel.QuizSubmission{}).Error; err != nil {
				return err
			}
			if err := tx.Where("course_id = ?", courseID).
				Delete(&quizmodel.Quiz{}).Error; err != nil {
				return err
			}
		}

		result := tx.Delete(&coursemodel.Course{}, courseID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
