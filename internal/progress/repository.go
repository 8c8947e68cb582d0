package progress

import (
	"gorm.io/gorm"

	coursemodel "openclass/lms-backend/internal/model/course"
	progressmodel "openclass/lms-backend/internal/model/progress"
	quizmodel "openclass/lms-backend/internal/model/quiz"
)

type ProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

func (r *ProgressRepository) GetContent(courseID, contentID uint) (*coursemodel.CourseContent, error) {
	var content coursemodel.CourseContent
	err := r.db.Where("id = ? AND course_id = ?", contentID, courseID).
		First(&content).Error
	return &content, err
}

// MarkComplete records a completion. A repeat completion hits the unique
// index and is swallowed, keeping the operation idempotent.
func (r *ProgressRepository) MarkComplete(completion *progressmodel.ContentCompletion) error {
	err := r.db.Create(completion).Error
	if err != nil && errorIsDuplicate(err) {
		return nil
	}
	return err
}

// ListCompletions returns all of a user's completions across courses.
func (r *ProgressRepository) ListCompletions(userID uint) ([]progressmodel.ContentCompletion, error) {
	var completions []progressmodel.ContentCompletion
	err := r.db.Where("user_id = ?", userID).Order("id").Find(&completions).Error
	return completions, err
}

// ListSubmissions returns all of a user's quiz submissions.
func (r *ProgressRepository) ListSubmissions(userID uint) ([]quizmodel.QuizSubmission, error) {
	var subs []quizmodel.QuizSubmission
	err := r.db.Where("user_id = ?", userID).Order("id").Find(&subs).Error
	return subs, err
}

// CourseItemCounts holds the denominator side of the progress calculation.
type CourseItemCounts struct {
	ContentCount int
	QuizCount    int
	Title        string
}

// LoadCourseCounts returns the content and quiz item counts for a set of
// courses along with their titles.
func (r *ProgressRepository) LoadCourseCounts(courseIDs []uint) (map[uint]CourseItemCounts, error) {
	counts := make(map[uint]CourseItemCounts, len(courseIDs))
	if len(courseIDs) == 0 {
		return counts, nil
	}

	var courses []coursemodel.Course
	if err := r.db.Where("id IN ?", courseIDs).Find(&courses).Error; err != nil {
		return nil, err
	}
	for _, crs := range courses {
		counts[crs.ID] = CourseItemCounts{Title: crs.Title}
	}

	type countRow struct {
		CourseID uint
		N        int
	}

	var contentRows []countRow
	if err := r.db.Model(&coursemodel.CourseContent{}).
		Select("course_id, COUNT(*) AS n").
		Where("course_id IN ?", courseIDs).
		Group("course_id").
		Scan(&contentRows).Error; err != nil {
		return nil, err
	}
	for _, row := range contentRows {
		entry := counts[row.CourseID]
		entry.ContentCount = row.N
		counts[row.CourseID] = entry
	}

	var quizRows []countRow
	if err := r.db.Model(&quizmodel.Quiz{}).
		Select("course_id, COUNT(*) AS n").
		Where("course_id IN ?", courseIDs).
		Group("course_id").
		Scan(&quizRows).Error; err != nil {
		return nil, err
	}
	for _, row := range quizRows {
		entry := counts[row.CourseID]
		entry.QuizCount = row.N
		counts[row.CourseID] = entry
	}

	return counts, nil
}

// QuizCourse maps quiz IDs to their owning course.
func (r *ProgressRepository) QuizCourse(quizIDs []uint) (map[uint]uint, error) {
	owners := make(map[uint]uint, len(quizIDs))
	if len(quizIDs) == 0 {
		return owners, nil
	}

	var quizzes []quizmodel.Quiz
	if err := r.db.Where("id IN ?", quizIDs).Find(&quizzes).Error; err != nil {
		return nil, err
	}
	for _, q := range quizzes {
		owners[q.ID] = q.CourseID
	}
	return owners, nil
}
