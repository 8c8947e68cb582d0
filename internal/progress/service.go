package progress

import (
	"errors"
	"math"
	"sort"

	"gorm.io/gorm"

	"openclass/lms-backend/internal/middleware"
	progressmodel "openclass/lms-backend/internal/model/progress"
	"openclass/lms-backend/internal/response"
)

type ProgressService struct {
	repo *ProgressRepository
}

func NewProgressService(repo *ProgressRepository) *ProgressService {
	return &ProgressService{repo: repo}
}

// MarkComplete records that the caller finished a content item. Repeats
// are harmless no-ops.
func (s *ProgressService) MarkComplete(identity middleware.Identity, courseID, contentID uint) *response.BusinessError {
	if _, err := s.repo.GetContent(courseID, contentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("content not found")
		}
		return internalError("error marking content complete", err)
	}

	completion := progressmodel.ContentCompletion{
		UserID:    identity.UserID,
		ContentID: contentID,
		CourseID:  courseID,
	}
	if err := s.repo.MarkComplete(&completion); err != nil {
		return internalError("error marking content complete", err)
	}
	return nil
}

// Overview aggregates the caller's progress per course: which content items
// are done, the best score per quiz, and an overall percentage. A course
// counts content items and quizzes as equal-weight units; a quiz is done
// once it has at least one submission.
func (s *ProgressService) Overview(identity middleware.Identity) ([]CourseProgress, *response.BusinessError) {
	completions, err := s.repo.ListCompletions(identity.UserID)
	if err != nil {
		return nil, internalError("error fetching progress", err)
	}
	submissions, err := s.repo.ListSubmissions(identity.UserID)
	if err != nil {
		return nil, internalError("error fetching progress", err)
	}

	quizIDs := make([]uint, 0, len(submissions))
	seenQuiz := make(map[uint]bool)
	for _, sub := range submissions {
		if !seenQuiz[sub.QuizID] {
			seenQuiz[sub.QuizID] = true
			quizIDs = append(quizIDs, sub.QuizID)
		}
	}
	quizOwners, err := s.repo.QuizCourse(quizIDs)
	if err != nil {
		return nil, internalError("error fetching progress", err)
	}

	byCourse := make(map[uint]*CourseProgress)
	course := func(id uint) *CourseProgress {
		if p, ok := byCourse[id]; ok {
			return p
		}
		p := &CourseProgress{
			CourseID:         id,
			CompletedContent: []uint{},
			QuizScores:       map[uint]float64{},
		}
		byCourse[id] = p
		return p
	}

	for _, completion := range completions {
		p := course(completion.CourseID)
		p.CompletedContent = append(p.CompletedContent, completion.ContentID)
	}
	for _, sub := range submissions {
		courseID, ok := quizOwners[sub.QuizID]
		if !ok {
			continue
		}
		p := course(courseID)
		if best, ok := p.QuizScores[sub.QuizID]; !ok || sub.Score > best {
			p.QuizScores[sub.QuizID] = sub.Score
		}
	}

	courseIDs := make([]uint, 0, len(byCourse))
	for id := range byCourse {
		courseIDs = append(courseIDs, id)
	}
	counts, err := s.repo.LoadCourseCounts(courseIDs)
	if err != nil {
		return nil, internalError("error fetching progress", err)
	}

	result := make([]CourseProgress, 0, len(byCourse))
	for id, p := range byCourse {
		c := counts[id]
		p.CourseTitle = c.Title
		p.TotalContent = c.ContentCount
		p.TotalQuizzes = c.QuizCount
		p.OverallProgress = overallProgress(len(p.CompletedContent), c.ContentCount, len(p.QuizScores), c.QuizCount)
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CourseID < result[j].CourseID
	})

	return result, nil
}

func overallProgress(doneContent, totalContent, doneQuizzes, totalQuizzes int) float64 {
	total := totalContent + totalQuizzes
	if total == 0 {
		return 0
	}
	done := doneContent + doneQuizzes
	if done > total {
		done = total
	}
	pct := float64(done) / float64(total) * 100
	return math.Round(pct*100) / 100
}

func internalError(msg string, err error) *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.Fail),
		response.WithErrorMessage(msg),
		response.WithError(err),
	)
}

func notFoundError(msg string) *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.NotFound),
		response.WithErrorMessage(msg),
	)
}
