package quiz

import (
	"errors"
	"fmt"
	"math"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"openclass/lms-backend/internal/middleware"
	quizmodel "openclass/lms-backend/internal/model/quiz"
	"openclass/lms-backend/internal/model/user"
	"openclass/lms-backend/internal/response"
)

// QuizService grades on the server only. Clients never see correct answers
// and never influence the computed score.
type QuizService struct {
	repo *QuizRepository
}

func NewQuizService(repo *QuizRepository) *QuizService {
	return &QuizService{repo: repo}
}

// GetQuiz returns the quiz in its student-facing shape.
func (s *QuizService) GetQuiz(id uint) (*QuizView, *response.BusinessError) {
	q, err := s.repo.GetWithQuestions(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("quiz not found")
		}
		return nil, internalError("error fetching quiz", err)
	}

	questions := q.Questions
	if questions == nil {
		questions = []quizmodel.QuizQuestion{}
	}

	return &QuizView{
		ID:        q.ID,
		CourseID:  q.CourseID,
		Title:     q.Title,
		TimeLimit: q.TimeLimit,
		CreatedAt: q.CreatedAt,
		Questions: questions,
	}, nil
}

// CreateQuiz attaches a quiz with its questions to a course. Only the
// owning teacher or an admin may create one.
func (s *QuizService) CreateQuiz(identity middleware.Identity, courseID uint, req CreateQuizRequest) (*QuizView, *response.BusinessError) {
	crs, err := s.repo.GetCourse(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("course not found")
		}
		return nil, internalError("error fetching course", err)
	}

	if identity.Role != user.RoleAdmin &&
		(crs.TeacherID == nil || *crs.TeacherID != identity.UserID) {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Forbidden),
			response.WithErrorMessage("access denied"),
		)
	}

	for i, question := range req.Questions {
		if question.CorrectAnswer >= len(question.Options) {
			return nil, invalidInputError(
				fmt.Sprintf("question %d: correct_answer out of range", i+1))
		}
	}

	q := quizmodel.Quiz{
		CourseID:  courseID,
		Title:     req.Title,
		TimeLimit: req.TimeLimit,
	}
	for _, question := range req.Questions {
		q.Questions = append(q.Questions, quizmodel.QuizQuestion{
			Question:      question.Question,
			Options:       datatypes.NewJSONSlice(question.Options),
			CorrectAnswer: question.CorrectAnswer,
		})
	}

	if err := s.repo.CreateWithQuestions(&q); err != nil {
		return nil, internalError("error creating quiz", err)
	}

	return &QuizView{
		ID:        q.ID,
		CourseID:  q.CourseID,
		Title:     q.Title,
		TimeLimit: q.TimeLimit,
		CreatedAt: q.CreatedAt,
		Questions: q.Questions,
	}, nil
}

// SubmitQuiz grades the answers and persists the attempt. Submissions are
// append-only; retakes produce new rows.
func (s *QuizService) SubmitQuiz(identity middleware.Identity, quizID uint, req SubmitRequest) (*SubmitResult, *response.BusinessError) {
	q, err := s.repo.GetWithQuestions(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("quiz not found")
		}
		return nil, internalError("error fetching quiz", err)
	}

	score, correct := gradeAnswers(q.Questions, req.Answers)

	sub := quizmodel.QuizSubmission{
		QuizID:  quizID,
		UserID:  identity.UserID,
		Score:   score,
		Answers: datatypes.NewJSONSlice(req.Answers),
	}
	if err := s.repo.CreateSubmission(&sub); err != nil {
		return nil, internalError("error saving submission", err)
	}

	return &SubmitResult{
		Score:          score,
		TotalQuestions: len(q.Questions),
		CorrectAnswers: correct,
	}, nil
}

// Submissions lists the caller's own attempts for a quiz.
func (s *QuizService) Submissions(identity middleware.Identity, quizID uint) ([]quizmodel.QuizSubmission, *response.BusinessError) {
	subs, err := s.repo.ListSubmissions(quizID, identity.UserID)
	if err != nil {
		return nil, internalError("error fetching submissions", err)
	}
	return subs, nil
}

// gradeAnswers scores positionally: answers[i] is compared to questions[i].
// Missing or out-of-range answers count as wrong. A quiz with no questions
// scores zero.
func gradeAnswers(questions []quizmodel.QuizQuestion, answers []int) (score float64, correct int) {
	if len(questions) == 0 {
		return 0, 0
	}

	for i, question := range questions {
		if i < len(answers) && answers[i] == question.CorrectAnswer {
			correct++
		}
	}

	score = float64(correct) / float64(len(questions)) * 100
	return math.Round(score*100) / 100, correct
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

func invalidInputError(msg string) *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.InvalidInput),
		response.WithErrorMessage(msg),
	)
}
