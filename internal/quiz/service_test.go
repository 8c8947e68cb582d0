package quiz

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openclass/lms-backend/internal/middleware"
	quizmodel "openclass/lms-backend/internal/model/quiz"
	"openclass/lms-backend/internal/model/user"
	"openclass/lms-backend/internal/response"
	"openclass/lms-backend/internal/testutils"
)

func questionsWithAnswers(answers ...int) []quizmodel.QuizQuestion {
	questions := make([]quizmodel.QuizQuestion, len(answers))
	for i, answer := range answers {
		questions[i] = quizmodel.QuizQuestion{CorrectAnswer: answer}
	}
	return questions
}

func TestGradeAnswers(t *testing.T) {
	tests := []struct {
		name        string
		questions   []quizmodel.QuizQuestion
		answers     []int
		wantScore   float64
		wantCorrect int
	}{
		{
			name:        "all correct",
			questions:   questionsWithAnswers(0, 1, 2),
			answers:     []int{0, 1, 2},
			wantScore:   100,
			wantCorrect: 3,
		},
		{
			name:        "two of three rounds to two decimals",
			questions:   questionsWithAnswers(0, 1, 2),
			answers:     []int{0, 1, 0},
			wantScore:   66.67,
			wantCorrect: 2,
		},
		{
			name:        "all wrong",
			questions:   questionsWithAnswers(0, 0),
			answers:     []int{1, 1},
			wantScore:   0,
			wantCorrect: 0,
		},
		{
			name:        "zero questions scores zero",
			questions:   nil,
			answers:     []int{0, 1},
			wantScore:   0,
			wantCorrect: 0,
		},
		{
			name:        "missing answers count as wrong",
			questions:   questionsWithAnswers(0, 1, 0, 1),
			answers:     []int{0},
			wantScore:   25,
			wantCorrect: 1,
		},
		{
			name:        "unanswered marker never matches",
			questions:   questionsWithAnswers(0, 1),
			answers:     []int{-1, 1},
			wantScore:   50,
			wantCorrect: 1,
		},
		{
			name:        "extra answers ignored",
			questions:   questionsWithAnswers(0),
			answers:     []int{0, 1, 1, 1},
			wantScore:   100,
			wantCorrect: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, correct := gradeAnswers(tt.questions, tt.answers)
			assert.Equal(t, tt.wantScore, score)
			assert.Equal(t, tt.wantCorrect, correct)
		})
	}
}

func TestGetQuizWithholdsCorrectAnswers(t *testing.T) {
	db := testutils.SetupTestDB(t)
	service := NewQuizService(NewQuizRepository(db))

	teacher := testutils.CreateTestUser(t, db, testutils.WithRole(user.RoleTeacher))
	crs := testutils.CreateTestCourse(t, db, teacher.ID)
	quiz := testutils.CreateTestQuiz(t, db, crs.ID, 0, 1)

	view, bizErr := service.GetQuiz(quiz.ID)
	require.Nil(t, bizErr)
	require.Len(t, view.Questions, 2)

	raw, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "correct_answer")
	assert.Contains(t, string(raw), "options")
}

func TestGetQuizNotFound(t *testing.T) {
	db := testutils.SetupTestDB(t)
	service := NewQuizService(NewQuizRepository(db))

	_, bizErr := service.GetQuiz(999999)
	require.NotNil(t, bizErr)
	assert.Equal(t, response.NotFound, bizErr.Code)
}

func TestSubmitQuizPersistsAttempt(t *testing.T) {
	db := testutils.SetupTestDB(t)
	service := NewQuizService(NewQuizRepository(db))

	teacher := testutils.CreateTestUser(t, db, testutils.WithRole(user.RoleTeacher))
	student := testutils.CreateTestUser(t, db)
	crs := testutils.CreateTestCourse(t, db, teacher.ID)
	quiz := testutils.CreateTestQuiz(t, db, crs.ID, 0, 1, 0)

	identity := middleware.Identity{UserID: student.ID, Role: user.RoleStudent}
	result, bizErr := service.SubmitQuiz(identity, quiz.ID, SubmitRequest{Answers: []int{0, 1, 1}})
	require.Nil(t, bizErr)

	assert.Equal(t, 66.67, result.Score)
	assert.Equal(t, 3, result.TotalQuestions)
	assert.Equal(t, 2, result.CorrectAnswers)

	// Retakes append, never overwrite.
	_, bizErr = service.SubmitQuiz(identity, quiz.ID, SubmitRequest{Answers: []int{0, 1, 0}})
	require.Nil(t, bizErr)

	subs, bizErr := service.Submissions(identity, quiz.ID)
	require.Nil(t, bizErr)
	require.Len(t, subs, 2)
	assert.Equal(t, 100.0, subs[0].Score) // newest first
	assert.Equal(t, 66.67, subs[1].Score)
}

func TestCreateQuiz(t *testing.T) {
	db := testutils.SetupTestDB(t)
	service := NewQuizService(NewQuizRepository(db))

	teacher := testutils.CreateTestUser(t, db, testutils.WithRole(user.RoleTeacher))
	other := testutils.CreateTestUser(t, db, testutils.WithRole(user.RoleTeacher))
	crs := testutils.CreateTestCourse(t, db, teacher.ID)

	req := CreateQuizRequest{
		Title: "Midterm",
		Questions: []QuestionRequest{
			{Question: "q1", Options: []string{"a", "b"}, CorrectAnswer: 1},
		},
	}

	t.Run("owner creates", func(t *testing.T) {
		identity := middleware.Identity{UserID: teacher.ID, Role: user.RoleTeacher}
		view, bizErr := service.CreateQuiz(identity, crs.ID, req)
		require.Nil(t, bizErr)
		assert.Equal(t, crs.ID, view.CourseID)
		assert.Len(t, view.Questions, 1)
	})

	t.Run("non-owner teacher forbidden", func(t *testing.T) {
		identity := middleware.Identity{UserID: other.ID, Role: user.RoleTeacher}
		_, bizErr := service.CreateQuiz(identity, crs.ID, req)
		require.NotNil(t, bizErr)
		assert.Equal(t, response.Forbidden, bizErr.Code)
	})

	t.Run("missing course is 404", func(t *testing.T) {
		identity := middleware.Identity{UserID: teacher.ID, Role: user.RoleTeacher}
		_, bizErr := service.CreateQuiz(identity, 999999, req)
		require.NotNil(t, bizErr)
		assert.Equal(t, response.NotFound, bizErr.Code)
	})

	t.Run("correct answer out of range rejected", func(t *testing.T) {
		identity := middleware.Identity{UserID: teacher.ID, Role: user.RoleTeacher}
		bad := CreateQuizRequest{
			Title: "Broken",
			Questions: []QuestionRequest{
				{Question: "q1", Options: []string{"a", "b"}, CorrectAnswer: 5},
			},
		}
		_, bizErr := service.CreateQuiz(identity, crs.ID, bad)
		require.NotNil(t, bizErr)
		assert.Equal(t, response.InvalidInput, bizErr.Code)
	})
}
