package course

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openclass/lms-backend/internal/middleware"
	coursemodel "openclass/lms-backend/internal/model/course"
	quizmodel "openclass/lms-backend/internal/model/quiz"
	"openclass/lms-backend/internal/model/user"
	"openclass/lms-backend/internal/response"
	"openclass/lms-backend/internal/testutils"
	"openclass/lms-backend/internal/upload"
)

func identityFor(u *user.User) middleware.Identity {
	return middleware.Identity{UserID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func TestCourseCRUD(t *testing.T) {
	db := testutils.SetupTestDB(t)
	store := upload.NewStore(t.TempDir(), 1<<20)
	service := NewCourseService(NewCourseRepository(db), store)

	teacher := testutils.CreateTestUser(t, db, testutils.WithRole(user.RoleTeacher))

	created, bizErr := service.CreateCourse(identityFor(teacher), CreateCourseRequest{
		Title:       "Intro to Go",
		Description: "fundamentals",
	})
	require.Nil(t, bizErr)
	require.NotNil(t, created.TeacherID)
	assert.Equal(t, teacher.ID, *created.TeacherID)
	assert.Equal(t, teacher.Name, created.TeacherName)

	detail, bizErr := service.GetCourse(created.ID)
	require.Nil(t, bizErr)
	assert.Equal(t, "Intro to Go", detail.Title)
	assert.Empty(t, detail.Content)
	assert.Empty(t, detail.Quizzes)

	updated, bizErr := service.UpdateCourse(identityFor(teacher), created.ID, UpdateCourseRequest{
		Title:       "Intro to Go, 2nd ed",
		Description: "fundamentals, revised",
	})
	require.Nil(t, bizErr)
	assert.Equal(t, "Intro to Go, 2nd ed", updated.Title)

	list, bizErr := service.ListCourses()
	require.Nil(t, bizErr)
	require.NotEmpty(t, list)
}

func TestCourseOwnership(t *testing.T) {
	db := testutils.SetupTestDB(t)
	store := upload.NewStore(t.TempDir(), 1<<20)
	service := NewCourseService(NewCourseRepository(db), store)

	owner := testutils.CreateTestUser(t, db, testutils.WithRole(user.RoleTeacher))
	other := testutils.CreateTestUser(t, db, testutils.WithRole(user.RoleTeacher))
	admin := testutils.CreateTestUser(t, db, testutils.WithRole(user.RoleAdmin))
	crs := testutils.CreateTestCourse(t, db, owner.ID)

	req := UpdateCourseRequest{Title: "Renamed"}

	t.Run("non-owner teacher gets 403", func(t *testing.T) {
		_, bizErr := service.UpdateCourse(identityFor(other), crs.ID, req)
		require.NotNil(t, bizErr)
		assert.Equal(t, response.Forbidden, bizErr.Code)
	})

	t.Run("missing course gets 404, not 403", func(t *testing.T) {
		_, bizErr := service.UpdateCourse(identityFor(other), 999999, req)
		require.NotNil(t, bizErr)
		assert.Equal(t, response.NotFound, bizErr.Code)
	})

	t.Run("admin may update any course", func(t *testing.T) {
		_, bizErr := service.UpdateCourse(identityFor(admin), crs.ID, req)
		assert.Nil(t, bizErr)
	})
}

func TestAddContentLifecycle(t *testing.T) {
	db := testutils.SetupTestDB(t)
	dir := t.TempDir()
	store := upload.NewStore(dir, 1<<20)
	service := NewCourseService(NewCourseRepository(db), store)

	teacher := testutils.CreateTestUser(t, db, testutils.WithRole(user.RoleTeacher))
	crs := testutils.CreateTestCourse(t, db, teacher.ID)

	t.Run("text content without file", func(t *testing.T) {
		content, bizErr := service.AddContent(identityFor(teacher), crs.ID, ContentRequest{
			Title:       "Reading",
			ContentType: coursemodel.ContentTypeDocument,
			Content:     "chapter one",
		}, nil)
		require.Nil(t, bizErr)
		assert.Nil(t, content.FilePath)
	})

	t.Run("file-backed content", func(t *testing.T) {
		fh := testutils.MakeFileHeader(t, "slides.png", "image/png", testutils.PNGHeader)
		content, bizErr := service.AddContent(identityFor(teacher), crs.ID, ContentRequest{
			Title:       "Slides",
			ContentType: coursemodel.ContentTypeDocument,
		}, fh)
		require.Nil(t, bizErr)
		require.NotNil(t, content.FilePath)
		assert.True(t, store.Exists(*content.FilePath))
		assert.Equal(t, "slides.png", content.FileName)
	})

	t.Run("rejected file leaves no row and no file", func(t *testing.T) {
		fh := testutils.MakeFileHeader(t, "notes.txt", "text/plain", []byte("plain text"))
		_, bizErr := service.AddContent(identityFor(teacher), crs.ID, ContentRequest{
			Title:       "Notes",
			ContentType: coursemodel.ContentTypeDocument,
		}, fh)
		require.NotNil(t, bizErr)
		assert.Equal(t, response.InvalidInput, bizErr.Code)
	})

	t.Run("invalid content type rejected before ownership", func(t *testing.T) {
		_, bizErr := service.AddContent(identityFor(teacher), crs.ID, ContentRequest{
			Title:       "Weird",
			ContentType: "hologram",
		}, nil)
		require.NotNil(t, bizErr)
		assert.Equal(t, response.InvalidInput, bizErr.Code)
	})

	t.Run("missing course gets 404", func(t *testing.T) {
		_, bizErr := service.AddContent(identityFor(teacher), 999999, ContentRequest{
			Title:       "Orphan",
			ContentType: coursemodel.ContentTypeDocument,
		}, nil)
		require.NotNil(t, bizErr)
		assert.Equal(t, response.NotFound, bizErr.Code)
	})
}

func TestUpdateContentSwapsFile(t *testing.T) {
	db := testutils.SetupTestDB(t)
	store := upload.NewStore(t.TempDir(), 1<<20)
	service := NewCourseService(NewCourseRepository(db), store)

	teacher := testutils.CreateTestUser(t, db, testutils.WithRole(user.RoleTeacher))
	crs := testutils.CreateTestCourse(t, db, teacher.ID)

	fh := testutils.MakeFileHeader(t, "v1.png", "image/png", testutils.PNGHeader)
	content, bizErr := service.AddContent(identityFor(teacher), crs.ID, ContentRequest{
		Title:       "Slides",
		ContentType: coursemodel.ContentTypeDocument,
	}, fh)
	require.Nil(t, bizErr)
	oldPath := *content.FilePath

	fh2 := testutils.MakeFileHeader(t, "v2.png", "image/png", testutils.PNGHeader)
	updated, bizErr := service.UpdateContent(identityFor(teacher), crs.ID, content.ID, ContentRequest{
		Title:       "Slides v2",
		ContentType: coursemodel.ContentTypeDocument,
	}, fh2)
	require.Nil(t, bizErr)

	assert.NotEqual(t, oldPath, *updated.FilePath)
	assert.True(t, store.Exists(*updated.FilePath), "new file kept")
	assert.False(t, store.Exists(oldPath), "old file removed after successful update")
	assert.Equal(t, "v2.png", updated.FileName)
}

func TestDeleteContentRemovesRowThenFile(t *testing.T) {
	db := testutils.SetupTestDB(t)
	store := upload.NewStore(t.TempDir(), 1<<20)
	service := NewCourseService(NewCourseRepository(db), store)

	teacher := testutils.CreateTestUser(t, db, testutils.WithRole(user.RoleTeacher))
	crs := testutils.CreateTestCourse(t, db, teacher.ID)

	fh := testutils.MakeFileHeader(t, "gone.png", "image/png", testutils.PNGHeader)
	content, bizErr := service.AddContent(identityFor(teacher), crs.ID, ContentRequest{
		Title:       "Doomed",
		ContentType: coursemodel.ContentTypeDocument,
	}, fh)
	require.Nil(t, bizErr)
	path := *content.FilePath

	require.Nil(t, service.DeleteContent(identityFor(teacher), crs.ID, content.ID))
	assert.False(t, store.Exists(path))

	bizErr = service.DeleteContent(identityFor(teacher), crs.ID, content.ID)
	require.NotNil(t, bizErr)
	assert.Equal(t, response.NotFound, bizErr.Code)
}

func TestDeleteCourseCascades(t *testing.T) {
	db := testutils.SetupTestDB(t)
	store := upload.NewStore(t.TempDir(), 1<<20)
	service := NewCourseService(NewCourseRepository(db), store)

	teacher := testutils.CreateTestUser(t, db, testutils.WithRole(user.RoleTeacher))
	crs := testutils.CreateTestCourse(t, db, teacher.ID)
	testutils.CreateTestContent(t, db, crs.ID)
	quiz := testutils.CreateTestQuiz(t, db, crs.ID, 0)

	fh := testutils.MakeFileHeader(t, "asset.png", "image/png", testutils.PNGHeader)
	content, bizErr := service.AddContent(identityFor(teacher), crs.ID, ContentRequest{
		Title:       "Asset",
		ContentType: coursemodel.ContentTypeDocument,
	}, fh)
	require.Nil(t, bizErr)
	path := *content.FilePath

	require.Nil(t, service.DeleteCourse(identityFor(teacher), crs.ID))

	_, getErr := service.GetCourse(crs.ID)
	require.NotNil(t, getErr)
	assert.Equal(t, response.NotFound, getErr.Code)

	var contentCount, quizCount, questionCount int64
	db.Model(&coursemodel.CourseContent{}).Where("course_id = ?", crs.ID).Count(&contentCount)
	db.Model(&quizmodel.Quiz{}).Where("course_id = ?", crs.ID).Count(&quizCount)
	db.Model(&quizmodel.QuizQuestion{}).Where("quiz_id = ?", quiz.ID).Count(&questionCount)
	assert.Zero(t, contentCount)
	assert.Zero(t, quizCount)
	assert.Zero(t, questionCount)

	assert.False(t, store.Exists(path), "stored files removed after commit")
}

func TestDownload(t *testing.T) {
	db := testutils.SetupTestDB(t)
	store := upload.NewStore(t.TempDir(), 1<<20)
	service := NewCourseService(NewCourseRepository(db), store)

	teacher := testutils.CreateTestUser(t, db, testutils.WithRole(user.RoleTeacher))
	crs := testutils.CreateTestCourse(t, db, teacher.ID)

	fh := testutils.MakeFileHeader(t, "handout.png", "image/png", testutils.PNGHeader)
	content, bizErr := service.AddContent(identityFor(teacher), crs.ID, ContentRequest{
		Title:       "Handout",
		ContentType: coursemodel.ContentTypeDocument,
	}, fh)
	require.Nil(t, bizErr)

	info, bizErr := service.Download(crs.ID, content.ID)
	require.Nil(t, bizErr)
	assert.Equal(t, *content.FilePath, info.Path)
	assert.Equal(t, "handout.png", info.FileName)

	// The served file is byte-identical to the upload.
	f, err := store.Open(info.Path)
	require.NoError(t, err)
	defer f.Close()
	stored, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, testutils.PNGHeader, stored)

	t.Run("text content has no file", func(t *testing.T) {
		textContent := testutils.CreateTestContent(t, db, crs.ID)
		_, bizErr := service.Download(crs.ID, textContent.ID)
		require.NotNil(t, bizErr)
		assert.Equal(t, response.NotFound, bizErr.Code)
	})

	t.Run("file missing on disk is 404", func(t *testing.T) {
		require.NoError(t, store.Remove(*content.FilePath))
		_, bizErr := service.Download(crs.ID, content.ID)
		require.NotNil(t, bizErr)
		assert.Equal(t, response.NotFound, bizErr.Code)
	})
}
