package course

import (
	"errors"
	"log"
	"mime/multipart"

	"gorm.io/gorm"

	"openclass/lms-backend/internal/middleware"
	coursemodel "openclass/lms-backend/internal/model/course"
	"openclass/lms-backend/internal/model/user"
	"openclass/lms-backend/internal/response"
	"openclass/lms-backend/internal/upload"
)

// CourseService implements course and content operations, including the
// file lifecycle rules: a content row and its stored file live and die
// together, with compensating deletes on every failure branch.
type CourseService struct {
	repo  *CourseRepository
	store *upload.Store
}

func NewCourseService(repo *CourseRepository, store *upload.Store) *CourseService {
	return &CourseService{repo: repo, store: store}
}

func (s *CourseService) ListCourses() ([]CourseSummary, *response.BusinessError) {
	courses, err := s.repo.ListWithTeacher()
	if err != nil {
		return nil, internalError("error fetching courses", err)
	}
	return courses, nil
}

func (s *CourseService) GetCourse(id uint) (*CourseDetail, *response.BusinessError) {
	summary, err := s.repo.GetByIDWithTeacher(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("course not found")
		}
		return nil, internalError("error fetching course", err)
	}

	content, err := s.repo.ListContent(id)
	if err != nil {
		return nil, internalError("error fetching course", err)
	}
	quizzes, err := s.repo.ListQuizzes(id)
	if err != nil {
		return nil, internalError("error fetching course", err)
	}

	return &CourseDetail{
		CourseSummary: *summary,
		Content:       content,
		Quizzes:       quizzes,
	}, nil
}

// CreateCourse sets the owner from the authenticated identity, ignoring
// anything the request body might claim.
func (s *CourseService) CreateCourse(identity middleware.Identity, req CreateCourseRequest) (*CourseSummary, *response.BusinessError) {
	teacherID := identity.UserID
	crs := coursemodel.Course{
		Title:        req.Title,
		Description:  req.Description,
		TeacherID:    &teacherID,
		ThumbnailURL: req.ThumbnailURL,
	}
	if err := s.repo.Create(&crs); err != nil {
		return nil, internalError("error creating course", err)
	}

	summary, err := s.repo.GetByIDWithTeacher(crs.ID)
	if err != nil {
		return nil, internalError("error creating course", err)
	}
	return summary, nil
}

func (s *CourseService) UpdateCourse(identity middleware.Identity, id uint, req UpdateCourseRequest) (*CourseSummary, *response.BusinessError) {
	crs, bizErr := s.loadOwnedCourse(identity, id)
	if bizErr != nil {
		return nil, bizErr
	}

	crs.Title = req.Title
	crs.Description = req.Description
	crs.ThumbnailURL = req.ThumbnailURL
	if err := s.repo.Update(crs); err != nil {
		return nil, internalError("error updating course", err)
	}

	summary, err := s.repo.GetByIDWithTeacher(id)
	if err != nil {
		return nil, internalError("error updating course", err)
	}
	return summary, nil
}

// DeleteCourse removes the course, its content rows and its quizzes in one
// transaction, then clears the stored files. Files are collected before the
// transaction so none are orphaned once their rows are gone; nothing is
// removed from disk unless the transaction commits.
func (s *CourseService) DeleteCourse(identity middleware.Identity, id uint) *response.BusinessError {
	if _, bizErr := s.loadOwnedCourse(identity, id); bizErr != nil {
		return bizErr
	}

	content, err := s.repo.ListContent(id)
	if err != nil {
		return internalError("error deleting course", err)
	}

	if err := s.repo.DeleteCourseTx(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("course not found")
		}
		return internalError("error deleting course", err)
	}

	for _, item := range content {
		if item.FilePath == nil {
			continue
		}
		if err := s.store.Remove(*item.FilePath); err != nil {
			log.Printf("course %d: remove stored file %s: %v", id, *item.FilePath, err)
		}
	}
	return nil
}

// AddContent validates course existence, ownership and the file policy
// before anything touches disk. If the row insert fails after the file was
// written, the file is deleted as compensation.
func (s *CourseService) AddContent(identity middleware.Identity, courseID uint, req ContentRequest, fh *multipart.FileHeader) (*coursemodel.CourseContent, *response.BusinessError) {
	if !coursemodel.ValidContentType(req.ContentType) {
		return nil, invalidInputError("invalid content type")
	}

	if _, bizErr := s.loadOwnedCourse(identity, courseID); bizErr != nil {
		return nil, bizErr
	}

	content := coursemodel.CourseContent{
		CourseID:    courseID,
		Title:       req.Title,
		ContentType: req.ContentType,
		Content:     req.Content,
	}

	if fh != nil {
		path, err := s.store.Save(fh)
		if err != nil {
			return nil, uploadError(err)
		}
		content.FilePath = &path
		content.FileName = fh.Filename
	}

	if err := s.repo.CreateContent(&content); err != nil {
		if content.FilePath != nil {
			if rmErr := s.store.Remove(*content.FilePath); rmErr != nil {
				log.Printf("compensating delete of %s failed: %v", *content.FilePath, rmErr)
			}
		}
		return nil, internalError("error adding course content", err)
	}

	return &content, nil
}

// UpdateContent replaces the row's fields and, when a new file is supplied,
// swaps the stored file. The old file is removed only after the database
// update succeeded; a zero-row update deletes the freshly written file.
func (s *CourseService) UpdateContent(identity middleware.Identity, courseID, contentID uint, req ContentRequest, fh *multipart.FileHeader) (*coursemodel.CourseContent, *response.BusinessError) {
	if !coursemodel.ValidContentType(req.ContentType) {
		return nil, invalidInputError("invalid content type")
	}

	if _, bizErr := s.loadOwnedCourse(identity, courseID); bizErr != nil {
		return nil, bizErr
	}

	existing, err := s.repo.GetContent(courseID, contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("content not found")
		}
		return nil, internalError("error updating course content", err)
	}

	updated := *existing
	updated.Title = req.Title
	updated.ContentType = req.ContentType
	updated.Content = req.Content

	var newPath string
	if fh != nil {
		newPath, err = s.store.Save(fh)
		if err != nil {
			return nil, uploadError(err)
		}
		updated.FilePath = &newPath
		updated.FileName = fh.Filename
	}

	affected, err := s.repo.UpdateContent(&updated)
	if err != nil || affected == 0 {
		if newPath != "" {
			if rmErr := s.store.Remove(newPath); rmErr != nil {
				log.Printf("compensating delete of %s failed: %v", newPath, rmErr)
			}
		}
		if err != nil {
			return nil, internalError("error updating course content", err)
		}
		return nil, notFoundError("content not found")
	}

	// Old file goes last, once the new state is durable.
	if newPath != "" && existing.FilePath != nil {
		if rmErr := s.store.Remove(*existing.FilePath); rmErr != nil {
			log.Printf("remove replaced file %s: %v", *existing.FilePath, rmErr)
		}
	}

	return &updated, nil
}

// DeleteContent removes the row first and touches disk only if exactly one
// row was deleted.
func (s *CourseService) DeleteContent(identity middleware.Identity, courseID, contentID uint) *response.BusinessError {
	if _, bizErr := s.loadOwnedCourse(identity, courseID); bizErr != nil {
		return bizErr
	}

	existing, err := s.repo.GetContent(courseID, contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("content not found")
		}
		return internalError("error deleting course content", err)
	}

	affected, err := s.repo.DeleteContent(courseID, contentID)
	if err != nil {
		return internalError("error deleting course content", err)
	}
	if affected == 0 {
		return notFoundError("content not found")
	}

	if existing.FilePath != nil {
		if rmErr := s.store.Remove(*existing.FilePath); rmErr != nil {
			log.Printf("remove stored file %s: %v", *existing.FilePath, rmErr)
		}
	}
	return nil
}

// Download resolves a content row to its stored file. Any authenticated
// user may download course material.
func (s *CourseService) Download(courseID, contentID uint) (*DownloadInfo, *response.BusinessError) {
	content, err := s.repo.GetContent(courseID, contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("content not found")
		}
		return nil, internalError("error downloading content", err)
	}

	if content.FilePath == nil || !s.store.Exists(*content.FilePath) {
		return nil, notFoundError("file not found")
	}

	name := content.FileName
	if name == "" {
		name = content.Title
	}
	return &DownloadInfo{Path: *content.FilePath, FileName: name}, nil
}

// loadOwnedCourse answers 404 for a missing course and 403 when the caller
// is neither the owning teacher nor an admin.
func (s *CourseService) loadOwnedCourse(identity middleware.Identity, id uint) (*coursemodel.Course, *response.BusinessError) {
	crs, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("course not found")
		}
		return nil, internalError("error fetching course", err)
	}

	if identity.Role == user.RoleAdmin {
		return crs, nil
	}
	if crs.TeacherID != nil && *crs.TeacherID == identity.UserID {
		return crs, nil
	}
	return nil, response.NewBusinessError(
		response.WithErrorCode(response.Forbidden),
		response.WithErrorMessage("access denied"),
	)
}

func uploadError(err error) *response.BusinessError {
	if errors.Is(err, upload.ErrFileType) || errors.Is(err, upload.ErrFileSize) {
		return response.NewBusinessError(
			response.WithErrorCode(response.InvalidInput),
			response.WithErrorMessage(err.Error()),
		)
	}
	return internalError("error storing uploaded file", err)
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
