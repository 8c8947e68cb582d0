package forum

import (
	"errors"

	"gorm.io/gorm"

	"openclass/lms-backend/internal/middleware"
	forummodel "openclass/lms-backend/internal/model/forum"
	"openclass/lms-backend/internal/model/user"
	"openclass/lms-backend/internal/response"
)

type ForumService struct {
	repo *ForumRepository
}

func NewForumService(repo *ForumRepository) *ForumService {
	return &ForumService{repo: repo}
}

// ListPosts returns posts with their replies grouped in, newest post first.
func (s *ForumService) ListPosts(courseID uint) ([]PostView, *response.BusinessError) {
	posts, err := s.repo.ListPosts(courseID)
	if err != nil {
		return nil, internalError("error fetching forum posts", err)
	}
	if len(posts) == 0 {
		return []PostView{}, nil
	}

	postIDs := make([]uint, 0, len(posts))
	for _, post := range posts {
		postIDs = append(postIDs, post.ID)
	}

	replies, err := s.repo.ListReplies(postIDs)
	if err != nil {
		return nil, internalError("error fetching forum posts", err)
	}

	byPost := make(map[uint][]ReplyView, len(posts))
	for _, reply := range replies {
		byPost[reply.PostID] = append(byPost[reply.PostID], reply)
	}
	for i := range posts {
		if grouped := byPost[posts[i].ID]; grouped != nil {
			posts[i].Replies = grouped
		} else {
			posts[i].Replies = []ReplyView{}
		}
	}

	return posts, nil
}

func (s *ForumService) CreatePost(identity middleware.Identity, req CreatePostRequest) (*forummodel.ForumPost, *response.BusinessError) {
	post := forummodel.ForumPost{
		CourseID: req.CourseID,
		UserID:   identity.UserID,
		Title:    req.Title,
		Content:  req.Content,
	}
	if err := s.repo.CreatePost(&post); err != nil {
		return nil, internalError("error creating forum post", err)
	}
	return &post, nil
}

func (s *ForumService) CreateReply(identity middleware.Identity, postID uint, req CreateReplyRequest) (*forummodel.ForumReply, *response.BusinessError) {
	if _, err := s.repo.GetPost(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("post not found")
		}
		return nil, internalError("error creating reply", err)
	}

	reply := forummodel.ForumReply{
		PostID:  postID,
		UserID:  identity.UserID,
		Content: req.Content,
	}
	if err := s.repo.CreateReply(&reply); err != nil {
		return nil, internalError("error creating reply", err)
	}
	return &reply, nil
}

// DeletePost removes a post and its replies. Only the author or an admin
// may delete.
func (s *ForumService) DeletePost(identity middleware.Identity, postID uint) *response.BusinessError {
	post, err := s.repo.GetPost(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("post not found")
		}
		return internalError("error deleting post", err)
	}

	if bizErr := authorOrAdmin(identity, post.UserID); bizErr != nil {
		return bizErr
	}

	if err := s.repo.DeletePostTx(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("post not found")
		}
		return internalError("error deleting post", err)
	}
	return nil
}

func (s *ForumService) DeleteReply(identity middleware.Identity, replyID uint) *response.BusinessError {
	reply, err := s.repo.GetReply(replyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("reply not found")
		}
		return internalError("error deleting reply", err)
	}

	if bizErr := authorOrAdmin(identity, reply.UserID); bizErr != nil {
		return bizErr
	}

	affected, err := s.repo.DeleteReply(replyID)
	if err != nil {
		return internalError("error deleting reply", err)
	}
	if affected == 0 {
		return notFoundError("reply not found")
	}
	return nil
}

func authorOrAdmin(identity middleware.Identity, authorID uint) *response.BusinessError {
	if identity.Role == user.RoleAdmin || identity.UserID == authorID {
		return nil
	}
	return response.NewBusinessError(
		response.WithErrorCode(response.Forbidden),
		response.WithErrorMessage("access denied"),
	)
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
