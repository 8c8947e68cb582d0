package forum

import (
	"gorm.io/gorm"

	forummodel "openclass/lms-backend/internal/model/forum"
)

type ForumRepository struct {
	db *gorm.DB
}

func NewForumRepository(db *gorm.DB) *ForumRepository {
	return &ForumRepository{db: db}
}

// ListPosts returns posts with author names, newest first, optionally
// filtered to one course. courseID of zero means no filter.
func (r *ForumRepository) ListPosts(courseID uint) ([]PostView, error) {
	q := r.db.Table("forum_posts p").
		Select("p.*, u.name AS author_name").
		Joins("LEFT JOIN users u ON p.user_id = u.id").
		Order("p.id DESC")
	if courseID != 0 {
		q = q.Where("p.course_id = ?", courseID)
	}

	var posts []PostView
	if err := q.Scan(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListReplies returns replies with author names for a set of posts, in
// reply order.
func (r *ForumRepository) ListReplies(postIDs []uint) ([]ReplyView, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}

	var replies []ReplyView
	err := r.db.Table("forum_replies rp").
		Select("rp.*, u.name AS author_name").
		Joins("LEFT JOIN users u ON rp.user_id = u.id").
		Where("rp.post_id IN ?", postIDs).
		Order("rp.id").
		Scan(&replies).Error
	return replies, err
}

func (r *ForumRepository) GetPost(id uint) (*forummodel.ForumPost, error) {
	var post forummodel.ForumPost
	err := r.db.First(&post, id).Error
	return &post, err
}

func (r *ForumRepository) GetReply(id uint) (*forummodel.ForumReply, error) {
	var reply forummodel.ForumReply
	err := r.db.First(&reply, id).Error
	return &reply, err
}

func (r *ForumRepository) CreatePost(post *forummodel.ForumPost) error {
	return r.db.Create(post).Error
}

func (r *ForumRepository) CreateReply(reply *forummodel.ForumReply) error {
	return r.db.Create(reply).Error
}

// DeletePostTx removes a post and its replies together.
func (r *ForumRepository) DeletePostTx(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).
			Delete(&forummodel.ForumReply{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&forummodel.ForumPost{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *ForumRepository) DeleteReply(id uint) (int64, error) {
	result := r.db.Delete(&forummodel.ForumReply{}, id)
	return result.RowsAffected, result.Error
}
