// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"openboard/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, search string, page, limit int) ([]*models.Post, int64, error)
	ListByAuthor(ctx context.Context, userID uint) ([]*models.Post, error)
	ListLikedBy(ctx context.Context, userID uint) ([]*models.Post, error)
	UpdateOwned(ctx context.Context, postID, ownerID uint, title, content string) (*models.Post, error)
	DeleteOwned(ctx context.Context, postID, ownerID uint) error
	AddLike(ctx context.Context, userID, postID uint) error
	RemoveLike(ctx context.Context, userID, postID uint) error
	LikedPostIDs(ctx context.Context, userID uint) ([]uint, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// joinedSelect is the column list shared by every post read: the post
// row, the author nickname joined from users, and the like count as a
// correlated subquery so one query pass returns the full shape.
const joinedSelect = "posts.*, users.nickname AS author_nickname, " +
	"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS like_count"

func (r *postRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Select(joinedSelect).
		Joins("JOIN users ON users.id = posts.user_id")
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.joined(ctx).Where("posts.id = ?", id).Take(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// List returns one page of posts matching the search term together with
// the size of the full filtered set. The total is computed in the same
// query pass via a window function; matching is a case-insensitive
// substring match on title or content.
func (r *postRepository) List(ctx context.Context, search string, page, limit int) ([]*models.Post, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Select(joinedSelect + ", COUNT(*) OVER() AS total_count").
		Joins("JOIN users ON users.id = posts.user_id")
	q = applySearch(q, search)

	var posts []*models.Post
	err := q.Order("posts.created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	if len(posts) > 0 {
		return posts, posts[0].TotalCount, nil
	}

	// Page beyond the end of the set: the window count is unavailable,
	// so fall back to a plain count with the same filter.
	var total int64
	countQ := applySearch(r.db.WithContext(ctx).Model(&models.Post{}), search)
	if err := countQ.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return []*models.Post{}, total, nil
}

func applySearch(q *gorm.DB, search string) *gorm.DB {
	if search == "" {
		return q
	}
	like := "%" + search + "%"
	return q.Where("LOWER(posts.title) LIKE LOWER(?) OR LOWER(posts.content) LIKE LOWER(?)", like, like)
}

func (r *postRepository) ListByAuthor(ctx context.Context, userID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.joined(ctx).
		Where("posts.user_id = ?", userID).
		Order("posts.created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListLikedBy(ctx context.Context, userID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.joined(ctx).
		Joins("JOIN likes ON likes.post_id = posts.id AND likes.user_id = ?", userID).
		Order("posts.created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// UpdateOwned applies the edit only when the acting user owns the post.
// The ownership check and the mutation run in one transaction, and the
// UPDATE itself re-verifies ownership so a concurrent delete surfaces
// as NotFound rather than being silently lost.
func (r *postRepository) UpdateOwned(ctx context.Context, postID, ownerID uint, title, content string) (*models.Post, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id", "user_id").Take(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", postID)
			}
			return err
		}
		if post.UserID != ownerID {
			return models.NewForbiddenError("You can only update your own posts")
		}

		res := tx.Model(&models.Post{}).
			Where("id = ? AND user_id = ?", postID, ownerID).
			Updates(map[string]interface{}{"title": title, "content": content})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Post", postID)
		}
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}

	return r.GetByID(ctx, postID)
}

// DeleteOwned removes the post together with its comments and likes.
// The cascade is explicit so the behavior does not depend on the
// database's foreign-key configuration.
func (r *postRepository) DeleteOwned(ctx context.Context, postID, ownerID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id", "user_id").Take(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", postID)
			}
			return err
		}
		if post.UserID != ownerID {
			return models.NewForbiddenError("You can only delete your own posts")
		}

		if err := tx.Where("post_id = ?", postID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ? AND user_id = ?", postID, ownerID).Delete(&models.Post{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Post", postID)
		}
		return nil
	})
	return asAppError(err)
}

// AddLike inserts the (user, post) like. The composite primary key is
// the uniqueness guard; a duplicate surfaces as Conflict, never as a
// silent no-op.
func (r *postRepository) AddLike(ctx context.Context, userID, postID uint) error {
	like := &models.Like{UserID: userID, PostID: postID}
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("You have already liked this post")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// RemoveLike deletes the (user, post) like; zero affected rows signals
// absence, not success.
func (r *postRepository) RemoveLike(ctx context.Context, userID, postID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Like", postID)
	}
	return nil
}

func (r *postRepository) LikedPostIDs(ctx context.Context, userID uint) ([]uint, error) {
	var postIDs []uint
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("post_id", &postIDs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return postIDs, nil
}

// asAppError passes AppErrors through and wraps anything else as internal.
func asAppError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return models.NewInternalError(err)
}
