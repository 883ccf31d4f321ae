// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"openboard/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error)
	ListByAuthor(ctx context.Context, userID uint) ([]*models.Comment, error)
	UpdateOwned(ctx context.Context, commentID, ownerID uint, content string) (*models.Comment, error)
	DeleteOwned(ctx context.Context, commentID, ownerID uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// annotatedSelect joins the author's nickname and avatar into each
// comment row, matching the shape the listing endpoints return.
const annotatedSelect = "comments.*, users.nickname AS author_nickname, " +
	"users.avatar_url AS author_avatar_url"

func (r *commentRepository) annotated(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select(annotatedSelect).
		Joins("JOIN users ON users.id = comments.user_id")
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.annotated(ctx).Where("comments.id = ?", id).Take(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.annotated(ctx).
		Where("comments.post_id = ?", postID).
		Order("comments.created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

// ListByAuthor returns the user's comments joined with the title of the
// post each one belongs to, newest first.
func (r *commentRepository) ListByAuthor(ctx context.Context, userID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select(annotatedSelect + ", posts.title AS post_title").
		Joins("JOIN users ON users.id = comments.user_id").
		Joins("JOIN posts ON posts.id = comments.post_id").
		Where("comments.user_id = ?", userID).
		Order("comments.created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

// UpdateOwned edits the comment only when the acting user is its
// author; check and mutation share one transaction.
func (r *commentRepository) UpdateOwned(ctx context.Context, commentID, ownerID uint, content string) (*models.Comment, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.Select("id", "user_id").Take(&comment, commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Comment", commentID)
			}
			return err
		}
		if comment.UserID != ownerID {
			return models.NewForbiddenError("You can only update your own comments")
		}

		res := tx.Model(&models.Comment{}).
			Where("id = ? AND user_id = ?", commentID, ownerID).
			Update("content", content)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Comment", commentID)
		}
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}

	return r.GetByID(ctx, commentID)
}

func (r *commentRepository) DeleteOwned(ctx context.Context, commentID, ownerID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.Select("id", "user_id").Take(&comment, commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Comment", commentID)
			}
			return err
		}
		if comment.UserID != ownerID {
			return models.NewForbiddenError("You can only delete your own comments")
		}

		res := tx.Where("id = ? AND user_id = ?", commentID, ownerID).Delete(&models.Comment{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Comment", commentID)
		}
		return nil
	})
	return asAppError(err)
}
