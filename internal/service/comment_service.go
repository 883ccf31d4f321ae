package service

import (
	"context"
	"strings"

	"openboard/internal/models"
	"openboard/internal/repository"
	"openboard/internal/validation"
)

// CommentService defines interface for comment operations
type CommentService interface {
	Create(ctx context.Context, userID, postID uint, content string) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error)
	Update(ctx context.Context, commentID, userID uint, content string) (*models.Comment, error)
	Delete(ctx context.Context, commentID, userID uint) error
	MyComments(ctx context.Context, userID uint) ([]*models.Comment, error)
}

type commentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository) CommentService {
	return &commentService{comments: comments, posts: posts}
}

func (s *commentService) Create(ctx context.Context, userID, postID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if err := validation.ValidateCommentContent(content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	// the post must exist before a comment can hang off it
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: content,
		UserID:  userID,
		PostID:  postID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.comments.GetByID(ctx, comment.ID)
}

func (s *commentService) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	return comments, nil
}

func (s *commentService) Update(ctx context.Context, commentID, userID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if err := validation.ValidateCommentContent(content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	return s.comments.UpdateOwned(ctx, commentID, userID, content)
}

func (s *commentService) Delete(ctx context.Context, commentID, userID uint) error {
	return s.comments.DeleteOwned(ctx, commentID, userID)
}

func (s *commentService) MyComments(ctx context.Context, userID uint) ([]*models.Comment, error) {
	return s.comments.ListByAuthor(ctx, userID)
}
