package service

import (
	"context"
	"strings"

	"openboard/internal/models"
	"openboard/internal/repository"
	"openboard/internal/storage"
)

// pageSize is the fixed number of posts per listing page.
const pageSize = 5

// PostService defines interface for post and like operations
type PostService interface {
	Create(ctx context.Context, userID uint, title, content, imageURL string) (*models.Post, error)
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, search string, page int) (*models.PostPage, error)
	Update(ctx context.Context, postID, userID uint, title, content string) (*models.Post, error)
	Delete(ctx context.Context, postID, userID uint) error
	Like(ctx context.Context, userID, postID uint) error
	Unlike(ctx context.Context, userID, postID uint) error
	MyPosts(ctx context.Context, userID uint) ([]*models.Post, error)
	MyLikes(ctx context.Context, userID uint) ([]uint, error)
	MyLikedPosts(ctx context.Context, userID uint) ([]*models.Post, error)
	UploadImage(ctx context.Context, userID uint, data []byte) (string, error)
}

type postService struct {
	posts repository.PostRepository
	store storage.Store
}

// NewPostService creates a new PostService
func NewPostService(posts repository.PostRepository, store storage.Store) PostService {
	return &postService{posts: posts, store: store}
}

func (s *postService) Create(ctx context.Context, userID uint, title, content, imageURL string) (*models.Post, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("Content is required")
	}

	post := &models.Post{
		Title:    title,
		Content:  content,
		ImageURL: imageURL,
		UserID:   userID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.posts.GetByID(ctx, post.ID)
}

func (s *postService) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// List returns one fixed-size page of posts, newest first, optionally
// filtered by a substring match on title or content. Page numbers
// below one fall back to the first page rather than erroring.
func (s *postService) List(ctx context.Context, search string, page int) (*models.PostPage, error) {
	if page < 1 {
		page = 1
	}
	posts, total, err := s.posts.List(ctx, strings.TrimSpace(search), page, pageSize)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return &models.PostPage{
		Posts:      posts,
		TotalCount: total,
		Page:       page,
		Limit:      pageSize,
	}, nil
}

func (s *postService) Update(ctx context.Context, postID, userID uint, title, content string) (*models.Post, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	return s.posts.UpdateOwned(ctx, postID, userID, title, content)
}

func (s *postService) Delete(ctx context.Context, postID, userID uint) error {
	return s.posts.DeleteOwned(ctx, postID, userID)
}

// Like records the user's like. Liking a post twice is a conflict, not
// a toggle; the client un-likes explicitly.
func (s *postService) Like(ctx context.Context, userID, postID uint) error {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return err
	}
	return s.posts.AddLike(ctx, userID, postID)
}

func (s *postService) Unlike(ctx context.Context, userID, postID uint) error {
	return s.posts.RemoveLike(ctx, userID, postID)
}

func (s *postService) MyPosts(ctx context.Context, userID uint) ([]*models.Post, error) {
	return s.posts.ListByAuthor(ctx, userID)
}

func (s *postService) MyLikes(ctx context.Context, userID uint) ([]uint, error) {
	return s.posts.LikedPostIDs(ctx, userID)
}

func (s *postService) MyLikedPosts(ctx context.Context, userID uint) ([]*models.Post, error) {
	return s.posts.ListLikedBy(ctx, userID)
}

func (s *postService) UploadImage(ctx context.Context, userID uint, data []byte) (string, error) {
	if len(data) == 0 {
		return "", models.NewValidationError("Image file is empty")
	}
	ext, ok := storage.SniffImage(data)
	if !ok {
		return "", models.NewValidationError("File must be a JPEG, PNG, GIF, or WebP image")
	}

	key := storage.NewObjectKey("posts", userID, ext)
	return s.store.Save(ctx, key, data)
}
