package service

import (
	"context"

	"openboard/internal/models"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByNicknameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	deleteAccountFn func(context.Context, uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByNickname(ctx context.Context, nickname string) (*models.User, error) {
	return s.getByNicknameFn(ctx, nickname)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) DeleteAccount(ctx context.Context, id uint) error {
	return s.deleteAccountFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, _ uint) (*models.User, error) { return &models.User{ID: 1}, nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByNicknameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		deleteAccountFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn       func(context.Context, *models.Post) error
	getByIDFn      func(context.Context, uint) (*models.Post, error)
	listFn         func(context.Context, string, int, int) ([]*models.Post, int64, error)
	listByAuthorFn func(context.Context, uint) ([]*models.Post, error)
	listLikedByFn  func(context.Context, uint) ([]*models.Post, error)
	updateOwnedFn  func(context.Context, uint, uint, string, string) (*models.Post, error)
	deleteOwnedFn  func(context.Context, uint, uint) error
	addLikeFn      func(context.Context, uint, uint) error
	removeLikeFn   func(context.Context, uint, uint) error
	likedPostIDsFn func(context.Context, uint) ([]uint, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, search string, page, limit int) ([]*models.Post, int64, error) {
	return s.listFn(ctx, search, page, limit)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, userID uint) ([]*models.Post, error) {
	return s.listByAuthorFn(ctx, userID)
}
func (s *postRepoStub) ListLikedBy(ctx context.Context, userID uint) ([]*models.Post, error) {
	return s.listLikedByFn(ctx, userID)
}
func (s *postRepoStub) UpdateOwned(ctx context.Context, postID, ownerID uint, title, content string) (*models.Post, error) {
	return s.updateOwnedFn(ctx, postID, ownerID, title, content)
}
func (s *postRepoStub) DeleteOwned(ctx context.Context, postID, ownerID uint) error {
	return s.deleteOwnedFn(ctx, postID, ownerID)
}
func (s *postRepoStub) AddLike(ctx context.Context, userID, postID uint) error {
	return s.addLikeFn(ctx, userID, postID)
}
func (s *postRepoStub) RemoveLike(ctx context.Context, userID, postID uint) error {
	return s.removeLikeFn(ctx, userID, postID)
}
func (s *postRepoStub) LikedPostIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.likedPostIDsFn(ctx, userID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:       func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:      func(_ context.Context, _ uint) (*models.Post, error) { return &models.Post{ID: 1}, nil },
		listFn:         func(_ context.Context, _ string, _, _ int) ([]*models.Post, int64, error) { return nil, 0, nil },
		listByAuthorFn: func(_ context.Context, _ uint) ([]*models.Post, error) { return nil, nil },
		listLikedByFn:  func(_ context.Context, _ uint) ([]*models.Post, error) { return nil, nil },
		updateOwnedFn: func(_ context.Context, _, _ uint, _, _ string) (*models.Post, error) {
			return &models.Post{ID: 1}, nil
		},
		deleteOwnedFn:  func(_ context.Context, _, _ uint) error { return nil },
		addLikeFn:      func(_ context.Context, _, _ uint) error { return nil },
		removeLikeFn:   func(_ context.Context, _, _ uint) error { return nil },
		likedPostIDsFn: func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn       func(context.Context, *models.Comment) error
	getByIDFn      func(context.Context, uint) (*models.Comment, error)
	listByPostFn   func(context.Context, uint) ([]*models.Comment, error)
	listByAuthorFn func(context.Context, uint) ([]*models.Comment, error)
	updateOwnedFn  func(context.Context, uint, uint, string) (*models.Comment, error)
	deleteOwnedFn  func(context.Context, uint, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) ListByAuthor(ctx context.Context, userID uint) ([]*models.Comment, error) {
	return s.listByAuthorFn(ctx, userID)
}
func (s *commentRepoStub) UpdateOwned(ctx context.Context, commentID, ownerID uint, content string) (*models.Comment, error) {
	return s.updateOwnedFn(ctx, commentID, ownerID, content)
}
func (s *commentRepoStub) DeleteOwned(ctx context.Context, commentID, ownerID uint) error {
	return s.deleteOwnedFn(ctx, commentID, ownerID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:       func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:      func(_ context.Context, _ uint) (*models.Comment, error) { return &models.Comment{ID: 1}, nil },
		listByPostFn:   func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		listByAuthorFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		updateOwnedFn: func(_ context.Context, _, _ uint, _ string) (*models.Comment, error) {
			return &models.Comment{ID: 1}, nil
		},
		deleteOwnedFn: func(_ context.Context, _, _ uint) error { return nil },
	}
}

// storeStub is an in-memory storage.Store.
type storeStub struct {
	objects map[string][]byte
	saveErr error
}

func newStoreStub() *storeStub {
	return &storeStub{objects: map[string][]byte{}}
}

func (s *storeStub) Save(ctx context.Context, key string, data []byte) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	s.objects[key] = data
	return "/media/" + key, nil
}

func (s *storeStub) Remove(ctx context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

func (s *storeStub) KeyFromURL(url string) (string, bool) {
	if len(url) > 7 && url[:7] == "/media/" {
		return url[7:], true
	}
	return "", false
}
