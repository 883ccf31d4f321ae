// Package service contains business logic for the application.
package service

import (
	"context"
	"strings"

	"openboard/internal/auth"
	"openboard/internal/models"
	"openboard/internal/repository"
	"openboard/internal/storage"
	"openboard/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// AuthResult is what a successful login hands to the handler layer.
type AuthResult struct {
	Token string
	User  *models.User
}

// UserService defines interface for account and profile operations
type UserService interface {
	Register(ctx context.Context, email, password, nickname string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	UpdateNickname(ctx context.Context, userID uint, nickname string) (*models.User, error)
	UploadAvatar(ctx context.Context, userID uint, data []byte) (*models.User, error)
	DeleteAvatar(ctx context.Context, userID uint) (*models.User, error)
	DeleteAccount(ctx context.Context, userID uint) error
}

type userService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
	store  storage.Store
}

// NewUserService creates a new UserService
func NewUserService(users repository.UserRepository, tokens *auth.TokenService, store storage.Store) UserService {
	return &userService{users: users, tokens: tokens, store: store}
}

func (s *userService) Register(ctx context.Context, email, password, nickname string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	nickname = strings.TrimSpace(nickname)

	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateNickname(nickname); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	// Fast-path duplicate checks. The unique constraints remain the
	// real guard against a concurrent insert.
	if existing, err := s.users.GetByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewConflictError("Email already in use")
	}
	if existing, err := s.users.GetByNickname(ctx, nickname); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewConflictError("Nickname already in use")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hashed),
		Nickname: nickname,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a bearer token. Unknown email
// and wrong password produce the same error so the response does not
// reveal which accounts exist.
func (s *userService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *userService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userService) UpdateNickname(ctx context.Context, userID uint, nickname string) (*models.User, error) {
	nickname = strings.TrimSpace(nickname)
	if err := validation.ValidateNickname(nickname); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if existing, err := s.users.GetByNickname(ctx, nickname); err != nil {
		return nil, err
	} else if existing != nil && existing.ID != userID {
		return nil, models.NewConflictError("Nickname already in use")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Nickname = nickname
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UploadAvatar stores the image and points the profile at it. A
// previous avatar is removed from storage after the profile row is
// updated; a failed cleanup is logged by the store, not surfaced.
func (s *userService) UploadAvatar(ctx context.Context, userID uint, data []byte) (*models.User, error) {
	if len(data) == 0 {
		return nil, models.NewValidationError("Avatar file is empty")
	}
	ext, ok := storage.SniffImage(data)
	if !ok {
		return nil, models.NewValidationError("Avatar must be a JPEG, PNG, GIF, or WebP image")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := storage.NewObjectKey("avatars", userID, ext)
	url, err := s.store.Save(ctx, key, data)
	if err != nil {
		return nil, err
	}

	oldURL := user.AvatarURL
	user.AvatarURL = url
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	if oldKey, ok := s.store.KeyFromURL(oldURL); ok {
		_ = s.store.Remove(ctx, oldKey)
	}
	return user, nil
}

func (s *userService) DeleteAvatar(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.AvatarURL == "" {
		return nil, models.NewNotFoundError("avatar", userID)
	}

	oldURL := user.AvatarURL
	user.AvatarURL = ""
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	if oldKey, ok := s.store.KeyFromURL(oldURL); ok {
		_ = s.store.Remove(ctx, oldKey)
	}
	return user, nil
}

func (s *userService) DeleteAccount(ctx context.Context, userID uint) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.users.DeleteAccount(ctx, userID); err != nil {
		return err
	}

	if oldKey, ok := s.store.KeyFromURL(user.AvatarURL); ok {
		_ = s.store.Remove(ctx, oldKey)
	}
	return nil
}
