package service

import (
	"context"
	"testing"

	"openboard/internal/auth"
	"openboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserService(users *userRepoStub, store *storeStub) UserService {
	return NewUserService(users, auth.NewTokenService("test-secret"), store)
}

func TestUserService_Register(t *testing.T) {
	users := noopUserRepo()
	var created *models.User
	users.createFn = func(_ context.Context, u *models.User) error {
		u.ID = 1
		created = u
		return nil
	}
	svc := newUserService(users, newStoreStub())

	user, err := svc.Register(context.Background(), "  Alice@Example.COM ", "pw", " alice ")
	require.NoError(t, err)
	require.NotNil(t, created)

	// email is normalized, nickname trimmed
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "alice", user.Nickname)

	// the stored password is a bcrypt hash, never the plaintext
	assert.NotEqual(t, "pw", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("pw")))
}

func TestUserService_Register_Invalid(t *testing.T) {
	svc := newUserService(noopUserRepo(), newStoreStub())
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		nickname string
	}{
		{"bad email", "not-an-email", "pw", "alice"},
		{"empty password", "a@x.com", "", "alice"},
		{"empty nickname", "a@x.com", "pw", "  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.email, tt.password, tt.nickname)
			require.Error(t, err)
			assert.Equal(t, 400, models.StatusForError(err))
		})
	}
}

func TestUserService_Register_Conflict(t *testing.T) {
	users := noopUserRepo()
	users.createFn = func(_ context.Context, _ *models.User) error {
		return models.NewConflictError("Email or nickname already in use")
	}
	svc := newUserService(users, newStoreStub())

	_, err := svc.Register(context.Background(), "a@x.com", "pw", "alice")
	require.Error(t, err)
	assert.Equal(t, 409, models.StatusForError(err))
}

func TestUserService_Register_DuplicatePrecheck(t *testing.T) {
	users := noopUserRepo()
	users.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
		return &models.User{ID: 2, Email: email}, nil
	}
	created := false
	users.createFn = func(_ context.Context, _ *models.User) error {
		created = true
		return nil
	}
	svc := newUserService(users, newStoreStub())

	_, err := svc.Register(context.Background(), "a@x.com", "pw", "alice")
	require.Error(t, err)
	assert.Equal(t, 409, models.StatusForError(err))
	assert.False(t, created)
}

func TestUserService_UpdateNickname_Taken(t *testing.T) {
	users := noopUserRepo()
	users.getByNicknameFn = func(_ context.Context, nickname string) (*models.User, error) {
		return &models.User{ID: 2, Nickname: nickname}, nil
	}
	svc := newUserService(users, newStoreStub())

	_, err := svc.UpdateNickname(context.Background(), 1, "taken")
	require.Error(t, err)
	assert.Equal(t, 409, models.StatusForError(err))
}

func TestUserService_UpdateNickname_KeepOwn(t *testing.T) {
	users := noopUserRepo()
	users.getByNicknameFn = func(_ context.Context, nickname string) (*models.User, error) {
		return &models.User{ID: 1, Nickname: nickname}, nil
	}
	svc := newUserService(users, newStoreStub())

	user, err := svc.UpdateNickname(context.Background(), 1, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Nickname)
}

func TestUserService_Login(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &models.User{ID: 3, Email: "a@x.com", Password: string(hashed), Nickname: "alice"}
	users := noopUserRepo()
	users.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
		if email == "a@x.com" {
			return stored, nil
		}
		return nil, nil
	}
	svc := newUserService(users, newStoreStub())
	ctx := context.Background()

	t.Run("success issues a verifiable token", func(t *testing.T) {
		result, err := svc.Login(ctx, "a@x.com", "pw")
		require.NoError(t, err)
		assert.Equal(t, uint(3), result.User.ID)

		userID, err := auth.NewTokenService("test-secret").Verify(result.Token)
		require.NoError(t, err)
		assert.Equal(t, uint(3), userID)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@x.com", "pw")
		require.Error(t, err)
		assert.Equal(t, 401, models.StatusForError(err))
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "a@x.com", "wrong")
		require.Error(t, err)
		assert.Equal(t, 401, models.StatusForError(err))
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		_, errUnknown := svc.Login(ctx, "nobody@x.com", "pw")
		_, errWrong := svc.Login(ctx, "a@x.com", "wrong")
		assert.Equal(t, errUnknown.Error(), errWrong.Error())
	})
}

func TestUserService_UpdateNickname(t *testing.T) {
	users := noopUserRepo()
	current := &models.User{ID: 1, Nickname: "old"}
	users.getByIDFn = func(_ context.Context, _ uint) (*models.User, error) { return current, nil }

	var saved *models.User
	users.updateFn = func(_ context.Context, u *models.User) error {
		saved = u
		return nil
	}
	svc := newUserService(users, newStoreStub())

	user, err := svc.UpdateNickname(context.Background(), 1, "  fresh  ")
	require.NoError(t, err)
	assert.Equal(t, "fresh", user.Nickname)
	require.NotNil(t, saved)
	assert.Equal(t, "fresh", saved.Nickname)
}

func TestUserService_UpdateNickname_Invalid(t *testing.T) {
	svc := newUserService(noopUserRepo(), newStoreStub())

	_, err := svc.UpdateNickname(context.Background(), 1, "   ")
	require.Error(t, err)
	assert.Equal(t, 400, models.StatusForError(err))
}

func TestUserService_UploadAvatar(t *testing.T) {
	users := noopUserRepo()
	current := &models.User{ID: 1, AvatarURL: "/media/avatars/1/old.png"}
	users.getByIDFn = func(_ context.Context, _ uint) (*models.User, error) { return current, nil }
	users.updateFn = func(_ context.Context, _ *models.User) error { return nil }

	store := newStoreStub()
	store.objects["avatars/1/old.png"] = []byte("old")
	svc := newUserService(users, store)

	user, err := svc.UploadAvatar(context.Background(), 1, testPNG(t))
	require.NoError(t, err)
	assert.NotEmpty(t, user.AvatarURL)
	assert.NotEqual(t, "/media/avatars/1/old.png", user.AvatarURL)

	// previous object was cleaned up, new one stored
	_, oldExists := store.objects["avatars/1/old.png"]
	assert.False(t, oldExists)
	assert.Len(t, store.objects, 1)
}

func TestUserService_UploadAvatar_RejectsNonImage(t *testing.T) {
	svc := newUserService(noopUserRepo(), newStoreStub())
	ctx := context.Background()

	for _, data := range [][]byte{nil, []byte("not an image")} {
		_, err := svc.UploadAvatar(ctx, 1, data)
		require.Error(t, err)
		assert.Equal(t, 400, models.StatusForError(err))
	}
}

func TestUserService_DeleteAvatar(t *testing.T) {
	users := noopUserRepo()
	current := &models.User{ID: 1, AvatarURL: "/media/avatars/1/a.png"}
	users.getByIDFn = func(_ context.Context, _ uint) (*models.User, error) { return current, nil }

	store := newStoreStub()
	store.objects["avatars/1/a.png"] = []byte("img")
	svc := newUserService(users, store)

	user, err := svc.DeleteAvatar(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, user.AvatarURL)
	assert.Empty(t, store.objects)
}

func TestUserService_DeleteAvatar_NoneSet(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, _ uint) (*models.User, error) {
		return &models.User{ID: 1}, nil
	}
	svc := newUserService(users, newStoreStub())

	_, err := svc.DeleteAvatar(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, 404, models.StatusForError(err))
}

func TestUserService_DeleteAccount(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, _ uint) (*models.User, error) {
		return &models.User{ID: 1, AvatarURL: "/media/avatars/1/a.png"}, nil
	}
	deleted := false
	users.deleteAccountFn = func(_ context.Context, id uint) error {
		deleted = id == 1
		return nil
	}

	store := newStoreStub()
	store.objects["avatars/1/a.png"] = []byte("img")
	svc := newUserService(users, store)

	require.NoError(t, svc.DeleteAccount(context.Background(), 1))
	assert.True(t, deleted)
	assert.Empty(t, store.objects)
}
