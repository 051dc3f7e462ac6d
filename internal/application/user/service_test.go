package user

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/smartrecipe/server/internal/domain/user"
	"github.com/smartrecipe/server/internal/infrastructure/config"
	"github.com/smartrecipe/server/internal/infrastructure/security"
	"github.com/smartrecipe/server/internal/ports/inbound"
	"github.com/smartrecipe/server/internal/ports/outbound"
	apperrors "github.com/smartrecipe/server/pkg/errors"
)

type followKey struct {
	followerID uuid.UUID
	followeeID uuid.UUID
}

type fakeUserRepo struct {
	users    map[uuid.UUID]*user.User
	profiles map[uuid.UUID]*user.Profile
	follows  map[followKey]struct{}
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:    make(map[uuid.UUID]*user.User),
		profiles: make(map[uuid.UUID]*user.Profile),
		follows:  make(map[followKey]struct{}),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User, p *user.Profile) error {
	f.users[u.ID] = u
	f.profiles[u.ID] = p
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, outbound.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*user.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, outbound.ErrNotFound
}

func (f *fakeUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, u := range f.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	u, ok := f.users[id]
	if !ok {
		return outbound.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserRepo) GetProfile(_ context.Context, userID uuid.UUID) (*user.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, outbound.ErrNotFound
	}
	return p, nil
}

func (f *fakeUserRepo) SaveProfile(_ context.Context, p *user.Profile) error {
	f.profiles[p.UserID] = p
	return nil
}

func (f *fakeUserRepo) Follow(_ context.Context, followerID, followeeID uuid.UUID) error {
	f.follows[followKey{followerID, followeeID}] = struct{}{}
	return nil
}

func (f *fakeUserRepo) Unfollow(_ context.Context, followerID, followeeID uuid.UUID) error {
	delete(f.follows, followKey{followerID, followeeID})
	return nil
}

func (f *fakeUserRepo) IsFollowing(_ context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	_, ok := f.follows[followKey{followerID, followeeID}]
	return ok, nil
}

func (f *fakeUserRepo) FindFollowing(_ context.Context, followerID uuid.UUID, _, _ int) ([]*user.User, int, error) {
	var out []*user.User
	for key := range f.follows {
		if key.followerID == followerID {
			if u, ok := f.users[key.followeeID]; ok {
				out = append(out, u)
			}
		}
	}
	return out, len(out), nil
}

func newTestService(repo outbound.UserRepository) inbound.UserService {
	auth := security.NewAuthService(&config.Config{
		Auth: config.AuthConfig{
			JWTSecret:         "test-secret-key-for-testing-only-32-bytes",
			JWTExpiration:     time.Hour,
			RefreshExpiration: 24 * time.Hour,
			BCryptCost:        4,
		},
	}, zap.NewNop(), nil)
	return NewUserService(repo, auth, zap.NewNop())
}

func register(t *testing.T, svc inbound.UserService, username string) *user.User {
	t.Helper()
	account, _, err := svc.Register(context.Background(), inbound.RegisterCommand{
		Username: username,
		Password: "secret123",
		Email:    gofakeit.Email(),
		Phone:    gofakeit.Phone(),
	})
	require.NoError(t, err)
	return account
}

func TestRegister(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	account, profile, err := svc.Register(context.Background(), inbound.RegisterCommand{
		Username: "chef_wang",
		Password: "secret123",
		Email:    "wang@example.com",
		Nickname: "Wang",
	})
	require.NoError(t, err)
	assert.True(t, account.IsActive)
	assert.NotEqual(t, "secret123", account.PasswordHash)
	assert.Equal(t, "Wang", profile.Nickname)
	assert.Contains(t, repo.users, account.ID)
}

func TestRegisterNicknameDefaultsToUsername(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	_, profile, err := svc.Register(context.Background(), inbound.RegisterCommand{
		Username: "chef_wang",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "chef_wang", profile.Nickname)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newTestService(newFakeUserRepo())
	register(t, svc, "chef_wang")

	_, _, err := svc.Register(context.Background(), inbound.RegisterCommand{
		Username: "chef_wang",
		Password: "another123",
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeUsernameAlreadyExists))
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	_, _, err := svc.Register(context.Background(), inbound.RegisterCommand{Username: "ab", Password: "secret123"})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidationFailed))

	_, _, err = svc.Register(context.Background(), inbound.RegisterCommand{Username: "chef_wang", Password: "short"})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidationFailed))
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	account := register(t, svc, "chef_wang")

	tokens, loggedIn, profile, err := svc.Login(context.Background(), "chef_wang", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, account.ID, loggedIn.ID)
	assert.Equal(t, "chef_wang", profile.Nickname)
}

func TestLoginInvalidCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	account := register(t, svc, "chef_wang")

	_, _, _, err := svc.Login(context.Background(), "chef_wang", "wrong-password")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidCredentials))

	_, _, _, err = svc.Login(context.Background(), "nobody", "secret123")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidCredentials))

	// deactivated accounts fail the same way as bad passwords
	repo.users[account.ID].IsActive = false
	_, _, _, err = svc.Login(context.Background(), "chef_wang", "secret123")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidCredentials))
}

func TestRefresh(t *testing.T) {
	svc := newTestService(newFakeUserRepo())
	register(t, svc, "chef_wang")

	tokens, _, _, err := svc.Login(context.Background(), "chef_wang", "secret123")
	require.NoError(t, err)

	renewed, err := svc.Refresh(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renewed.AccessToken)

	_, err = svc.Refresh(context.Background(), "garbage")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeUnauthorized))
}

func TestGetProfileLazyCreate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	account := register(t, svc, "chef_wang")

	// accounts that predate the profile table get a default on first read
	delete(repo.profiles, account.ID)

	profile, err := svc.GetProfile(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, "chef_wang", profile.Nickname)
	assert.Contains(t, repo.profiles, account.ID)
}

func TestUpdateProfile(t *testing.T) {
	svc := newTestService(newFakeUserRepo())
	account := register(t, svc, "chef_wang")

	nickname := "Chef Wang"
	age := 28
	goal := user.GoalLoseWeight
	profile, err := svc.UpdateProfile(context.Background(), account.ID, inbound.UpdateProfileCommand{
		Nickname:   &nickname,
		Age:        &age,
		HealthGoal: &goal,
	})
	require.NoError(t, err)
	assert.Equal(t, "Chef Wang", profile.Nickname)
	assert.Equal(t, 28, profile.Age)

	badGender := "robot"
	_, err = svc.UpdateProfile(context.Background(), account.ID, inbound.UpdateProfileCommand{Gender: &badGender})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidationFailed))
}

func TestChangePassword(t *testing.T) {
	svc := newTestService(newFakeUserRepo())
	account := register(t, svc, "chef_wang")

	err := svc.ChangePassword(context.Background(), account.ID, "wrong", "newsecret123")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeBadRequest))

	require.NoError(t, svc.ChangePassword(context.Background(), account.ID, "secret123", "newsecret123"))

	_, _, _, err = svc.Login(context.Background(), "chef_wang", "secret123")
	require.Error(t, err)
	_, _, _, err = svc.Login(context.Background(), "chef_wang", "newsecret123")
	assert.NoError(t, err)
}

func TestFollow(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	follower := register(t, svc, "chef_wang")
	followee := register(t, svc, "chef_li")

	require.NoError(t, svc.Follow(context.Background(), follower.ID, followee.ID))
	// repeat follows are idempotent
	require.NoError(t, svc.Follow(context.Background(), follower.ID, followee.ID))
	assert.Len(t, repo.follows, 1)

	following, total, err := svc.ListFollowing(context.Background(), follower.ID, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, following, 1)
	assert.Equal(t, "chef_li", following[0].Username)

	require.NoError(t, svc.Unfollow(context.Background(), follower.ID, followee.ID))
	assert.Empty(t, repo.follows)
}

func TestFollowSelf(t *testing.T) {
	svc := newTestService(newFakeUserRepo())
	account := register(t, svc, "chef_wang")

	err := svc.Follow(context.Background(), account.ID, account.ID)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeBadRequest))
}

func TestFollowUnknownUser(t *testing.T) {
	svc := newTestService(newFakeUserRepo())
	account := register(t, svc, "chef_wang")

	err := svc.Follow(context.Background(), account.ID, uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeUserNotFound))
}
