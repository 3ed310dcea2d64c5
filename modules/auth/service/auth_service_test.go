package service

import (
	"context"
	"os"
	"testing"
	"time"

	"eventhub/core/config"
	"eventhub/core/constants"
	"eventhub/core/errors"
	"eventhub/core/utils"
	"eventhub/modules/auth/dto"
	"eventhub/modules/auth/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret")
	if _, err := config.Load(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakeAuthRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeAuthRepo) CreateUser(_ context.Context, user *entity.User) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == user.Email {
			return nil, &pq.Error{Code: "23505"}
		}
		if u.Username != nil && user.Username != nil && *u.Username == *user.Username {
			return nil, &pq.Error{Code: "23505"}
		}
	}
	created := *user
	created.ID = uuid.New()
	f.users[created.ID] = &created
	copied := created
	return &copied, nil
}

func (f *fakeAuthRepo) GetUserByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeAuthRepo) GetUserByIdentifier(_ context.Context, identifier string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == identifier || (u.Username != nil && *u.Username == identifier) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeAuthRepo) GetUserByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username != nil && *u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeAuthRepo) UpdateProfile(_ context.Context, id uuid.UUID, username *string, fullName *string) error {
	user := f.users[id]
	if username != nil {
		user.Username = username
	}
	if fullName != nil {
		user.FullName = fullName
	}
	return nil
}

func (f *fakeAuthRepo) UpdateAvatarURL(_ context.Context, id uuid.UUID, avatarURL string) error {
	f.users[id].AvatarURL = &avatarURL
	return nil
}

func (f *fakeAuthRepo) SetBanned(_ context.Context, id uuid.UUID, banned bool) error {
	f.users[id].IsBanned = banned
	return nil
}

func (f *fakeAuthRepo) CountAdmins(_ context.Context) (int, error) {
	count := 0
	for _, u := range f.users {
		if u.IsAdmin {
			count++
		}
	}
	return count, nil
}

func (f *fakeAuthRepo) PromoteToAdmin(_ context.Context, id uuid.UUID) error {
	f.users[id].IsAdmin = true
	return nil
}

type fakeCache struct {
	blacklist map[string]bool
	attempts  map[string]int
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		blacklist: make(map[string]bool),
		attempts:  make(map[string]int),
	}
}

func (f *fakeCache) AddToTokenBlacklist(_ context.Context, token string) error {
	f.blacklist[token] = true
	return nil
}

func (f *fakeCache) IsTokenBlacklisted(_ context.Context, token string) (bool, error) {
	return f.blacklist[token], nil
}

func (f *fakeCache) IncrementLoginAttempt(_ context.Context, key string) error {
	f.attempts[key]++
	return nil
}

func (f *fakeCache) IsLoginBlocked(_ context.Context, key string) (bool, error) {
	return f.attempts[key] >= constants.MaxLoginAttempts, nil
}

func (f *fakeCache) Expire(_ context.Context, _ string, _ time.Duration) error { return nil }

func (f *fakeCache) Del(_ context.Context, key string) error {
	delete(f.attempts, key)
	return nil
}

func newTestService(repo *fakeAuthRepo, c *fakeCache) *AuthService {
	return NewAuthService(repo, c, nil)
}

func seedUser(repo *fakeAuthRepo, email, password string) *entity.User {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		panic(err)
	}
	user := &entity.User{
		ID:       uuid.New(),
		Email:    email,
		Password: hashed,
	}
	repo.users[user.ID] = user
	return user
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := newTestService(repo, newFakeCache())

	pair, appErr := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	if appErr != nil {
		t.Fatalf("Register() error = %v", appErr)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("Register() returned empty token pair")
	}

	loginPair, appErr := svc.Login(context.Background(), &dto.LoginRequest{
		Identifier: "alice@example.com",
		Password:   "password123",
	})
	if appErr != nil {
		t.Fatalf("Login() error = %v", appErr)
	}
	if loginPair.AccessToken == "" {
		t.Fatal("Login() returned empty access token")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := newTestService(repo, newFakeCache())
	req := &dto.RegisterRequest{Email: "alice@example.com", Password: "password123"}

	if _, appErr := svc.Register(context.Background(), req); appErr != nil {
		t.Fatalf("first Register() error = %v", appErr)
	}

	_, appErr := svc.Register(context.Background(), req)
	if appErr == nil || appErr.Code != errors.ErrAlreadyExists {
		t.Fatalf("second Register() error = %v, want %s", appErr, errors.ErrAlreadyExists)
	}
	if len(repo.users) != 1 {
		t.Errorf("user count = %d, want 1", len(repo.users))
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeAuthRepo()
	c := newFakeCache()
	svc := newTestService(repo, c)
	seedUser(repo, "alice@example.com", "password123")

	_, appErr := svc.Login(context.Background(), &dto.LoginRequest{
		Identifier: "alice@example.com",
		Password:   "wrong",
	})
	if appErr == nil || appErr.Code != errors.ErrUnauthorized {
		t.Fatalf("Login() error = %v, want %s", appErr, errors.ErrUnauthorized)
	}
	if c.attempts[constants.RedisKeyLoginAttempt+"alice@example.com"] != 1 {
		t.Error("failed attempt was not recorded")
	}
}

func TestLoginBannedUserRefused(t *testing.T) {
	repo := newFakeAuthRepo()
	c := newFakeCache()
	svc := newTestService(repo, c)
	user := seedUser(repo, "alice@example.com", "password123")
	user.IsBanned = true

	// Correct credentials must not matter for a suspended account.
	_, appErr := svc.Login(context.Background(), &dto.LoginRequest{
		Identifier: "alice@example.com",
		Password:   "password123",
	})
	if appErr == nil || appErr.Code != errors.ErrUnauthorized {
		t.Fatalf("Login() error = %v, want %s", appErr, errors.ErrUnauthorized)
	}

	// The refusal is not a failed guess; no lockout state may accrue.
	if got := c.attempts[constants.RedisKeyLoginAttempt+"alice@example.com"]; got != 0 {
		t.Errorf("failed-login attempts = %d, want 0", got)
	}
}

func TestPublicProfileByUsernameOnly(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := newTestService(repo, newFakeCache())
	user := seedUser(repo, "alice@example.com", "password123")
	username := "alice"
	user.Username = &username

	resp, appErr := svc.GetPublicProfile(context.Background(), "alice")
	if appErr != nil {
		t.Fatalf("GetPublicProfile(username) error = %v", appErr)
	}
	if resp.Username != "alice" {
		t.Errorf("username = %q, want %q", resp.Username, "alice")
	}

	// The email address is not a public lookup key.
	_, appErr = svc.GetPublicProfile(context.Background(), "alice@example.com")
	if appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("GetPublicProfile(email) error = %v, want %s", appErr, errors.ErrNotFound)
	}
}

func TestLoginLockoutAfterRepeatedFailures(t *testing.T) {
	repo := newFakeAuthRepo()
	c := newFakeCache()
	svc := newTestService(repo, c)
	seedUser(repo, "alice@example.com", "password123")

	for i := 0; i < constants.MaxLoginAttempts; i++ {
		svc.Login(context.Background(), &dto.LoginRequest{
			Identifier: "alice@example.com",
			Password:   "wrong",
		})
	}

	// Locked out now, even with the right password.
	_, appErr := svc.Login(context.Background(), &dto.LoginRequest{
		Identifier: "alice@example.com",
		Password:   "password123",
	})
	if appErr == nil || appErr.Code != errors.ErrUnauthorized {
		t.Fatalf("Login() error = %v, want %s", appErr, errors.ErrUnauthorized)
	}
}

func TestRefreshTokenRotation(t *testing.T) {
	repo := newFakeAuthRepo()
	c := newFakeCache()
	svc := newTestService(repo, c)
	user := seedUser(repo, "alice@example.com", "password123")

	refresh, err := utils.GenerateToken(user.ID, user.Email, nil, constants.ScopeTokenRefresh)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	pair, appErr := svc.RefreshToken(context.Background(), refresh)
	if appErr != nil {
		t.Fatalf("RefreshToken() error = %v", appErr)
	}
	if pair.AccessToken == "" {
		t.Fatal("RefreshToken() returned empty access token")
	}
	if !c.blacklist[refresh] {
		t.Error("presented refresh token was not revoked")
	}

	// The revoked token cannot be replayed.
	_, appErr = svc.RefreshToken(context.Background(), refresh)
	if appErr == nil || appErr.Code != errors.ErrUnauthorized {
		t.Fatalf("replayed RefreshToken() error = %v, want %s", appErr, errors.ErrUnauthorized)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := newTestService(repo, newFakeCache())
	user := seedUser(repo, "alice@example.com", "password123")

	access, err := utils.GenerateToken(user.ID, user.Email, nil, constants.ScopeTokenAccess)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	_, appErr := svc.RefreshToken(context.Background(), access)
	if appErr == nil || appErr.Code != errors.ErrInvalidTokenFormat {
		t.Fatalf("RefreshToken() error = %v, want %s", appErr, errors.ErrInvalidTokenFormat)
	}
}

func TestBanAdminRefused(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := newTestService(repo, newFakeCache())
	admin := seedUser(repo, "admin@example.com", "password123")
	admin.IsAdmin = true

	appErr := svc.BanUser(context.Background(), admin.ID)
	if appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Fatalf("BanUser() error = %v, want %s", appErr, errors.ErrForbidden)
	}
	if admin.IsBanned {
		t.Error("admin was banned despite refusal")
	}
}

func TestBanAndUnban(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := newTestService(repo, newFakeCache())
	user := seedUser(repo, "alice@example.com", "password123")

	if appErr := svc.BanUser(context.Background(), user.ID); appErr != nil {
		t.Fatalf("BanUser() error = %v", appErr)
	}
	if !repo.users[user.ID].IsBanned {
		t.Fatal("user is not banned")
	}

	if appErr := svc.UnbanUser(context.Background(), user.ID); appErr != nil {
		t.Fatalf("UnbanUser() error = %v", appErr)
	}
	if repo.users[user.ID].IsBanned {
		t.Fatal("user is still banned")
	}
}

func TestEnsureAdminAccountIdempotent(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := newTestService(repo, newFakeCache())

	for i := 0; i < 2; i++ {
		if err := svc.EnsureAdminAccount(context.Background()); err != nil {
			t.Fatalf("EnsureAdminAccount() #%d error = %v", i+1, err)
		}
	}

	admins := 0
	for _, u := range repo.users {
		if u.IsAdmin {
			admins++
		}
	}
	if len(repo.users) != 1 || admins != 1 {
		t.Errorf("users = %d, admins = %d, want 1 and 1", len(repo.users), admins)
	}
}

func TestEnsureAdminAccountPromotesExisting(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := newTestService(repo, newFakeCache())
	existing := seedUser(repo, config.Get().Admin.Email, "password123")

	if err := svc.EnsureAdminAccount(context.Background()); err != nil {
		t.Fatalf("EnsureAdminAccount() error = %v", err)
	}

	if !repo.users[existing.ID].IsAdmin {
		t.Error("existing account was not promoted")
	}
	if len(repo.users) != 1 {
		t.Errorf("users = %d, want 1 (no new account)", len(repo.users))
	}
}
