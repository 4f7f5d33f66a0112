package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"weighttracker/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	getByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	getByIDFn       func(ctx context.Context, id int64) (*domain.User, error)
	createFn        func(ctx context.Context, username, displayName, passwordHash string) (*domain.User, error)
	countFn         func(ctx context.Context) (int, error)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, username, displayName, passwordHash string) (*domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, username, displayName, passwordHash)
	}
	return &domain.User{ID: 1, Username: username, DisplayName: displayName, PasswordHash: passwordHash}, nil
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

type mockSessionRepo struct {
	createFn     func(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	getByTokenFn func(ctx context.Context, token string) (*domain.Session, error)
	deleteFn     func(ctx context.Context, token string) error
}

func (m *mockSessionRepo) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	if m.createFn != nil {
		return m.createFn(ctx, userID, token, expiresAt)
	}
	return nil
}

func (m *mockSessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	if m.getByTokenFn != nil {
		return m.getByTokenFn(ctx, token)
	}
	return nil, nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, token string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, token)
	}
	return nil
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context) error {
	return nil
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return string(hash)
}

func TestLogin_Success(t *testing.T) {
	users := &mockUserRepo{
		getByUsernameFn: func(_ context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: 1, Username: username, PasswordHash: hashOf(t, "secret")}, nil
		},
	}
	var created bool
	sessions := &mockSessionRepo{
		createFn: func(_ context.Context, userID int64, token string, _ time.Time) error {
			created = true
			if userID != 1 || token == "" {
				t.Errorf("unexpected session: user %d, token %q", userID, token)
			}
			return nil
		},
	}

	svc := NewAuthService(users, sessions)
	token, err := svc.Login(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" || !created {
		t.Fatal("expected a session to be created")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	users := &mockUserRepo{
		getByUsernameFn: func(_ context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: 1, Username: username, PasswordHash: hashOf(t, "secret")}, nil
		},
	}
	svc := NewAuthService(users, &mockSessionRepo{})
	if _, err := svc.Login(context.Background(), "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, &mockSessionRepo{})
	if _, err := svc.Login(context.Background(), "nobody", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestValidateSession_Expired(t *testing.T) {
	var deleted bool
	sessions := &mockSessionRepo{
		getByTokenFn: func(_ context.Context, token string) (*domain.Session, error) {
			return &domain.Session{Token: token, UserID: 1, ExpiresAt: time.Now().Add(-time.Hour)}, nil
		},
		deleteFn: func(_ context.Context, _ string) error {
			deleted = true
			return nil
		},
	}
	svc := NewAuthService(&mockUserRepo{}, sessions)
	if _, err := svc.ValidateSession(context.Background(), "tok"); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if !deleted {
		t.Error("expired session was not deleted")
	}
}

func TestValidateSession_Unknown(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, &mockSessionRepo{})
	if _, err := svc.ValidateSession(context.Background(), "tok"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestValidateSession_Success(t *testing.T) {
	sessions := &mockSessionRepo{
		getByTokenFn: func(_ context.Context, token string) (*domain.Session, error) {
			return &domain.Session{Token: token, UserID: 7, ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
	}
	users := &mockUserRepo{
		getByIDFn: func(_ context.Context, id int64) (*domain.User, error) {
			return &domain.User{ID: id, Username: "alice", DisplayName: "Alice"}, nil
		},
	}
	svc := NewAuthService(users, sessions)
	user, err := svc.ValidateSession(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 7 || user.DisplayName != "Alice" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestCreateInitialUser_AlreadyExists(t *testing.T) {
	users := &mockUserRepo{
		countFn: func(_ context.Context) (int, error) { return 1, nil },
	}
	svc := NewAuthService(users, &mockSessionRepo{})
	if err := svc.CreateInitialUser(context.Background(), "alice", "secret"); err == nil {
		t.Fatal("expected error when users already exist")
	}
}

func TestLoginWithUser_AutoProvisions(t *testing.T) {
	var createdName string
	users := &mockUserRepo{
		createFn: func(_ context.Context, username, displayName, passwordHash string) (*domain.User, error) {
			createdName = displayName
			if passwordHash != "" {
				t.Errorf("SSO user should have empty password hash, got %q", passwordHash)
			}
			return &domain.User{ID: 2, Username: username, DisplayName: displayName}, nil
		},
	}
	svc := NewAuthService(users, &mockSessionRepo{})
	token, err := svc.LoginWithUser(context.Background(), "bob@example.com", "Bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}
	if createdName != "Bob" {
		t.Errorf("display name = %q; want Bob", createdName)
	}
}

func TestLogout_DeletesSession(t *testing.T) {
	var deleted string
	sessions := &mockSessionRepo{
		deleteFn: func(_ context.Context, token string) error {
			deleted = token
			return nil
		},
	}
	svc := NewAuthService(&mockUserRepo{}, sessions)
	if err := svc.Logout(context.Background(), "tok"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != "tok" {
		t.Errorf("deleted token = %q; want tok", deleted)
	}
}
