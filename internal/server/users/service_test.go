package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ryabovm/passport/internal/common"
	"github.com/ryabovm/passport/internal/server/auth"
)

// --- helpers ---

type fakeRepo struct {
	createOut   *User
	createErr   error
	createCalls int

	byEmailOut *User
	byEmailErr error

	byIDOut *User
	byIDErr error

	findOut   *User
	findErr   error
	findCalls int
}

func (f *fakeRepo) Create(ctx context.Context, u *User) (*User, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = 1
	u.CreatedAt = time.Now()
	return u, nil
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmailOut, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}

func (f *fakeRepo) FindByEmailOrUsername(ctx context.Context, email, username string) (*User, error) {
	f.findCalls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func newTestService(repo Repository) (*Service, *auth.TokenService) {
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	tokens := auth.NewTokenService([]byte("test-secret"), time.Hour)
	return NewService(repo, hasher, tokens), tokens
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// --- Register ---

func TestRegister_Success(t *testing.T) {
	repo := &fakeRepo{findErr: common.ErrorNotFound}
	s, tokens := newTestService(repo)

	res, err := s.Register(context.Background(), "alice", "alice@example.com", "secret1", "Alice A.")
	require.NoError(t, err)
	require.NotNil(t, res.User)
	assert.Equal(t, int64(1), res.User.ID)
	assert.NotEqual(t, "secret1", res.User.PasswordHash)

	claims, err := tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "alice", claims.Username)
}

func TestRegister_MissingFields(t *testing.T) {
	repo := &fakeRepo{}
	s, _ := newTestService(repo)

	_, err := s.Register(context.Background(), "", "alice@example.com", "secret1", "")
	if !errors.Is(err, common.ErrorRegistrationFields) {
		t.Fatalf("expected ErrorRegistrationFields, got %v", err)
	}
	if repo.findCalls != 0 || repo.createCalls != 0 {
		t.Fatalf("store must not be touched on validation failure")
	}
}

func TestRegister_InvalidEmail(t *testing.T) {
	repo := &fakeRepo{}
	s, _ := newTestService(repo)

	_, err := s.Register(context.Background(), "alice", "not-an-email", "secret1", "")
	if !errors.Is(err, common.ErrorInvalidEmail) {
		t.Fatalf("expected ErrorInvalidEmail, got %v", err)
	}
}

func TestRegister_ShortPassword_NoStoreInteraction(t *testing.T) {
	repo := &fakeRepo{}
	s, _ := newTestService(repo)

	_, err := s.Register(context.Background(), "alice", "alice@example.com", "12345", "")
	if !errors.Is(err, common.ErrorPasswordTooShort) {
		t.Fatalf("expected ErrorPasswordTooShort, got %v", err)
	}
	if repo.findCalls != 0 || repo.createCalls != 0 {
		t.Fatalf("store must not be touched for a short password")
	}
}

func TestRegister_DuplicateFoundByPrecheck(t *testing.T) {
	repo := &fakeRepo{findOut: &User{ID: 7, Email: "alice@example.com"}}
	s, _ := newTestService(repo)

	_, err := s.Register(context.Background(), "alice", "alice@example.com", "secret1", "")
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("expected ErrorAlreadyExists, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Fatalf("no insert after a duplicate pre-check hit")
	}
}

func TestRegister_DuplicateRaceSurfacedByConstraint(t *testing.T) {
	// Pre-check sees nothing, but the insert loses a race and the unique
	// constraint fires.
	repo := &fakeRepo{findErr: common.ErrorNotFound, createErr: common.ErrorAlreadyExists}
	s, _ := newTestService(repo)

	_, err := s.Register(context.Background(), "alice", "alice@example.com", "secret1", "")
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("expected ErrorAlreadyExists from constraint, got %v", err)
	}
}

func TestRegister_StoreError(t *testing.T) {
	repo := &fakeRepo{findErr: errBoom{}}
	s, _ := newTestService(repo)

	_, err := s.Register(context.Background(), "alice", "alice@example.com", "secret1", "")
	require.Error(t, err)
	assert.False(t, errors.Is(err, common.ErrorAlreadyExists))
}

// --- Login ---

func TestLogin_Success(t *testing.T) {
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)

	repo := &fakeRepo{byEmailOut: &User{ID: 5, Username: "alice", Email: "alice@example.com", PasswordHash: hash}}
	s, tokens := newTestService(repo)

	res, err := s.Login(context.Background(), "alice@example.com", "secret1")
	require.NoError(t, err)

	claims, err := tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(5), claims.UserID)
}

func TestLogin_MissingFields(t *testing.T) {
	s, _ := newTestService(&fakeRepo{})

	_, err := s.Login(context.Background(), "alice@example.com", "")
	if !errors.Is(err, common.ErrorLoginFields) {
		t.Fatalf("expected ErrorLoginFields, got %v", err)
	}
}

func TestLogin_UnknownEmailAndWrongPassword_SameError(t *testing.T) {
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)

	unknown := &fakeRepo{byEmailErr: common.ErrorNotFound}
	s1, _ := newTestService(unknown)
	_, err1 := s1.Login(context.Background(), "nobody@example.com", "secret1")

	wrongPass := &fakeRepo{byEmailOut: &User{ID: 5, Email: "alice@example.com", PasswordHash: hash}}
	s2, _ := newTestService(wrongPass)
	_, err2 := s2.Login(context.Background(), "alice@example.com", "wrong")

	if !errors.Is(err1, common.ErrorInvalidCredentials) || !errors.Is(err2, common.ErrorInvalidCredentials) {
		t.Fatalf("both failures must be ErrorInvalidCredentials, got %v and %v", err1, err2)
	}
	if err1.Error() != err2.Error() {
		t.Fatalf("messages must not reveal which check failed: %q vs %q", err1, err2)
	}
}

// --- Profile ---

func TestProfile_Success(t *testing.T) {
	want := &User{ID: 9, Username: "bob", Email: "bob@example.com", CreatedAt: time.Now()}
	s, _ := newTestService(&fakeRepo{byIDOut: want})

	got, err := s.Profile(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestProfile_DeletedUser(t *testing.T) {
	s, _ := newTestService(&fakeRepo{byIDErr: common.ErrorNotFound})

	_, err := s.Profile(context.Background(), 9)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}
