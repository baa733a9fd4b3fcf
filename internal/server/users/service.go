package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/ryabovm/passport/internal/common"
	"github.com/ryabovm/passport/internal/server/auth"
)

var validate = validator.New()

// AuthResult is what a successful registration or login produces: a signed
// bearer token and the user it identifies.
type AuthResult struct {
	Token string
	User  *User
}

// Service implements the account operations. Validation happens before any
// store access; hashing and token signing happen outside the store calls so
// a pooled connection is never held across CPU-bound work.
type Service struct {
	repo   Repository
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
}

func NewService(repo Repository, hasher *auth.PasswordHasher, tokens *auth.TokenService) *Service {
	return &Service{repo: repo, hasher: hasher, tokens: tokens}
}

// Register creates an account and logs it in. The duplicate pre-check is an
// optimization only; the store's unique constraint remains the authority
// and Create may still return common.ErrorAlreadyExists on a lost race.
func (s *Service) Register(ctx context.Context, username, email, password, fullName string) (*AuthResult, error) {

	if username == "" || email == "" || password == "" {
		return nil, common.ErrorRegistrationFields
	}
	if err := validate.Var(email, "email"); err != nil {
		return nil, common.ErrorInvalidEmail
	}
	if len(password) < 6 {
		return nil, common.ErrorPasswordTooShort
	}

	_, err := s.repo.FindByEmailOrUsername(ctx, email, username)
	if err == nil {
		return nil, common.ErrorAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking existing user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Username)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password produce the same error value.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {

	if email == "" || password == "" {
		return nil, common.ErrorLoginFields
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("error verifying password: %w", err)
	}
	if !ok {
		return nil, common.ErrorInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Username)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

// Profile returns the user for an already-authenticated identity. A valid
// token for a since-deleted user yields common.ErrorNotFound.
func (s *Service) Profile(ctx context.Context, id int64) (*User, error) {

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	return user, nil
}
