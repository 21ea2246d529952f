package services

import (
	"context"
	"errors"
	"strings"

	"store-service/internal/auth"
	"store-service/internal/domain"
	"store-service/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// AccountService handles registration and login. Token signing lives behind
// auth.IssuerInterface; this service only asks for a pair and forwards it.
type AccountService struct {
	store  repository.Store
	issuer auth.IssuerInterface
}

func NewAccountService(store repository.Store, issuer auth.IssuerInterface) *AccountService {
	return &AccountService{store: store, issuer: issuer}
}

func (s *AccountService) Register(ctx context.Context, username, email, password, password2 string) (*domain.Account, auth.TokenPair, error) {
	fe := FieldErrors{}
	if strings.TrimSpace(username) == "" {
		fe["username"] = "This field is required"
	}
	if strings.TrimSpace(email) == "" {
		fe["email"] = "This field is required"
	} else if !strings.Contains(email, "@") {
		fe["email"] = "Enter a valid email address"
	}
	if password == "" {
		fe["password"] = "This field is required"
	} else if password != password2 {
		fe["password"] = "Password does not match"
	}
	if len(fe) > 0 {
		return nil, auth.TokenPair{}, fe
	}

	existing, err := s.store.Accounts().FindByUsername(ctx, username)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}
	if existing != nil {
		return nil, auth.TokenPair{}, FieldErrors{"username": "A user with that username already exists"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}

	account := &domain.Account{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.store.Accounts().Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, auth.TokenPair{}, FieldErrors{"username": "A user with that username already exists"}
		}
		return nil, auth.TokenPair{}, err
	}

	pair, err := s.issuer.IssuePair(account)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}
	return account, pair, nil
}

// Login verifies credentials. Unknown username and wrong password both come
// back as ErrInvalidCredentials so callers cannot probe which usernames exist.
func (s *AccountService) Login(ctx context.Context, username, password string) (*domain.Account, auth.TokenPair, error) {
	if username == "" || password == "" {
		return nil, auth.TokenPair{}, ErrMissingCredentials
	}

	account, err := s.store.Accounts().FindByUsername(ctx, username)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}
	if account == nil {
		return nil, auth.TokenPair{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, auth.TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.issuer.IssuePair(account)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}
	return account, pair, nil
}
