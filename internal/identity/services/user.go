// Package services contains the identity business logic: registration,
// credential checks and token validation.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/blogmesh/internal/common"
	"github.com/dmitrijs2005/blogmesh/internal/dbx"
	"github.com/dmitrijs2005/blogmesh/internal/identity/auth"
	"github.com/dmitrijs2005/blogmesh/internal/identity/config"
	"github.com/dmitrijs2005/blogmesh/internal/identity/models"
	"github.com/dmitrijs2005/blogmesh/internal/identity/repositories/repomanager"
	"github.com/google/uuid"
)

var (
	ErrPasswordRequired = fmt.Errorf("%w: password is required", common.ErrorValidation)
	ErrIdentityRequired = fmt.Errorf("%w: username and email are required", common.ErrorValidation)
)

// LoginResult is returned by a successful Login.
type LoginResult struct {
	AccessToken string
	UserID      string
	UserName    string
}

// UserService provides authentication-related operations:
// - Register: create users
// - Login: verify credentials and mint tokens
// - ValidateToken: resolve a token to its user id
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenCodec
	passwords   *auth.PasswordHasher
	newID       func() string

	// dummyHash is compared against when the email is unknown so that both
	// login failure paths cost one bcrypt comparison.
	dummyHash string
}

// NewUserService constructs a UserService using repositories and service config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) (*UserService, error) {
	passwords := auth.NewPasswordHasher(cfg.BcryptCost)

	dummy, err := passwords.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("dummy hash: %w", err)
	}

	return &UserService{
		db:          db,
		repomanager: m,
		tokens:      auth.NewTokenCodec([]byte(cfg.SecretKey), cfg.AccessTokenValidityDuration),
		passwords:   passwords,
		newID:       uuid.NewString,
		dummyHash:   dummy,
	}, nil
}

// Register creates a user. The uniqueness pre-check and the insert share one
// transaction; a unique violation at insert time is reported the same way
// as a pre-check hit.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if password == "" {
		return nil, ErrPasswordRequired
	}
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" {
		return nil, ErrIdentityRequired
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{ID: s.newID(), UserName: username, Email: email, PasswordHash: hash}

	var created *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.FindByEmailOrUsername(ctx, email, username)
		if err == nil {
			return common.ErrorAlreadyExists
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("error searching user: %w", err)
		}

		created, err = repo.Create(ctx, user)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return created, nil
}

// Login checks the credentials and issues an access token. Unknown email and
// wrong password both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_, _ = s.passwords.Compare(s.dummyHash, password)
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	ok, err := s.passwords.Compare(user.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	token, err := s.tokens.Issue(user.ID, user.UserName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return &LoginResult{AccessToken: token, UserID: user.ID, UserName: user.UserName}, nil
}

// ValidateToken returns the user id carried by a valid token.
func (s *UserService) ValidateToken(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", common.ErrInvalidToken
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
