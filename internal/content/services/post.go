// Package services implements post management for the content service.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/blogmesh/internal/common"
	"github.com/dmitrijs2005/blogmesh/internal/content/models"
	"github.com/dmitrijs2005/blogmesh/internal/content/repositories/repomanager"
	"github.com/google/uuid"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

var (
	ErrUserRequired    = fmt.Errorf("%w: user id is required", common.ErrorValidation)
	ErrInvalidUser     = fmt.Errorf("%w: user id is not a valid id", common.ErrorValidation)
	ErrContentRequired = fmt.Errorf("%w: title and content are required", common.ErrorValidation)
)

type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	newID       func() string
}

func NewPostService(db *sql.DB, m repomanager.RepositoryManager) *PostService {
	return &PostService{db: db, repomanager: m, newID: uuid.NewString}
}

func (s *PostService) CreatePost(ctx context.Context, userID, title, content string) (*models.Post, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	if _, err := uuid.Parse(userID); err != nil {
		return nil, ErrInvalidUser
	}
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}

	post := &models.Post{ID: s.newID(), UserID: userID, Title: title, Content: content}
	created, err := s.repomanager.Posts(s.db).Create(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}
	return created, nil
}

// GetPost returns common.ErrorNotFound both for unknown ids and for ids that
// are not well formed.
func (s *PostService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	if !validID(id) {
		return nil, common.ErrorNotFound
	}
	return s.repomanager.Posts(s.db).Get(ctx, id)
}

// GetPosts pages through posts newest first. Non-positive or missing values
// fall back to the defaults; limit is capped at MaxLimit.
func (s *PostService) GetPosts(ctx context.Context, limit, offset *int32) ([]*models.Post, error) {
	l, o := DefaultLimit, 0
	if limit != nil && *limit > 0 {
		l = min(int(*limit), MaxLimit)
	}
	if offset != nil && *offset > 0 {
		o = int(*offset)
	}
	return s.repomanager.Posts(s.db).List(ctx, l, o)
}

// UpdatePost applies the supplied fields only. With no fields the current
// post is returned unchanged.
func (s *PostService) UpdatePost(ctx context.Context, id string, title, content *string) (*models.Post, error) {
	if !validID(id) {
		return nil, common.ErrorNotFound
	}
	repo := s.repomanager.Posts(s.db)
	if title == nil && content == nil {
		return repo.Get(ctx, id)
	}
	return repo.Update(ctx, id, title, content)
}

func (s *PostService) DeletePost(ctx context.Context, id string) error {
	if !validID(id) {
		return common.ErrorNotFound
	}
	return s.repomanager.Posts(s.db).Delete(ctx, id)
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
