package posts

import (
	"context"

	"github.com/dmitrijs2005/blogmesh/internal/content/models"
)

type Repository interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	Get(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context, limit, offset int) ([]*models.Post, error)
	// Update changes the non-nil fields and returns the stored post.
	Update(ctx context.Context, id string, title, content *string) (*models.Post, error)
	Delete(ctx context.Context, id string) error
}
