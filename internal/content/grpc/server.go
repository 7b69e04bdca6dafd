// Package grpc exposes the content service over RPC.
package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/blogmesh/internal/content/models"
	"github.com/dmitrijs2005/blogmesh/internal/logging"
	pb "github.com/dmitrijs2005/blogmesh/internal/proto"
)

// TimestampLayout renders post timestamps as UTC ISO-8601 with milliseconds.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

type PostService interface {
	CreatePost(ctx context.Context, userID, title, content string) (*models.Post, error)
	GetPost(ctx context.Context, id string) (*models.Post, error)
	GetPosts(ctx context.Context, limit, offset *int32) ([]*models.Post, error)
	UpdatePost(ctx context.Context, id string, title, content *string) (*models.Post, error)
	DeletePost(ctx context.Context, id string) error
}

type ContentServer struct {
	pb.UnimplementedContentServiceServer
	posts  PostService
	logger logging.Logger
}

func NewContentServer(l logging.Logger, ps PostService) *ContentServer {
	return &ContentServer{
		posts:  ps,
		logger: l.With("module", "content_handler"),
	}
}

func toProto(p *models.Post) *pb.Post {
	return &pb.Post{
		ID:        p.ID,
		UserID:    p.UserID,
		Title:     p.Title,
		Content:   p.Content,
		CreatedAt: formatTime(p.CreatedAt),
		UpdatedAt: formatTime(p.UpdatedAt),
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
