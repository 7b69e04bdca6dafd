// Package grpc exposes the identity service over RPC. Handlers are the outer
// boundary of every operation: each outcome, including internal failures, is
// returned as a business envelope rather than an RPC fault.
package grpc

import (
	"context"

	"github.com/dmitrijs2005/blogmesh/internal/identity/models"
	"github.com/dmitrijs2005/blogmesh/internal/identity/services"
	"github.com/dmitrijs2005/blogmesh/internal/logging"
	pb "github.com/dmitrijs2005/blogmesh/internal/proto"
)

// UserService is the business logic the handlers delegate to.
type UserService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	ValidateToken(ctx context.Context, token string) (string, error)
}

type IdentityServer struct {
	pb.UnimplementedIdentityServiceServer
	users  UserService
	logger logging.Logger
}

func NewIdentityServer(l logging.Logger, us UserService) *IdentityServer {
	return &IdentityServer{
		users:  us,
		logger: l.With("module", "identity_handler"),
	}
}
