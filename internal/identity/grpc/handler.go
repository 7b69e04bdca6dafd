package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/blogmesh/internal/common"
	"github.com/dmitrijs2005/blogmesh/internal/identity/services"
	pb "github.com/dmitrijs2005/blogmesh/internal/proto"
	"github.com/dmitrijs2005/blogmesh/internal/rpcx"
)

const (
	msgRegistered         = "User registered successfully"
	msgUserExists         = "User with this email or username already exists"
	msgPasswordRequired   = "Password is required"
	msgIdentityRequired   = "Username and email are required"
	msgRegistrationFailed = "Registration failed"
	msgLoginSuccessful    = "Login successful"
	msgInvalidCredentials = "Invalid credentials"
	msgLoginFailed        = "Login failed"
)

func (s *IdentityServer) Register(ctx context.Context, req *pb.RegisterRequest) (*pb.RegisterResponse, error) {
	rid := rpcx.RequestID(ctx)

	user, err := s.users.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPasswordRequired):
			return registerFailure(common.CodeInvalidArgument, msgPasswordRequired), nil
		case errors.Is(err, services.ErrIdentityRequired):
			return registerFailure(common.CodeInvalidArgument, msgIdentityRequired), nil
		case errors.Is(err, common.ErrorAlreadyExists):
			s.logger.Info(ctx, "Registration rejected, user exists", "username", req.Username, "request_id", rid)
			return registerFailure(common.CodeAlreadyExists, msgUserExists), nil
		default:
			s.logger.Error(ctx, "Registration failed", "error", err.Error(), "request_id", rid)
			return registerFailure(common.CodeInternal, msgRegistrationFailed), nil
		}
	}

	s.logger.Info(ctx, "Registered", "user_id", user.ID, "username", user.UserName, "request_id", rid)
	return &pb.RegisterResponse{Success: true, Message: msgRegistered, UserID: user.ID}, nil
}

func registerFailure(code, msg string) *pb.RegisterResponse {
	return &pb.RegisterResponse{Success: false, Message: msg, Code: code}
}

func (s *IdentityServer) Login(ctx context.Context, req *pb.LoginRequest) (*pb.LoginResponse, error) {
	res, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return &pb.LoginResponse{Success: false, Message: msgInvalidCredentials, Code: common.CodeUnauthenticated}, nil
		}
		s.logger.Error(ctx, "Login failed", "error", err.Error(), "request_id", rpcx.RequestID(ctx))
		return &pb.LoginResponse{Success: false, Message: msgLoginFailed, Code: common.CodeInternal}, nil
	}

	s.logger.Info(ctx, "Logged in", "user_id", res.UserID, "request_id", rpcx.RequestID(ctx))
	return &pb.LoginResponse{
		Success:     true,
		Message:     msgLoginSuccessful,
		AccessToken: res.AccessToken,
		UserID:      res.UserID,
	}, nil
}

// ValidateToken never fails at the RPC level; any problem is isValid=false.
func (s *IdentityServer) ValidateToken(ctx context.Context, req *pb.ValidateTokenRequest) (*pb.ValidateTokenResponse, error) {
	userID, err := s.users.ValidateToken(ctx, req.AccessToken)
	if err != nil || userID == "" {
		if err != nil {
			s.logger.Debug(ctx, "Token rejected", "reason", err.Error(), "request_id", rpcx.RequestID(ctx))
		}
		return &pb.ValidateTokenResponse{IsValid: false}, nil
	}
	return &pb.ValidateTokenResponse{UserID: userID, IsValid: true}, nil
}
