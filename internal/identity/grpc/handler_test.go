package grpc

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/blogmesh/internal/common"
	"github.com/dmitrijs2005/blogmesh/internal/identity/models"
	"github.com/dmitrijs2005/blogmesh/internal/identity/services"
	"github.com/dmitrijs2005/blogmesh/internal/logging"
	pb "github.com/dmitrijs2005/blogmesh/internal/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type fakeUsers struct {
	regResp *models.User
	regErr  error

	loginResp *services.LoginResult
	loginErr  error

	validateID  string
	validateErr error
}

func (f *fakeUsers) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	return f.regResp, f.regErr
}

func (f *fakeUsers) Login(ctx context.Context, email, password string) (*services.LoginResult, error) {
	return f.loginResp, f.loginErr
}

func (f *fakeUsers) ValidateToken(ctx context.Context, token string) (string, error) {
	return f.validateID, f.validateErr
}

func newServer(f *fakeUsers) *IdentityServer {
	return NewIdentityServer(logging.Nop(), f)
}

func TestRegister_Envelopes(t *testing.T) {
	tests := []struct {
		name     string
		users    *fakeUsers
		wantOK   bool
		wantMsg  string
		wantCode string
		wantID   string
	}{
		{"success", &fakeUsers{regResp: &models.User{ID: "u-1", UserName: "alice"}}, true, "User registered successfully", "", "u-1"},
		{"exists", &fakeUsers{regErr: common.ErrorAlreadyExists}, false, "User with this email or username already exists", common.CodeAlreadyExists, ""},
		{"no password", &fakeUsers{regErr: services.ErrPasswordRequired}, false, "Password is required", common.CodeInvalidArgument, ""},
		{"no identity", &fakeUsers{regErr: services.ErrIdentityRequired}, false, "Username and email are required", common.CodeInvalidArgument, ""},
		{"internal", &fakeUsers{regErr: errors.New("pq: connection refused")}, false, "Registration failed", common.CodeInternal, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := newServer(tt.users).Register(context.Background(), &pb.RegisterRequest{Username: "alice", Email: "a@x.com", Password: "pw"})
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, resp.Success)
			assert.Equal(t, tt.wantMsg, resp.Message)
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.Equal(t, tt.wantID, resp.UserID)
			assert.Empty(t, resp.AccessToken)
		})
	}
}

func TestLogin_Envelopes(t *testing.T) {
	resp, err := newServer(&fakeUsers{loginResp: &services.LoginResult{AccessToken: "tok", UserID: "u-1"}}).
		Login(context.Background(), &pb.LoginRequest{Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, &pb.LoginResponse{Success: true, Message: "Login successful", AccessToken: "tok", UserID: "u-1"}, resp)

	resp, err = newServer(&fakeUsers{loginErr: common.ErrorUnauthorized}).
		Login(context.Background(), &pb.LoginRequest{Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, &pb.LoginResponse{Success: false, Message: "Invalid credentials", Code: common.CodeUnauthenticated}, resp)

	resp, err = newServer(&fakeUsers{loginErr: common.ErrorInternal}).
		Login(context.Background(), &pb.LoginRequest{Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Login failed", resp.Message)
	assert.Empty(t, resp.AccessToken)
}

func TestValidateToken_NeverFaults(t *testing.T) {
	resp, err := newServer(&fakeUsers{validateID: "u-1"}).
		ValidateToken(context.Background(), &pb.ValidateTokenRequest{AccessToken: "tok"})
	require.NoError(t, err)
	assert.Equal(t, &pb.ValidateTokenResponse{UserID: "u-1", IsValid: true}, resp)

	for _, e := range []error{common.ErrInvalidToken, common.ErrTokenExpired, errors.New("weird")} {
		resp, err := newServer(&fakeUsers{validateID: "ignored", validateErr: e}).
			ValidateToken(context.Background(), &pb.ValidateTokenRequest{AccessToken: "tok"})
		require.NoError(t, err)
		assert.Equal(t, &pb.ValidateTokenResponse{IsValid: false}, resp)
	}
}
