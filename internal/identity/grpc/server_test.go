package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/blogmesh/internal/common"
	"github.com/dmitrijs2005/blogmesh/internal/identity/models"
	"github.com/dmitrijs2005/blogmesh/internal/logging"
	pb "github.com/dmitrijs2005/blogmesh/internal/proto"
	"github.com/dmitrijs2005/blogmesh/internal/rpcx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"
)

func startBufServer(t *testing.T, users UserService) pb.IdentityServiceClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := rpcx.NewServer("bufnet", pb.IdentityServiceName, logging.Nop())
	pb.RegisterIdentityServiceServer(srv.Registrar(), NewIdentityServer(logging.Nop(), users))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = srv.Serve(ctx, lis) }()

	conn, err := rpcx.Dial("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return pb.NewIdentityServiceClient(conn)
}

func TestIdentityService_OverWire(t *testing.T) {
	client := startBufServer(t, &fakeUsers{
		regResp:    &models.User{ID: "u-1", UserName: "alice"},
		validateID: "u-1",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	reg, err := client.Register(ctx, &pb.RegisterRequest{Username: "alice", Email: "alice@x.com", Password: "Secret123!"})
	require.NoError(t, err)
	assert.True(t, reg.Success)
	assert.Equal(t, "u-1", reg.UserID)

	val, err := client.ValidateToken(ctx, &pb.ValidateTokenRequest{AccessToken: "tok"})
	require.NoError(t, err)
	assert.Equal(t, &pb.ValidateTokenResponse{UserID: "u-1", IsValid: true}, val)
}

func TestIdentityService_InvalidTokenOverWire(t *testing.T) {
	client := startBufServer(t, &fakeUsers{validateErr: common.ErrInvalidToken})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	val, err := client.ValidateToken(ctx, &pb.ValidateTokenRequest{AccessToken: "bad"})
	require.NoError(t, err)
	assert.False(t, val.IsValid)
	assert.Empty(t, val.UserID)
}
