// Package clients is the gateway's RPC client layer: one typed client per
// downstream service. Every method issues exactly one RPC and never retries;
// transport failures are mapped to ErrUnavailable, ErrUnauthorized or a
// wrapped "rpc error".
package clients

import (
	"context"

	pb "github.com/dmitrijs2005/blogmesh/internal/proto"
	"github.com/dmitrijs2005/blogmesh/internal/rpcx"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type IdentityClient struct {
	conn   *grpc.ClientConn
	client pb.IdentityServiceClient
	health healthpb.HealthClient
}

// NewIdentityClient connects lazily to the identity service at addr.
func NewIdentityClient(addr string, opts ...grpc.DialOption) (*IdentityClient, error) {
	conn, err := rpcx.Dial(addr, dialOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return &IdentityClient{
		conn:   conn,
		client: pb.NewIdentityServiceClient(conn),
		health: healthpb.NewHealthClient(conn),
	}, nil
}

func (c *IdentityClient) Register(ctx context.Context, username, email, password string) (*pb.RegisterResponse, error) {
	resp, err := c.client.Register(ctx, &pb.RegisterRequest{Username: username, Email: email, Password: password})
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (c *IdentityClient) Login(ctx context.Context, email, password string) (*pb.LoginResponse, error) {
	resp, err := c.client.Login(ctx, &pb.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (c *IdentityClient) ValidateToken(ctx context.Context, token string) (*pb.ValidateTokenResponse, error) {
	resp, err := c.client.ValidateToken(ctx, &pb.ValidateTokenRequest{AccessToken: token})
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

// Check asks the identity service's health endpoint whether it is serving.
func (c *IdentityClient) Check(ctx context.Context) error {
	return check(ctx, c.health, pb.IdentityServiceName)
}

func (c *IdentityClient) Close() error {
	return c.conn.Close()
}

func check(ctx context.Context, hc healthpb.HealthClient, service string) error {
	resp, err := hc.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return mapError(err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return ErrUnavailable
	}
	return nil
}
