package clients

import (
	"context"

	pb "github.com/dmitrijs2005/blogmesh/internal/proto"
	"github.com/dmitrijs2005/blogmesh/internal/rpcx"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type ContentClient struct {
	conn   *grpc.ClientConn
	client pb.ContentServiceClient
	health healthpb.HealthClient
}

func NewContentClient(addr string, opts ...grpc.DialOption) (*ContentClient, error) {
	conn, err := rpcx.Dial(addr, dialOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return &ContentClient{
		conn:   conn,
		client: pb.NewContentServiceClient(conn),
		health: healthpb.NewHealthClient(conn),
	}, nil
}

func (c *ContentClient) CreatePost(ctx context.Context, userID, title, content string) (*pb.PostResponse, error) {
	resp, err := c.client.CreatePost(ctx, &pb.CreatePostRequest{UserID: userID, Title: title, Content: content})
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (c *ContentClient) GetPost(ctx context.Context, id string) (*pb.PostResponse, error) {
	resp, err := c.client.GetPost(ctx, &pb.GetPostRequest{ID: id})
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

// GetPosts leaves limit and offset off the wire when they are nil.
func (c *ContentClient) GetPosts(ctx context.Context, limit, offset *int32) (*pb.GetPostsResponse, error) {
	resp, err := c.client.GetPosts(ctx, &pb.GetPostsRequest{Limit: limit, Offset: offset})
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (c *ContentClient) UpdatePost(ctx context.Context, id string, title, content *string) (*pb.PostResponse, error) {
	resp, err := c.client.UpdatePost(ctx, &pb.UpdatePostRequest{ID: id, Title: title, Content: content})
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (c *ContentClient) DeletePost(ctx context.Context, id string) (*pb.DeletePostResponse, error) {
	resp, err := c.client.DeletePost(ctx, &pb.DeletePostRequest{ID: id})
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (c *ContentClient) Check(ctx context.Context) error {
	return check(ctx, c.health, pb.ContentServiceName)
}

func (c *ContentClient) Close() error {
	return c.conn.Close()
}
