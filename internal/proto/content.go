package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ContentServiceName = "content.ContentService"

	ContentCreatePostMethod = "/content.ContentService/CreatePost"
	ContentGetPostMethod    = "/content.ContentService/GetPost"
	ContentGetPostsMethod   = "/content.ContentService/GetPosts"
	ContentUpdatePostMethod = "/content.ContentService/UpdatePost"
	ContentDeletePostMethod = "/content.ContentService/DeletePost"
)

// Post is the wire form of a stored post. Timestamps are UTC ISO-8601 with
// millisecond precision.
type Post struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type CreatePostRequest struct {
	UserID  string `json:"userId,omitempty"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type GetPostRequest struct {
	ID string `json:"id"`
}

type GetPostsRequest struct {
	Limit  *int32 `json:"limit,omitempty"`
	Offset *int32 `json:"offset,omitempty"`
}

type GetPostsResponse struct {
	Posts []*Post `json:"posts"`
}

// UpdatePostRequest changes only the fields that are non-nil.
type UpdatePostRequest struct {
	ID      string  `json:"id"`
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

type DeletePostRequest struct {
	ID string `json:"id"`
}

type DeletePostResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type PostResponse struct {
	Post    *Post  `json:"post,omitempty"`
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ContentServiceServer is implemented by the content service.
type ContentServiceServer interface {
	CreatePost(context.Context, *CreatePostRequest) (*PostResponse, error)
	GetPost(context.Context, *GetPostRequest) (*PostResponse, error)
	GetPosts(context.Context, *GetPostsRequest) (*GetPostsResponse, error)
	UpdatePost(context.Context, *UpdatePostRequest) (*PostResponse, error)
	DeletePost(context.Context, *DeletePostRequest) (*DeletePostResponse, error)
}

type UnimplementedContentServiceServer struct{}

func (UnimplementedContentServiceServer) CreatePost(context.Context, *CreatePostRequest) (*PostResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreatePost not implemented")
}

func (UnimplementedContentServiceServer) GetPost(context.Context, *GetPostRequest) (*PostResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetPost not implemented")
}

func (UnimplementedContentServiceServer) GetPosts(context.Context, *GetPostsRequest) (*GetPostsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetPosts not implemented")
}

func (UnimplementedContentServiceServer) UpdatePost(context.Context, *UpdatePostRequest) (*PostResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdatePost not implemented")
}

func (UnimplementedContentServiceServer) DeletePost(context.Context, *DeletePostRequest) (*DeletePostResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeletePost not implemented")
}

func RegisterContentServiceServer(s grpc.ServiceRegistrar, srv ContentServiceServer) {
	s.RegisterService(&ContentServiceDesc, srv)
}

var ContentServiceDesc = grpc.ServiceDesc{
	ServiceName: ContentServiceName,
	HandlerType: (*ContentServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreatePost",
			Handler: unaryHandler(ContentCreatePostMethod, func(srv any, ctx context.Context, req *CreatePostRequest) (any, error) {
				return srv.(ContentServiceServer).CreatePost(ctx, req)
			}),
		},
		{
			MethodName: "GetPost",
			Handler: unaryHandler(ContentGetPostMethod, func(srv any, ctx context.Context, req *GetPostRequest) (any, error) {
				return srv.(ContentServiceServer).GetPost(ctx, req)
			}),
		},
		{
			MethodName: "GetPosts",
			Handler: unaryHandler(ContentGetPostsMethod, func(srv any, ctx context.Context, req *GetPostsRequest) (any, error) {
				return srv.(ContentServiceServer).GetPosts(ctx, req)
			}),
		},
		{
			MethodName: "UpdatePost",
			Handler: unaryHandler(ContentUpdatePostMethod, func(srv any, ctx context.Context, req *UpdatePostRequest) (any, error) {
				return srv.(ContentServiceServer).UpdatePost(ctx, req)
			}),
		},
		{
			MethodName: "DeletePost",
			Handler: unaryHandler(ContentDeletePostMethod, func(srv any, ctx context.Context, req *DeletePostRequest) (any, error) {
				return srv.(ContentServiceServer).DeletePost(ctx, req)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "content",
}

type ContentServiceClient interface {
	CreatePost(ctx context.Context, in *CreatePostRequest, opts ...grpc.CallOption) (*PostResponse, error)
	GetPost(ctx context.Context, in *GetPostRequest, opts ...grpc.CallOption) (*PostResponse, error)
	GetPosts(ctx context.Context, in *GetPostsRequest, opts ...grpc.CallOption) (*GetPostsResponse, error)
	UpdatePost(ctx context.Context, in *UpdatePostRequest, opts ...grpc.CallOption) (*PostResponse, error)
	DeletePost(ctx context.Context, in *DeletePostRequest, opts ...grpc.CallOption) (*DeletePostResponse, error)
}

type contentServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewContentServiceClient(cc grpc.ClientConnInterface) ContentServiceClient {
	return &contentServiceClient{cc: cc}
}

func (c *contentServiceClient) CreatePost(ctx context.Context, in *CreatePostRequest, opts ...grpc.CallOption) (*PostResponse, error) {
	out := new(PostResponse)
	if err := c.cc.Invoke(ctx, ContentCreatePostMethod, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *contentServiceClient) GetPost(ctx context.Context, in *GetPostRequest, opts ...grpc.CallOption) (*PostResponse, error) {
	out := new(PostResponse)
	if err := c.cc.Invoke(ctx, ContentGetPostMethod, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *contentServiceClient) GetPosts(ctx context.Context, in *GetPostsRequest, opts ...grpc.CallOption) (*GetPostsResponse, error) {
	out := new(GetPostsResponse)
	if err := c.cc.Invoke(ctx, ContentGetPostsMethod, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *contentServiceClient) UpdatePost(ctx context.Context, in *UpdatePostRequest, opts ...grpc.CallOption) (*PostResponse, error) {
	out := new(PostResponse)
	if err := c.cc.Invoke(ctx, ContentUpdatePostMethod, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *contentServiceClient) DeletePost(ctx context.Context, in *DeletePostRequest, opts ...grpc.CallOption) (*DeletePostResponse, error) {
	out := new(DeletePostResponse)
	if err := c.cc.Invoke(ctx, ContentDeletePostMethod, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}
