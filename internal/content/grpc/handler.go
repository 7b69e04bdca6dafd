package grpc

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/blogmesh/internal/common"
	pb "github.com/dmitrijs2005/blogmesh/internal/proto"
	"github.com/dmitrijs2005/blogmesh/internal/rpcx"
)

const (
	msgCreated        = "Post created successfully"
	msgCreateFailed   = "Failed to create post"
	msgRetrieved      = "Post retrieved successfully"
	msgRetrieveFailed = "Failed to retrieve post"
	msgUpdated        = "Post updated successfully"
	msgUpdateFailed   = "Failed to update post"
	msgDeleted        = "Post deleted successfully"
	msgDeleteFailed   = "Failed to delete post"
)

func notFoundMessage(id string) string {
	return fmt.Sprintf("Post with ID %s not found", id)
}

// CreatePost attributes the post to req.UserID, or to the caller identity
// propagated by the gateway when the request leaves it empty.
func (s *ContentServer) CreatePost(ctx context.Context, req *pb.CreatePostRequest) (*pb.PostResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = rpcx.UserID(ctx)
	}

	post, err := s.posts.CreatePost(ctx, userID, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			return &pb.PostResponse{Success: false, Message: msgCreateFailed, Code: common.CodeInvalidArgument}, nil
		}
		s.logger.Error(ctx, "Error creating post", "user_id", userID, "error", err.Error(), "request_id", rpcx.RequestID(ctx))
		return &pb.PostResponse{Success: false, Message: msgCreateFailed, Code: common.CodeInternal}, nil
	}

	s.logger.Info(ctx, "Post created", "post_id", post.ID, "user_id", userID)
	return &pb.PostResponse{Post: toProto(post), Success: true, Message: msgCreated}, nil
}

func (s *ContentServer) GetPost(ctx context.Context, req *pb.GetPostRequest) (*pb.PostResponse, error) {
	post, err := s.posts.GetPost(ctx, req.ID)
	if err != nil {
		return s.postFailure(ctx, "retrieve", req.ID, err, msgRetrieveFailed), nil
	}
	return &pb.PostResponse{Post: toProto(post), Success: true, Message: msgRetrieved}, nil
}

// GetPosts has no failure envelope; storage errors yield an empty list.
func (s *ContentServer) GetPosts(ctx context.Context, req *pb.GetPostsRequest) (*pb.GetPostsResponse, error) {
	list, err := s.posts.GetPosts(ctx, req.Limit, req.Offset)
	if err != nil {
		s.logger.Error(ctx, "Error retrieving posts", "error", err.Error(), "request_id", rpcx.RequestID(ctx))
		return &pb.GetPostsResponse{Posts: []*pb.Post{}}, nil
	}

	out := make([]*pb.Post, 0, len(list))
	for _, p := range list {
		out = append(out, toProto(p))
	}
	return &pb.GetPostsResponse{Posts: out}, nil
}

func (s *ContentServer) UpdatePost(ctx context.Context, req *pb.UpdatePostRequest) (*pb.PostResponse, error) {
	post, err := s.posts.UpdatePost(ctx, req.ID, req.Title, req.Content)
	if err != nil {
		return s.postFailure(ctx, "update", req.ID, err, msgUpdateFailed), nil
	}

	s.logger.Info(ctx, "Post updated", "post_id", post.ID)
	return &pb.PostResponse{Post: toProto(post), Success: true, Message: msgUpdated}, nil
}

func (s *ContentServer) DeletePost(ctx context.Context, req *pb.DeletePostRequest) (*pb.DeletePostResponse, error) {
	if err := s.posts.DeletePost(ctx, req.ID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return &pb.DeletePostResponse{Success: false, Message: notFoundMessage(req.ID), Code: common.CodeNotFound}, nil
		}
		s.logger.Error(ctx, "Error deleting post", "post_id", req.ID, "error", err.Error(), "request_id", rpcx.RequestID(ctx))
		return &pb.DeletePostResponse{Success: false, Message: msgDeleteFailed, Code: common.CodeInternal}, nil
	}

	s.logger.Info(ctx, "Post deleted", "post_id", req.ID)
	return &pb.DeletePostResponse{Success: true, Message: msgDeleted}, nil
}

func (s *ContentServer) postFailure(ctx context.Context, op, id string, err error, fallback string) *pb.PostResponse {
	if errors.Is(err, common.ErrorNotFound) {
		s.logger.Warn(ctx, "Post not found", "op", op, "post_id", id)
		return &pb.PostResponse{Success: false, Message: notFoundMessage(id), Code: common.CodeNotFound}
	}
	s.logger.Error(ctx, "Post operation failed", "op", op, "post_id", id, "error", err.Error(), "request_id", rpcx.RequestID(ctx))
	return &pb.PostResponse{Success: false, Message: fallback, Code: common.CodeInternal}
}
