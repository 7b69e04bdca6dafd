package clients

import (
	"context"

	"github.com/dmitrijs2005/blogmesh/internal/common"
	"github.com/dmitrijs2005/blogmesh/internal/gateway/reqctx"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// withRequestMetadata copies the request id and authenticated user id from
// ctx into outgoing metadata, replacing values set earlier.
func withRequestMetadata(ctx context.Context) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}

	if rid := reqctx.RequestID(ctx); rid != "" {
		md.Set(common.RequestIDMetadataKey, rid)
	}
	if uid, ok := reqctx.UserID(ctx); ok {
		md.Set(common.UserIDMetadataKey, uid)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func propagationInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	return invoker(withRequestMetadata(ctx), method, req, reply, cc, opts...)
}

func dialOptions(extra []grpc.DialOption) []grpc.DialOption {
	return append([]grpc.DialOption{grpc.WithUnaryInterceptor(propagationInterceptor)}, extra...)
}
