package rpcx

import (
	"context"
	"path"
	"time"

	"github.com/dmitrijs2005/blogmesh/internal/common"
	"github.com/dmitrijs2005/blogmesh/internal/logging"
	"github.com/dmitrijs2005/blogmesh/internal/metrics"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// UnaryServerInterceptor logs and measures every call and turns panics into
// codes.Internal so a single bad request cannot take the process down.
func UnaryServerInterceptor(service string, logger logging.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		method := path.Base(info.FullMethod)
		start := time.Now()

		defer func() {
			if p := recover(); p != nil {
				logger.Error(ctx, "panic in rpc handler", "method", method, "panic", p, "request_id", RequestID(ctx))
				resp, err = nil, status.Error(codes.Internal, "internal error")
			}

			code := status.Code(err)
			metrics.RPCRequests.WithLabelValues(service, method, code.String()).Inc()
			metrics.RPCLatency.WithLabelValues(service, method).Observe(time.Since(start).Seconds())

			logger.Debug(ctx, "rpc handled",
				"method", method,
				"code", code.String(),
				"duration", time.Since(start),
				"request_id", RequestID(ctx),
			)
		}()

		return handler(ctx, req)
	}
}

// UserID returns the authenticated caller propagated by the gateway, or "".
func UserID(ctx context.Context) string {
	return firstIncoming(ctx, common.UserIDMetadataKey)
}

// RequestID returns the request id propagated by the gateway, or "".
func RequestID(ctx context.Context) string {
	return firstIncoming(ctx, common.RequestIDMetadataKey)
}

func firstIncoming(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(key); len(values) > 0 {
		return values[0]
	}
	return ""
}
