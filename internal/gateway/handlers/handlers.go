// Package handlers adapts the gateway's REST API onto the downstream RPC
// clients. Handlers validate input, make one RPC and translate the result
// envelope into an HTTP status.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/dmitrijs2005/blogmesh/internal/common"
	"github.com/dmitrijs2005/blogmesh/internal/gateway/clients"
	"github.com/dmitrijs2005/blogmesh/internal/gateway/httpx"
	"github.com/dmitrijs2005/blogmesh/internal/gateway/reqctx"
	"github.com/dmitrijs2005/blogmesh/internal/logging"
	pb "github.com/dmitrijs2005/blogmesh/internal/proto"
	"github.com/go-playground/validator/v10"
)

// IdentityAPI is the part of the identity client used by the auth handlers.
type IdentityAPI interface {
	Register(ctx context.Context, username, email, password string) (*pb.RegisterResponse, error)
	Login(ctx context.Context, email, password string) (*pb.LoginResponse, error)
}

// ContentAPI is the part of the content client used by the post handlers.
type ContentAPI interface {
	CreatePost(ctx context.Context, userID, title, content string) (*pb.PostResponse, error)
	GetPost(ctx context.Context, id string) (*pb.PostResponse, error)
	GetPosts(ctx context.Context, limit, offset *int32) (*pb.GetPostsResponse, error)
	UpdatePost(ctx context.Context, id string, title, content *string) (*pb.PostResponse, error)
	DeletePost(ctx context.Context, id string) (*pb.DeletePostResponse, error)
}

// maxBodyBytes bounds request bodies read by the handlers.
const maxBodyBytes = 1 << 20

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return dec.Decode(v)
}

// NewValidator returns a validator that reports fields by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func writeValidation(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]fieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, fieldError{Field: fe.Field(), Rule: fe.Tag()})
		}
		httpx.WriteError(w, http.StatusBadRequest, common.CodeInvalidArgument, "validation failed", details)
		return
	}
	httpx.WriteError(w, http.StatusBadRequest, common.CodeInvalidArgument, "invalid request body", nil)
}

// statusForCode maps an envelope error code onto an HTTP status.
func statusForCode(code string) int {
	switch code {
	case common.CodeAlreadyExists:
		return http.StatusConflict
	case common.CodeUnauthenticated:
		return http.StatusUnauthorized
	case common.CodeInvalidArgument:
		return http.StatusBadRequest
	case common.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeEnvelopeFailure(w http.ResponseWriter, code, message string) {
	if code == "" {
		code = common.CodeInternal
	}
	httpx.WriteError(w, statusForCode(code), code, message, nil)
}

// writeRPCError reports a transport failure: 503 when the downstream is
// unreachable, 502 otherwise.
func writeRPCError(ctx context.Context, w http.ResponseWriter, logger logging.Logger, op string, err error) {
	logger.Error(ctx, "rpc failed", "op", op, "error", err.Error(), "request_id", reqctx.RequestID(ctx))
	if errors.Is(err, clients.ErrUnavailable) {
		httpx.WriteError(w, http.StatusServiceUnavailable, "unavailable", "service unavailable", nil)
		return
	}
	httpx.WriteError(w, http.StatusBadGateway, "bad_gateway", "upstream error", nil)
}
