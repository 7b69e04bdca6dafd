package handlers

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/blogmesh/internal/common"
	"github.com/dmitrijs2005/blogmesh/internal/gateway/httpx"
	"github.com/dmitrijs2005/blogmesh/internal/gateway/reqctx"
	"github.com/dmitrijs2005/blogmesh/internal/logging"
	pb "github.com/dmitrijs2005/blogmesh/internal/proto"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,min=3"`
	Content string `json:"content" validate:"required"`
}

// UpdatePostRequest fields are optional, but a supplied field must satisfy
// the same rules as on create.
type UpdatePostRequest struct {
	Title   *string `json:"title" validate:"omitnil,min=3"`
	Content *string `json:"content" validate:"omitnil,min=1"`
}

type PostListResponse struct {
	Posts []*pb.Post `json:"posts"`
}

type PostHandler struct {
	content  ContentAPI
	validate *validator.Validate
	logger   logging.Logger
}

func NewPostHandler(content ContentAPI, v *validator.Validate, l logging.Logger) *PostHandler {
	return &PostHandler{content: content, validate: v, logger: l.With("module", "post_handler")}
}

// Create handles POST /posts. The author is the authenticated caller.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := reqctx.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, common.CodeUnauthenticated, "Unauthorized: missing token", nil)
		return
	}

	var req CreatePostRequest
	if err := decode(w, r, &req); err != nil {
		writeValidation(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeValidation(w, err)
		return
	}

	resp, err := h.content.CreatePost(r.Context(), userID, req.Title, req.Content)
	if err != nil {
		writeRPCError(r.Context(), w, h.logger, "create_post", err)
		return
	}
	if !resp.Success {
		writeEnvelopeFailure(w, resp.Code, resp.Message)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, resp.Post)
}

// Get handles GET /posts/{id}.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.content.GetPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeRPCError(r.Context(), w, h.logger, "get_post", err)
		return
	}
	if !resp.Success {
		writeEnvelopeFailure(w, resp.Code, resp.Message)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, resp.Post)
}

// List handles GET /posts?limit=&offset=.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt32(r, "limit")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, common.CodeInvalidArgument, "limit must be an integer", nil)
		return
	}
	offset, err := queryInt32(r, "offset")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, common.CodeInvalidArgument, "offset must be an integer", nil)
		return
	}

	resp, err := h.content.GetPosts(r.Context(), limit, offset)
	if err != nil {
		writeRPCError(r.Context(), w, h.logger, "get_posts", err)
		return
	}

	posts := resp.Posts
	if posts == nil {
		posts = []*pb.Post{}
	}
	httpx.WriteJSON(w, http.StatusOK, PostListResponse{Posts: posts})
}

// Update handles PUT /posts/{id}.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdatePostRequest
	if err := decode(w, r, &req); err != nil {
		writeValidation(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeValidation(w, err)
		return
	}

	resp, err := h.content.UpdatePost(r.Context(), chi.URLParam(r, "id"), req.Title, req.Content)
	if err != nil {
		writeRPCError(r.Context(), w, h.logger, "update_post", err)
		return
	}
	if !resp.Success {
		writeEnvelopeFailure(w, resp.Code, resp.Message)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, resp.Post)
}

// Delete handles DELETE /posts/{id}.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	resp, err := h.content.DeletePost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeRPCError(r.Context(), w, h.logger, "delete_post", err)
		return
	}
	if !resp.Success {
		writeEnvelopeFailure(w, resp.Code, resp.Message)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// queryInt32 returns nil when the parameter is absent.
func queryInt32(r *http.Request, name string) (*int32, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return nil, err
	}
	v := int32(n)
	return &v, nil
}
