package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrijs2005/blogmesh/internal/common"
	"github.com/dmitrijs2005/blogmesh/internal/gateway/clients"
	"github.com/dmitrijs2005/blogmesh/internal/gateway/reqctx"
	"github.com/dmitrijs2005/blogmesh/internal/logging"
	pb "github.com/dmitrijs2005/blogmesh/internal/proto"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContent struct {
	postResp   *pb.PostResponse
	listResp   *pb.GetPostsResponse
	deleteResp *pb.DeletePostResponse
	err        error

	calls          int
	gotUser        string
	gotID          string
	gotTitle       *string
	gotContent     *string
	gotLimit       *int32
	gotOffset      *int32
	createdTitle   string
	createdContent string
}

func (f *fakeContent) CreatePost(ctx context.Context, userID, title, content string) (*pb.PostResponse, error) {
	f.calls++
	f.gotUser, f.createdTitle, f.createdContent = userID, title, content
	return f.postResp, f.err
}

func (f *fakeContent) GetPost(ctx context.Context, id string) (*pb.PostResponse, error) {
	f.calls++
	f.gotID = id
	return f.postResp, f.err
}

func (f *fakeContent) GetPosts(ctx context.Context, limit, offset *int32) (*pb.GetPostsResponse, error) {
	f.calls++
	f.gotLimit, f.gotOffset = limit, offset
	return f.listResp, f.err
}

func (f *fakeContent) UpdatePost(ctx context.Context, id string, title, content *string) (*pb.PostResponse, error) {
	f.calls++
	f.gotID, f.gotTitle, f.gotContent = id, title, content
	return f.postResp, f.err
}

func (f *fakeContent) DeletePost(ctx context.Context, id string) (*pb.DeletePostResponse, error) {
	f.calls++
	f.gotID = id
	return f.deleteResp, f.err
}

var samplePost = &pb.Post{
	ID: "p-1", UserID: "u-1", Title: "Hello", Content: "World",
	CreatedAt: "2026-01-02T03:04:05.000Z", UpdatedAt: "2026-01-02T03:04:05.000Z",
}

// serve routes a single request through chi so URL params resolve.
func serve(f *fakeContent, method, pattern, target, body, userID string) *httptest.ResponseRecorder {
	h := NewPostHandler(f, NewValidator(), logging.Nop())
	r := chi.NewRouter()
	switch method {
	case http.MethodPost:
		r.Post(pattern, h.Create)
	case http.MethodGet:
		if strings.Contains(pattern, "{id}") {
			r.Get(pattern, h.Get)
		} else {
			r.Get(pattern, h.List)
		}
	case http.MethodPut:
		r.Put(pattern, h.Update)
	case http.MethodDelete:
		r.Delete(pattern, h.Delete)
	}

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if userID != "" {
		req = req.WithContext(reqctx.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreate_UsesAuthenticatedUser(t *testing.T) {
	f := &fakeContent{postResp: &pb.PostResponse{Success: true, Post: samplePost}}
	rec := serve(f, http.MethodPost, "/posts", "/posts", `{"title":"Hello","content":"World","userId":"spoofed"}`, "u-1")

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "u-1", f.gotUser)
	assert.Equal(t, "Hello", f.createdTitle)

	var got pb.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, *samplePost, got)
}

func TestCreate_RequiresUser(t *testing.T) {
	f := &fakeContent{}
	rec := serve(f, http.MethodPost, "/posts", "/posts", `{"title":"Hello","content":"World"}`, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, f.calls)
}

func TestCreate_Validation(t *testing.T) {
	for _, body := range []string{
		`{"title":"Hi","content":"World"}`,
		`{"title":"Hello","content":""}`,
		`{"content":"World"}`,
	} {
		f := &fakeContent{}
		rec := serve(f, http.MethodPost, "/posts", "/posts", body, "u-1")
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Zero(t, f.calls, body)
	}
}

func TestGet_FoundAndMissing(t *testing.T) {
	f := &fakeContent{postResp: &pb.PostResponse{Success: true, Post: samplePost}}
	rec := serve(f, http.MethodGet, "/posts/{id}", "/posts/p-1", "", "u-1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "p-1", f.gotID)

	f = &fakeContent{postResp: &pb.PostResponse{Message: "Post not found", Code: common.CodeNotFound}}
	rec = serve(f, http.MethodGet, "/posts/{id}", "/posts/nope", "", "u-1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Post not found", decodeError(t, rec).Error)
}

func TestList_PassesOnlyPresentParams(t *testing.T) {
	f := &fakeContent{listResp: &pb.GetPostsResponse{}}
	rec := serve(f, http.MethodGet, "/posts", "/posts", "", "u-1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, f.gotLimit)
	assert.Nil(t, f.gotOffset)
	assert.JSONEq(t, `{"posts":[]}`, rec.Body.String())

	f = &fakeContent{listResp: &pb.GetPostsResponse{Posts: []*pb.Post{samplePost}}}
	rec = serve(f, http.MethodGet, "/posts", "/posts?limit=5&offset=10", "", "u-1")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, f.gotLimit)
	require.NotNil(t, f.gotOffset)
	assert.EqualValues(t, 5, *f.gotLimit)
	assert.EqualValues(t, 10, *f.gotOffset)
	assert.Contains(t, rec.Body.String(), `"id":"p-1"`)
}

func TestList_RejectsNonNumericParams(t *testing.T) {
	f := &fakeContent{}
	rec := serve(f, http.MethodGet, "/posts", "/posts?limit=ten", "", "u-1")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, f.calls)
}

func TestUpdate_PartialFields(t *testing.T) {
	f := &fakeContent{postResp: &pb.PostResponse{Success: true, Post: samplePost}}
	rec := serve(f, http.MethodPut, "/posts/{id}", "/posts/p-1", `{"title":"New title"}`, "u-1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "p-1", f.gotID)
	require.NotNil(t, f.gotTitle)
	assert.Equal(t, "New title", *f.gotTitle)
	assert.Nil(t, f.gotContent)
}

func TestUpdate_SuppliedFieldsAreValidated(t *testing.T) {
	f := &fakeContent{}
	rec := serve(f, http.MethodPut, "/posts/{id}", "/posts/p-1", `{"title":"ab"}`, "u-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(f, http.MethodPut, "/posts/{id}", "/posts/p-1", `{"content":""}`, "u-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, f.calls)
}

func TestDelete(t *testing.T) {
	f := &fakeContent{deleteResp: &pb.DeletePostResponse{Success: true, Message: "Post deleted successfully"}}
	rec := serve(f, http.MethodDelete, "/posts/{id}", "/posts/p-1", "", "u-1")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	f = &fakeContent{deleteResp: &pb.DeletePostResponse{Message: "Post not found", Code: common.CodeNotFound}}
	rec = serve(f, http.MethodDelete, "/posts/{id}", "/posts/p-1", "", "u-1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPosts_ContentServiceDown(t *testing.T) {
	f := &fakeContent{err: clients.ErrUnavailable}
	rec := serve(f, http.MethodGet, "/posts/{id}", "/posts/p-1", "", "u-1")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
