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
	"github.com/dmitrijs2005/blogmesh/internal/gateway/httpx"
	"github.com/dmitrijs2005/blogmesh/internal/logging"
	pb "github.com/dmitrijs2005/blogmesh/internal/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIdentity struct {
	registerResp *pb.RegisterResponse
	loginResp    *pb.LoginResponse
	err          error

	calls int
	got   []string
}

func (f *fakeIdentity) Register(ctx context.Context, username, email, password string) (*pb.RegisterResponse, error) {
	f.calls++
	f.got = []string{username, email, password}
	return f.registerResp, f.err
}

func (f *fakeIdentity) Login(ctx context.Context, email, password string) (*pb.LoginResponse, error) {
	f.calls++
	f.got = []string{email, password}
	return f.loginResp, f.err
}

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httpx.APIError {
	t.Helper()
	var e httpx.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

func newAuth(f *fakeIdentity) *AuthHandler {
	return NewAuthHandler(f, NewValidator(), logging.Nop())
}

func TestRegister_Created(t *testing.T) {
	f := &fakeIdentity{registerResp: &pb.RegisterResponse{Success: true, Message: "User registered successfully", UserID: "u-1"}}
	rec := post(newAuth(f).Register, `{"username":"alice","email":"alice@x.com","password":"Secret123!"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, AuthResponse{Success: true, Message: "User registered successfully", UserID: "u-1"}, got)
	assert.Equal(t, []string{"alice", "alice@x.com", "Secret123!"}, f.got)
}

func TestRegister_ValidationFailsBeforeRPC(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"short username", `{"username":"al","email":"a@x.com","password":"Secret123!"}`, "username"},
		{"long username", `{"username":"` + strings.Repeat("a", 31) + `","email":"a@x.com","password":"Secret123!"}`, "username"},
		{"bad email", `{"username":"alice","email":"nope","password":"Secret123!"}`, "email"},
		{"short password", `{"username":"alice","email":"a@x.com","password":"short"}`, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeIdentity{}
			rec := post(newAuth(f).Register, tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Zero(t, f.calls)
			e := decodeError(t, rec)
			assert.Equal(t, common.CodeInvalidArgument, e.Code)
			assert.Contains(t, rec.Body.String(), `"field":"`+tt.field+`"`)
		})
	}
}

func TestRegister_MalformedBody(t *testing.T) {
	f := &fakeIdentity{}
	rec := post(newAuth(f).Register, `{"username":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, f.calls)
}

func TestRegister_DuplicateIsConflict(t *testing.T) {
	f := &fakeIdentity{registerResp: &pb.RegisterResponse{
		Message: "User with this email or username already exists",
		Code:    common.CodeAlreadyExists,
	}}
	rec := post(newAuth(f).Register, `{"username":"alice","email":"alice@x.com","password":"Secret123!"}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "User with this email or username already exists", decodeError(t, rec).Error)
}

func TestRegister_RPCErrors(t *testing.T) {
	body := `{"username":"alice","email":"alice@x.com","password":"Secret123!"}`

	rec := post(newAuth(&fakeIdentity{err: clients.ErrUnavailable}).Register, body)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = post(newAuth(&fakeIdentity{err: assert.AnError}).Register, body)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestLogin_OK(t *testing.T) {
	f := &fakeIdentity{loginResp: &pb.LoginResponse{
		Success: true, Message: "Login successful", AccessToken: "tok", UserID: "u-1",
	}}
	rec := post(newAuth(f).Login, `{"email":"alice@x.com","password":"Secret123!"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var got AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "tok", got.AccessToken)
	assert.Equal(t, "u-1", got.UserID)
	assert.True(t, got.Success)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := &fakeIdentity{loginResp: &pb.LoginResponse{Message: "Invalid credentials", Code: common.CodeUnauthenticated}}
	rec := post(newAuth(f).Login, `{"email":"alice@x.com","password":"wrong"}`)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	e := decodeError(t, rec)
	assert.Equal(t, "Invalid credentials", e.Error)
	assert.NotContains(t, rec.Body.String(), "accessToken")
}

func TestLogin_MissingPassword(t *testing.T) {
	f := &fakeIdentity{}
	rec := post(newAuth(f).Login, `{"email":"alice@x.com"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, f.calls)
}

func TestStatusForCode(t *testing.T) {
	assert.Equal(t, http.StatusConflict, statusForCode(common.CodeAlreadyExists))
	assert.Equal(t, http.StatusUnauthorized, statusForCode(common.CodeUnauthenticated))
	assert.Equal(t, http.StatusBadRequest, statusForCode(common.CodeInvalidArgument))
	assert.Equal(t, http.StatusNotFound, statusForCode(common.CodeNotFound))
	assert.Equal(t, http.StatusInternalServerError, statusForCode(common.CodeInternal))
	assert.Equal(t, http.StatusInternalServerError, statusForCode(""))
}
