package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/dmitrijs2005/blogmesh/internal/common"
	"github.com/dmitrijs2005/blogmesh/internal/content/models"
	"github.com/dmitrijs2005/blogmesh/internal/content/repositories/posts"
	"github.com/dmitrijs2005/blogmesh/internal/dbx"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePostsRepo keeps posts in memory and records the paging it was asked for.
type fakePostsRepo struct {
	posts map[string]*models.Post
	clock time.Time
	err   error

	lastLimit, lastOffset int
	updates               int
}

func newFakePostsRepo() *fakePostsRepo {
	return &fakePostsRepo{posts: map[string]*models.Post{}, clock: time.Now()}
}

func (f *fakePostsRepo) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.clock = f.clock.Add(time.Second)
	p.CreatedAt, p.UpdatedAt = f.clock, f.clock
	cp := *p
	f.posts[p.ID] = &cp
	return p, nil
}

func (f *fakePostsRepo) Get(ctx context.Context, id string) (*models.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.posts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePostsRepo) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	f.lastLimit, f.lastOffset = limit, offset
	if f.err != nil {
		return nil, f.err
	}
	all := make([]*models.Post, 0, len(f.posts))
	for _, p := range f.posts {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return []*models.Post{}, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakePostsRepo) Update(ctx context.Context, id string, title, content *string) (*models.Post, error) {
	f.updates++
	p, ok := f.posts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if title != nil {
		p.Title = *title
	}
	if content != nil {
		p.Content = *content
	}
	cp := *p
	return &cp, nil
}

func (f *fakePostsRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.posts[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.posts, id)
	return nil
}

type fakeRepoManager struct{ p *fakePostsRepo }

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Posts(dbx.DBTX) posts.Repository              { return m.p }

func newService() (*PostService, *fakePostsRepo) {
	repo := newFakePostsRepo()
	return NewPostService(nil, &fakeRepoManager{p: repo}), repo
}

func ptr[T any](v T) *T { return &v }

var alice = uuid.NewString()

func TestCreatePost(t *testing.T) {
	s, _ := newService()

	p, err := s.CreatePost(context.Background(), alice, "Hello", "World")
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, alice, p.UserID)

	got, err := s.GetPost(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)
}

func TestCreatePost_Validation(t *testing.T) {
	s, repo := newService()

	_, err := s.CreatePost(context.Background(), "", "T", "C")
	assert.ErrorIs(t, err, ErrUserRequired)

	_, err = s.CreatePost(context.Background(), "not-a-uuid", "T", "C")
	assert.ErrorIs(t, err, ErrInvalidUser)

	_, err = s.CreatePost(context.Background(), alice, " ", "C")
	assert.ErrorIs(t, err, common.ErrorValidation)

	assert.Empty(t, repo.posts)
}

func TestCreatePost_StorageError(t *testing.T) {
	s, repo := newService()
	repo.err = errors.New("db down")

	_, err := s.CreatePost(context.Background(), alice, "T", "C")
	assert.ErrorContains(t, err, "db down")
	assert.False(t, errors.Is(err, common.ErrorValidation))
}

func TestGetPost_NotFound(t *testing.T) {
	s, _ := newService()

	_, err := s.GetPost(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = s.GetPost(context.Background(), "42")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetPosts_Paging(t *testing.T) {
	tests := []struct {
		name          string
		limit, offset *int32
		wantL, wantO  int
	}{
		{"defaults", nil, nil, 10, 0},
		{"zero treated as absent", ptr[int32](0), ptr[int32](0), 10, 0},
		{"negative treated as absent", ptr[int32](-5), ptr[int32](-1), 10, 0},
		{"explicit", ptr[int32](3), ptr[int32](6), 3, 6},
		{"capped", ptr[int32](1000), nil, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, repo := newService()
			_, err := s.GetPosts(context.Background(), tt.limit, tt.offset)
			require.NoError(t, err)
			assert.Equal(t, tt.wantL, repo.lastLimit)
			assert.Equal(t, tt.wantO, repo.lastOffset)
		})
	}
}

func TestGetPosts_NewestFirst(t *testing.T) {
	s, _ := newService()
	first, err := s.CreatePost(context.Background(), alice, "first", "x")
	require.NoError(t, err)
	second, err := s.CreatePost(context.Background(), alice, "second", "x")
	require.NoError(t, err)

	got, err := s.GetPosts(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)
}

func TestUpdatePost(t *testing.T) {
	s, repo := newService()
	p, err := s.CreatePost(context.Background(), alice, "Old", "Body")
	require.NoError(t, err)

	got, err := s.UpdatePost(context.Background(), p.ID, ptr("New"), nil)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, "Body", got.Content)

	got, err = s.UpdatePost(context.Background(), p.ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, 1, repo.updates)

	_, err = s.UpdatePost(context.Background(), uuid.NewString(), ptr("x"), nil)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = s.UpdatePost(context.Background(), "bad", ptr("x"), nil)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDeletePost(t *testing.T) {
	s, _ := newService()
	p, err := s.CreatePost(context.Background(), alice, "T", "C")
	require.NoError(t, err)

	require.NoError(t, s.DeletePost(context.Background(), p.ID))
	assert.ErrorIs(t, s.DeletePost(context.Background(), p.ID), common.ErrorNotFound)
	assert.ErrorIs(t, s.DeletePost(context.Background(), "bad"), common.ErrorNotFound)
}
