package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/social-platform/internal/cache"
	"github.com/spec-kit/social-platform/internal/service"
	apperrors "github.com/spec-kit/social-platform/pkg/util"
)

const testUserID = "5e40bc30-82e4-43dd-a50c-5eef0e9fe9d4"

func newPostService(t *testing.T, repo *fakePostRepo) (*service.PostService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	postCache := cache.NewPostCache(client, 5*time.Minute, zap.NewNop())
	return service.NewPostService(repo, postCache, nil, zap.NewNop()), mr
}

func TestCreatePostValidation(t *testing.T) {
	svc, _ := newPostService(t, newFakePostRepo())

	_, err := svc.Create(context.Background(), service.PostCreateInput{})
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, http.StatusBadRequest, domainErr.StatusCode)
	assert.Equal(t, []string{"Content cannot be empty", "User ID cannot be null"}, domainErr.Details)
}

func TestGetPostReadsThroughCache(t *testing.T) {
	repo := newFakePostRepo()
	svc, _ := newPostService(t, repo)

	created, err := svc.Create(context.Background(), service.PostCreateInput{Content: "hello", UserID: testUserID})
	require.NoError(t, err)

	// Create seeds the cache, so neither read should hit the store.
	for i := 0; i < 2; i++ {
		post, err := svc.GetByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, "hello", post.Content)
	}
	assert.Zero(t, repo.readCount())
}

func TestGetPostPopulatesCacheOnMiss(t *testing.T) {
	repo := newFakePostRepo()
	svc, mr := newPostService(t, repo)

	created, err := svc.Create(context.Background(), service.PostCreateInput{Content: "hello", UserID: testUserID})
	require.NoError(t, err)
	mr.FlushAll()

	_, err = svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.readCount())

	_, err = svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.readCount(), "second read must be served from cache")
}

func TestGetPostInvalidID(t *testing.T) {
	svc, _ := newPostService(t, newFakePostRepo())

	_, err := svc.GetByID(context.Background(), 0)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.ToDomainError(err).StatusCode)
}

func TestGetPostNotFound(t *testing.T) {
	svc, _ := newPostService(t, newFakePostRepo())

	_, err := svc.GetByID(context.Background(), 42)
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, http.StatusNotFound, domainErr.StatusCode)
	assert.Equal(t, []string{"Post not found."}, domainErr.Details)
}

func TestUpdatePostRefreshesCache(t *testing.T) {
	repo := newFakePostRepo()
	svc, _ := newPostService(t, repo)

	created, err := svc.Create(context.Background(), service.PostCreateInput{Content: "hello", UserID: testUserID})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, "updated")
	require.NoError(t, err)

	post, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated", post.Content)
}

func TestDeletePostEvictsCache(t *testing.T) {
	repo := newFakePostRepo()
	svc, mr := newPostService(t, repo)

	created, err := svc.Create(context.Background(), service.PostCreateInput{Content: "hello", UserID: testUserID})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.False(t, mr.Exists("post:1"))

	_, err = svc.GetByID(context.Background(), created.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.ToDomainError(err).StatusCode)
}

func TestListRejectsUnknownParameters(t *testing.T) {
	svc, _ := newPostService(t, newFakePostRepo())

	_, _, err := svc.List(context.Background(), map[string]string{"bogus": "1"})
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, http.StatusBadRequest, domainErr.StatusCode)
	assert.Contains(t, domainErr.Details[0], "Unknown parameter(s)")
	assert.Contains(t, domainErr.Details[0], "bogus")
}

func TestListRejectsMalformedSort(t *testing.T) {
	svc, _ := newPostService(t, newFakePostRepo())

	for _, criteria := range []string{"id", "id,upwards", "nope,asc"} {
		_, _, err := svc.List(context.Background(), map[string]string{"sort": criteria})
		require.Error(t, err, "sort criteria %q", criteria)
		assert.Equal(t, http.StatusBadRequest, apperrors.ToDomainError(err).StatusCode)
	}
}

func TestListFiltersAndPaginates(t *testing.T) {
	repo := newFakePostRepo()
	svc, _ := newPostService(t, repo)

	for i := 0; i < 5; i++ {
		_, err := svc.Create(context.Background(), service.PostCreateInput{Content: "post", UserID: testUserID})
		require.NoError(t, err)
	}
	_, err := svc.Create(context.Background(), service.PostCreateInput{
		Content: "other",
		UserID:  "d4c1c80e-5e1c-4c3d-933d-7fa4a4f9e9d2",
	})
	require.NoError(t, err)

	posts, total, err := svc.List(context.Background(), map[string]string{
		"userId":    testUserID,
		"page-size": "2",
		"page-no":   "1",
		"sort":      "id,desc",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, posts, 2)
	assert.Greater(t, posts[0].ID, posts[1].ID)
}
