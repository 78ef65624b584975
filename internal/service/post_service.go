package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/social-platform/internal/cache"
	"github.com/spec-kit/social-platform/internal/domain"
	"github.com/spec-kit/social-platform/internal/events"
	"github.com/spec-kit/social-platform/internal/repository"
	apperrors "github.com/spec-kit/social-platform/pkg/util"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// sortColumns maps exposed sort field names to SQL columns. Only these names
// ever reach an ORDER BY clause.
var sortColumns = map[string]string{
	"id":        "id",
	"content":   "content",
	"userId":    "user_id",
	"createdAt": "created_at",
}

var validListParameters = map[string]struct{}{
	"page-no":   {},
	"page-size": {},
	"sort":      {},
	"id":        {},
	"userId":    {},
}

// PostCreateInput describes a post creation payload.
type PostCreateInput struct {
	Content string
	UserID  string
}

// PostService coordinates post workflows with an explicit cache-aside layer
// over single-post reads.
type PostService struct {
	posts      repository.PostRepository
	cache      *cache.PostCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewPostService constructs the service.
func NewPostService(posts repository.PostRepository, postCache *cache.PostCache, dispatcher events.Dispatcher, logger *zap.Logger) *PostService {
	return &PostService{posts: posts, cache: postCache, dispatcher: dispatcher, logger: logger}
}

// Create persists a new post and seeds the cache with it.
func (s *PostService) Create(ctx context.Context, input PostCreateInput) (*domain.Post, error) {
	var messages []string
	if strings.TrimSpace(input.Content) == "" {
		messages = append(messages, "Content cannot be empty")
	}
	if strings.TrimSpace(input.UserID) == "" {
		messages = append(messages, "User ID cannot be null")
	}
	if len(messages) > 0 {
		return nil, apperrors.NewValidationFailed(messages...)
	}

	post := &domain.Post{Content: input.Content, UserID: input.UserID}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	s.cache.Set(ctx, post)
	s.publish(ctx, events.EventPostCreated, events.PostCreatedPayload{PostID: post.ID, UserID: post.UserID})
	return post, nil
}

// GetByID reads through the cache: hit returns immediately, miss loads from
// the store and populates the cache.
func (s *PostService) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationFailed("Provide valid post id")
	}

	if post, ok := s.cache.Get(ctx, id); ok {
		return post, nil
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Post not found.")
		}
		return nil, err
	}

	s.cache.Set(ctx, post)
	return post, nil
}

// Update replaces the post content and refreshes the cache entry.
func (s *PostService) Update(ctx context.Context, id int64, content string) (*domain.Post, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationFailed("Provide valid post id")
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.NewValidationFailed("Content cannot be empty")
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Post not found.")
		}
		return nil, err
	}

	post.Content = content
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}

	s.cache.Set(ctx, post)
	s.publish(ctx, events.EventPostUpdated, events.PostUpdatedPayload{PostID: post.ID})
	return post, nil
}

// Delete removes the post and evicts its cache entry.
func (s *PostService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationFailed("Provide valid post id")
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Post not found.")
		}
		return err
	}

	s.cache.Evict(ctx, id)
	s.publish(ctx, events.EventPostDeleted, events.PostDeletedPayload{PostID: id})
	return nil
}

// List returns a filtered, sorted page of posts plus the total match count.
// Parameter names, sort criteria and filter values are validated up front.
func (s *PostService) List(ctx context.Context, params map[string]string) ([]*domain.Post, int64, error) {
	if err := validateListParameters(params); err != nil {
		return nil, 0, err
	}

	query := repository.PostListQuery{Limit: defaultPageSize}

	if raw := params["id"]; raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, 0, apperrors.NewValidationFailed("Provide valid post id")
		}
		query.FilterID = &id
	}
	if raw := params["userId"]; raw != "" {
		if _, err := uuid.Parse(raw); err != nil {
			return nil, 0, apperrors.NewValidationFailed("Provide valid user id")
		}
		userID := raw
		query.FilterUserID = &userID
	}

	sortColumn, sortDesc, err := parseSortCriteria(params["sort"])
	if err != nil {
		return nil, 0, err
	}
	query.SortColumn = sortColumn
	query.SortDesc = sortDesc

	pageNo := 0
	if raw := params["page-no"]; raw != "" {
		if pageNo, err = strconv.Atoi(raw); err != nil || pageNo < 0 {
			return nil, 0, apperrors.NewValidationFailed("Provide valid page-no")
		}
	}
	if raw := params["page-size"]; raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 || size > maxPageSize {
			return nil, 0, apperrors.NewValidationFailed("Provide valid page-size")
		}
		query.Limit = size
	}
	query.Offset = pageNo * query.Limit

	return s.posts.List(ctx, query)
}

func (s *PostService) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

func validateListParameters(params map[string]string) error {
	var invalid []string
	for name := range params {
		if _, ok := validListParameters[name]; !ok {
			invalid = append(invalid, name)
		}
	}
	if len(invalid) > 0 {
		return apperrors.NewValidationFailed(fmt.Sprintf("Unknown parameter(s) %v found", invalid))
	}
	return nil
}

func parseSortCriteria(criteria string) (string, bool, error) {
	if strings.TrimSpace(criteria) == "" {
		return "", false, nil
	}

	parts := strings.SplitN(criteria, ",", 2)
	if len(parts) != 2 {
		return "", false, apperrors.NewValidationFailed(
			fmt.Sprintf("Invalid sort criteria '%s'. Should be something like 'id,ASC' or 'id,asc'", criteria))
	}

	sortBy := strings.TrimSpace(parts[0])
	sortOrder := strings.ToLower(strings.TrimSpace(parts[1]))

	column, ok := sortColumns[sortBy]
	if !ok {
		return "", false, apperrors.NewValidationFailed(fmt.Sprintf("Invalid sort-by [%s]", sortBy))
	}
	if sortOrder != "asc" && sortOrder != "desc" {
		return "", false, apperrors.NewValidationFailed(
			fmt.Sprintf("Invalid sort-order [%s] for sort-by [%s]", sortOrder, sortBy))
	}
	return column, sortOrder == "desc", nil
}
