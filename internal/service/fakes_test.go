package service_test

import (
	"context"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/social-platform/internal/domain"
	"github.com/spec-kit/social-platform/internal/repository"
)

// fakeUserRepo is an in-memory repository.UserRepository.
type fakeUserRepo struct {
	mu          sync.Mutex
	byID        map[string]*domain.User
	byEmail     map[string]*domain.User
	emailLookup int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *user
	f.byID[user.ID] = &clone
	f.byEmail[user.Email] = &clone
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	f.byID[user.ID] = &clone
	f.byEmail[user.Email] = &clone
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.byID[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emailLookup++
	if user, ok := f.byEmail[email]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) emailLookups() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.emailLookup
}

// fakePostRepo is an in-memory repository.PostRepository.
type fakePostRepo struct {
	mu     sync.Mutex
	nextID int64
	posts  map[int64]*domain.Post
	reads  int
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[int64]*domain.Post)}
}

func (f *fakePostRepo) Create(_ context.Context, post *domain.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	post.ID = f.nextID
	clone := *post
	f.posts[post.ID] = &clone
	return nil
}

func (f *fakePostRepo) Update(_ context.Context, post *domain.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[post.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *post
	f.posts[post.ID] = &clone
	return nil
}

func (f *fakePostRepo) GetByID(_ context.Context, id int64) (*domain.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if post, ok := f.posts[id]; ok {
		clone := *post
		return &clone, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakePostRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) List(_ context.Context, query repository.PostListQuery) ([]*domain.Post, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matched := make([]*domain.Post, 0, len(f.posts))
	for _, post := range f.posts {
		if query.FilterID != nil && post.ID != *query.FilterID {
			continue
		}
		if query.FilterUserID != nil && post.UserID != *query.FilterUserID {
			continue
		}
		clone := *post
		matched = append(matched, &clone)
	}

	sort.Slice(matched, func(i, j int) bool {
		if query.SortDesc {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].ID < matched[j].ID
	})

	total := int64(len(matched))
	if query.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[query.Offset:]
	if query.Limit > 0 && query.Limit < len(matched) {
		matched = matched[:query.Limit]
	}
	return matched, total, nil
}

func (f *fakePostRepo) readCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads
}
