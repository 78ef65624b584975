package domain

import "time"

// Post is the domain model for user-authored posts.
type Post struct {
	ID        int64
	Content   string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
