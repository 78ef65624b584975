package dto

import "time"

// PostRequest payload for creating or updating posts.
type PostRequest struct {
	Content string `json:"content"`
	UserID  string `json:"userId"`
}

// PostDto is the API view of a post.
type PostDto struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
