package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventPostCreated    EventType = "post_created"
	EventPostUpdated    EventType = "post_updated"
	EventPostDeleted    EventType = "post_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// PostCreatedPayload payload.
type PostCreatedPayload struct {
	PostID int64  `json:"post_id"`
	UserID string `json:"user_id"`
}

// PostUpdatedPayload payload.
type PostUpdatedPayload struct {
	PostID int64 `json:"post_id"`
}

// PostDeletedPayload payload.
type PostDeletedPayload struct {
	PostID int64 `json:"post_id"`
}
