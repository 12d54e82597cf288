package models

import "time"

// Comment belongs to exactly one parent entity, discriminated by EntityType.
// Threads are one level deep via ParentID.
type Comment struct {
	ID         string    `json:"_id"`
	EntityID   string    `json:"entityId"`
	EntityType string    `json:"entityType"`
	ParentID   *string   `json:"parentId,omitempty"`
	Author     UserRef   `json:"author"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CommentDraft struct {
	EntityID   string  `json:"entityId"`
	EntityType string  `json:"entityType"`
	ParentID   *string `json:"parentId,omitempty"`
	Body       string  `json:"body"`
}
