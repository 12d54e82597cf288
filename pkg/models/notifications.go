package models

import "time"

const (
	NotificationTypeLike    = "like"
	NotificationTypeComment = "comment"
	NotificationTypeFollow  = "follow"
	NotificationTypeMention = "mention"
	NotificationTypeStudio  = "studio"
	NotificationTypeJob     = "job"
)

type Notification struct {
	ID         string    `json:"_id"`
	Type       string    `json:"type"`
	Actor      UserRef   `json:"actor"`
	TargetID   string    `json:"targetId,omitempty"`
	TargetType string    `json:"targetType,omitempty"`
	Message    string    `json:"message"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"createdAt"`
}
