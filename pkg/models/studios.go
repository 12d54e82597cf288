package models

import "time"

type Studio struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Handle      string    `json:"handle"`
	Description string    `json:"description,omitempty"`
	Owner       UserRef   `json:"owner"`
	Members     []string  `json:"members,omitempty"`
	Private     bool      `json:"private"`
	Avatar      string    `json:"avatar,omitempty"`
	Cover       string    `json:"cover,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type StudioDraft struct {
	Name        string `json:"name"`
	Handle      string `json:"handle"`
	Description string `json:"description,omitempty"`
	Private     bool   `json:"private"`
}
