package models

import "time"

const (
	EntityTypePost    = "post"
	EntityTypeProject = "project"
	EntityTypeReel    = "reel"
)

type Post struct {
	ID        string     `json:"_id"`
	Author    UserRef    `json:"author"`
	Studio    *StudioRef `json:"studioId,omitempty"`
	Content   string     `json:"content"`
	Images    []string   `json:"images,omitempty"`
	Likes     []string   `json:"likes"`
	Comments  FlexCount  `json:"comments"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type Project struct {
	ID            string     `json:"_id"`
	Author        UserRef    `json:"author"`
	Studio        *StudioRef `json:"studioId,omitempty"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	CoverImage    string     `json:"coverImage,omitempty"`
	Images        []string   `json:"images,omitempty"`
	Tools         []string   `json:"tools,omitempty"`
	Collaborators []UserRef  `json:"collaborators,omitempty"`
	Likes         []string   `json:"likes"`
	Comments      FlexCount  `json:"comments"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type Reel struct {
	ID        string     `json:"_id"`
	Author    UserRef    `json:"author"`
	Studio    *StudioRef `json:"studioId,omitempty"`
	Video     string     `json:"video"`
	Caption   string     `json:"caption,omitempty"`
	Likes     []string   `json:"likes"`
	Comments  FlexCount  `json:"comments"`
	Views     int64      `json:"views,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

type PostDraft struct {
	Content  string   `json:"content"`
	Images   []string `json:"images,omitempty"`
	StudioID string   `json:"studioId,omitempty"`
	Language string   `json:"language,omitempty"`
}

type ProjectDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	CoverImage  string   `json:"coverImage,omitempty"`
	Images      []string `json:"images,omitempty"`
	Tools       []string `json:"tools,omitempty"`
	StudioID    string   `json:"studioId,omitempty"`
	Language    string   `json:"language,omitempty"`
}

type ReelDraft struct {
	Video    string `json:"video"`
	Caption  string `json:"caption,omitempty"`
	StudioID string `json:"studioId,omitempty"`
	Language string `json:"language,omitempty"`
}
