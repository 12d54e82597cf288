package views

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"

	"github.com/blueprint-archi/blueprint-go/pkg/models"
)

// Viewer is the session identity the selectors resolve against.
type Viewer struct {
	ID      string
	Profile *models.User
}

const (
	FallbackName     = "User"
	FallbackUsername = "user"
	FallbackTime     = "Recently"
)

// Author is the normalized attribution block every card renders.
type Author struct {
	ID       string
	Name     string
	Username string
	Avatar   string
}

// resolveAuthor copes with the author arriving as a bare id or a populated
// object. A bare id equal to the viewer's own id resolves from the viewer's
// cached profile, so a just-created item renders without a refetch.
func resolveAuthor(ref models.UserRef, viewer Viewer) Author {
	author := Author{
		ID:       ref.ID(),
		Name:     FallbackName,
		Username: FallbackUsername,
	}

	if user, ok := ref.User(); ok {
		if len(user.FullName) > 0 {
			author.Name = user.FullName
		}
		if len(user.Username) > 0 {
			author.Username = user.Username
		}
		author.Avatar = user.Avatar
		return author
	}

	if len(ref.ID()) > 0 && ref.ID() == viewer.ID && viewer.Profile != nil {
		if len(viewer.Profile.FullName) > 0 {
			author.Name = viewer.Profile.FullName
		}
		if len(viewer.Profile.Username) > 0 {
			author.Username = viewer.Profile.Username
		}
		author.Avatar = viewer.Profile.Avatar
	}
	return author
}

func relativeTime(t time.Time) string {
	if t.IsZero() {
		return FallbackTime
	}
	return humanize.Time(t)
}

func likedBy(likes []string, viewerID string) bool {
	if len(viewerID) == 0 {
		return false
	}
	return lo.Contains(likes, viewerID)
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

type PostView struct {
	ID           string
	Author       Author
	StudioID     string
	StudioName   string
	Content      string
	Images       []string
	Liked        bool
	LikeCount    int
	CommentCount int
	Timestamp    string
	CreatedAt    time.Time
}

func NewPostView(post models.Post, viewer Viewer) PostView {
	view := PostView{
		ID:           post.ID,
		Author:       resolveAuthor(post.Author, viewer),
		Content:      post.Content,
		Images:       post.Images,
		Liked:        likedBy(post.Likes, viewer.ID),
		LikeCount:    clampCount(len(post.Likes)),
		CommentCount: clampCount(post.Comments.Int()),
		Timestamp:    relativeTime(post.CreatedAt),
		CreatedAt:    post.CreatedAt,
	}
	if post.Studio != nil {
		view.StudioID = post.Studio.ID()
		if studio, ok := post.Studio.Studio(); ok {
			view.StudioName = studio.Name
		}
	}
	return view
}

type ProjectView struct {
	ID           string
	Author       Author
	StudioID     string
	StudioName   string
	Title        string
	Description  string
	CoverImage   string
	Tools        []string
	Liked        bool
	LikeCount    int
	CommentCount int
	Timestamp    string
	CreatedAt    time.Time
}

func NewProjectView(project models.Project, viewer Viewer) ProjectView {
	view := ProjectView{
		ID:           project.ID,
		Author:       resolveAuthor(project.Author, viewer),
		Title:        project.Title,
		Description:  project.Description,
		CoverImage:   project.CoverImage,
		Tools:        project.Tools,
		Liked:        likedBy(project.Likes, viewer.ID),
		LikeCount:    clampCount(len(project.Likes)),
		CommentCount: clampCount(project.Comments.Int()),
		Timestamp:    relativeTime(project.CreatedAt),
		CreatedAt:    project.CreatedAt,
	}
	if project.Studio != nil {
		view.StudioID = project.Studio.ID()
		if studio, ok := project.Studio.Studio(); ok {
			view.StudioName = studio.Name
		}
	}
	return view
}

type ReelView struct {
	ID           string
	Author       Author
	Video        string
	Caption      string
	Liked        bool
	LikeCount    int
	CommentCount int
	Views        int64
	Timestamp    string
	CreatedAt    time.Time
}

func NewReelView(reel models.Reel, viewer Viewer) ReelView {
	return ReelView{
		ID:           reel.ID,
		Author:       resolveAuthor(reel.Author, viewer),
		Video:        reel.Video,
		Caption:      reel.Caption,
		Liked:        likedBy(reel.Likes, viewer.ID),
		LikeCount:    clampCount(len(reel.Likes)),
		CommentCount: clampCount(reel.Comments.Int()),
		Views:        reel.Views,
		Timestamp:    relativeTime(reel.CreatedAt),
		CreatedAt:    reel.CreatedAt,
	}
}

type CommentView struct {
	ID        string
	Author    Author
	Body      string
	ParentID  string
	Timestamp string
}

func NewCommentView(comment models.Comment, viewer Viewer) CommentView {
	view := CommentView{
		ID:        comment.ID,
		Author:    resolveAuthor(comment.Author, viewer),
		Body:      comment.Body,
		Timestamp: relativeTime(comment.CreatedAt),
	}
	if comment.ParentID != nil {
		view.ParentID = *comment.ParentID
	}
	return view
}

type NotificationView struct {
	ID        string
	Type      string
	Actor     Author
	Message   string
	Read      bool
	Timestamp string
}

func NewNotificationView(notification models.Notification, viewer Viewer) NotificationView {
	return NotificationView{
		ID:        notification.ID,
		Type:      notification.Type,
		Actor:     resolveAuthor(notification.Actor, viewer),
		Message:   notification.Message,
		Read:      notification.Read,
		Timestamp: relativeTime(notification.CreatedAt),
	}
}

// FilterByStudio keeps only posts attributed to the given studio, comparing
// through the normalized reference so object-shaped studio ids cannot leak a
// foreign post into a filtered list.
func FilterByStudio(posts []models.Post, studioID string) []models.Post {
	return lo.Filter(posts, func(post models.Post, _ int) bool {
		return post.Studio != nil && post.Studio.ID() == studioID
	})
}
