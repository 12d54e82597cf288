package views

import (
	"fmt"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"

	"github.com/blueprint-archi/blueprint-go/pkg/models"
)

func TestPostViewFallbacks(t *testing.T) {
	// a bare foreign author id and a zero timestamp must render safely
	post := models.Post{
		ID:      "p1",
		Author:  models.NewUserRef("u-unknown"),
		Content: "concrete brutalism appreciation",
	}

	view := NewPostView(post, Viewer{ID: "u-me"})
	require.Equal(t, FallbackName, view.Author.Name)
	require.Equal(t, FallbackUsername, view.Author.Username)
	require.Equal(t, FallbackTime, view.Timestamp)
	require.False(t, view.Liked)
	require.Zero(t, view.LikeCount)
}

func TestPostViewToleratesEmptyEntity(t *testing.T) {
	// author, studio, likes and createdAt all absent
	view := NewPostView(models.Post{ID: "p1"}, Viewer{})
	require.Equal(t, FallbackName, view.Author.Name)
	require.Equal(t, FallbackUsername, view.Author.Username)
	require.Equal(t, FallbackTime, view.Timestamp)
	require.False(t, view.Liked)
	require.Zero(t, view.LikeCount)
	require.Empty(t, view.StudioID)
}

func TestPostViewResolvesSelfAuthor(t *testing.T) {
	// a just-created post arrives with a bare author id; when it is the
	// viewer's own id the cached profile fills the card without a refetch
	viewer := Viewer{
		ID:      "u-me",
		Profile: &models.User{ID: "u-me", FullName: "Mira Takala", Username: "mira", Avatar: "a.png"},
	}
	post := models.Post{ID: "p1", Author: models.NewUserRef("u-me")}

	view := NewPostView(post, viewer)
	require.Equal(t, "Mira Takala", view.Author.Name)
	require.Equal(t, "mira", view.Author.Username)
	require.Equal(t, "a.png", view.Author.Avatar)
}

func TestPostViewPrefersPopulatedAuthor(t *testing.T) {
	viewer := Viewer{ID: "u-me", Profile: &models.User{ID: "u-me", FullName: "Mira Takala"}}
	post := models.Post{
		ID:     "p1",
		Author: models.UserRef{Obj: &models.User{ID: "u-other", FullName: "Jonas Weber", Username: "jonas"}},
	}

	view := NewPostView(post, viewer)
	require.Equal(t, "Jonas Weber", view.Author.Name)
	require.Equal(t, "jonas", view.Author.Username)
}

func TestPostViewLikeMembership(t *testing.T) {
	post := models.Post{
		ID:        "p1",
		Author:    models.NewUserRef("u-other"),
		Likes:     []string{"u-a", "u-me", "u-b"},
		CreatedAt: time.Now().Add(-2 * time.Hour),
	}

	liked := NewPostView(post, Viewer{ID: "u-me"})
	require.True(t, liked.Liked)
	require.Equal(t, 3, liked.LikeCount)

	stranger := NewPostView(post, Viewer{ID: "u-z"})
	require.False(t, stranger.Liked)

	anonymous := NewPostView(post, Viewer{})
	require.False(t, anonymous.Liked, "a logged-out viewer never shows as having liked")
}

func TestCommentCountNeverNegative(t *testing.T) {
	post := models.Post{ID: "p1", Author: models.NewUserRef("u1"), Comments: models.FlexCount(-3)}
	view := NewPostView(post, Viewer{})
	require.Zero(t, view.CommentCount)
}

func TestPostViewCarriesStudio(t *testing.T) {
	studio := models.StudioRef{Obj: &models.Studio{ID: "s1", Name: "Atelier Nord"}}
	post := models.Post{ID: "p1", Author: models.NewUserRef("u1"), Studio: &studio}

	view := NewPostView(post, Viewer{})
	require.Equal(t, "s1", view.StudioID)
	require.Equal(t, "Atelier Nord", view.StudioName)
}

func TestFilterByStudioNormalizesRefShapes(t *testing.T) {
	bare := models.NewStudioRef("s1")
	object := models.StudioRef{Obj: &models.Studio{ID: "s1", Name: "Atelier Nord"}}
	foreign := models.NewStudioRef("s2")

	posts := []models.Post{
		{ID: "p1", Studio: &bare},
		{ID: "p2", Studio: &object},
		{ID: "p3", Studio: &foreign},
		{ID: "p4"},
	}

	filtered := FilterByStudio(posts, "s1")
	require.Len(t, filtered, 2)
	require.Equal(t, "p1", filtered[0].ID)
	require.Equal(t, "p2", filtered[1].ID)
}

func TestPostViewRendersArbitraryFeeds(t *testing.T) {
	faker := gofakeit.New(11)
	viewer := Viewer{ID: "u-me"}

	for i := range 50 {
		post := models.Post{
			ID:        fmt.Sprintf("p%d", i),
			Author:    models.NewUserRef(faker.UUID()),
			Content:   faker.Sentence(12),
			Likes:     []string{faker.UUID(), faker.UUID()},
			Comments:  models.FlexCount(faker.IntRange(0, 500)),
			CreatedAt: faker.DateRange(time.Now().Add(-365*24*time.Hour), time.Now()),
		}

		view := NewPostView(post, viewer)
		require.GreaterOrEqual(t, view.LikeCount, 0)
		require.GreaterOrEqual(t, view.CommentCount, 0)
		require.NotEmpty(t, view.Timestamp)
		require.NotEmpty(t, view.Author.Name)
		require.NotEmpty(t, view.Author.Username)
	}
}

func TestNotificationView(t *testing.T) {
	notification := models.Notification{
		ID:      "n1",
		Type:    models.NotificationTypeLike,
		Actor:   models.UserRef{Obj: &models.User{ID: "u2", FullName: "Jonas Weber", Username: "jonas"}},
		Message: "Jonas liked your project",
		Read:    false,
	}

	view := NewNotificationView(notification, Viewer{ID: "u-me"})
	require.Equal(t, models.NotificationTypeLike, view.Type)
	require.Equal(t, "jonas", view.Actor.Username)
	require.Equal(t, FallbackTime, view.Timestamp)
	require.False(t, view.Read)
}
