package forms

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blueprint-archi/blueprint-go/pkg/rest"
)

func validationError(t *testing.T, err error) *rest.ValidationError {
	t.Helper()
	require.Error(t, err)
	valErr, ok := err.(*rest.ValidationError)
	require.True(t, ok, "form errors must be validation errors, got %T", err)
	return valErr
}

func TestRegistrationRejectsDigitsInFullName(t *testing.T) {
	form := Registration{
		FullName: "John123",
		Username: "john",
		Email:    "john@example.com",
		Password: "supersecret",
	}

	err := validationError(t, form.Validate())
	require.Equal(t, "FullName", err.Field)
	require.Equal(t, "Full name can only contain letters and spaces", err.Message)
}

func TestRegistrationRejectsUppercaseUsername(t *testing.T) {
	form := Registration{
		FullName: "John Smith",
		Username: "John",
		Email:    "john@example.com",
		Password: "supersecret",
	}

	err := validationError(t, form.Validate())
	require.Equal(t, "Username", err.Field)
	require.Equal(t, "Username can only contain lowercase letters, numbers, dots and dashes", err.Message)
}

func TestRegistrationValid(t *testing.T) {
	form := Registration{
		FullName: "John Smith",
		Username: "john.smith-82",
		Email:    "john@example.com",
		Password: "supersecret",
	}
	require.NoError(t, form.Validate())

	request := form.Request()
	require.Equal(t, "John Smith", request.FullName)
	require.Equal(t, "john.smith-82", request.Username)
}

func TestLoginRequiresValidEmail(t *testing.T) {
	err := validationError(t, Login{Email: "not-an-email", Password: "x"}.Validate())
	require.Equal(t, "Email", err.Field)
	require.Equal(t, "Email must be a valid address", err.Message)
}

func TestPostFormRequiresContent(t *testing.T) {
	err := validationError(t, PostForm{}.Validate())
	require.Equal(t, "Content", err.Field)
	require.Equal(t, "Post content is required", err.Message)
}

func TestPostFormDraftStampsLanguage(t *testing.T) {
	form := PostForm{Content: "The renovated library extends the original brick facade with a timber colonnade."}
	require.NoError(t, form.Validate())

	draft := form.Draft()
	require.Equal(t, form.Content, draft.Content)
	require.Equal(t, "en", draft.Language)
}

func TestDetectLanguageSkipsShortText(t *testing.T) {
	require.Empty(t, DetectLanguage("ok"))
	require.Empty(t, DetectLanguage("   "))
}

func TestJobFormRejectsUnknownType(t *testing.T) {
	form := JobForm{
		Title:       "Junior Architect",
		StudioID:    "s1",
		Type:        "gig",
		Description: "Drafting and site visits.",
	}
	err := validationError(t, form.Validate())
	require.Equal(t, "Type", err.Field)
	require.Equal(t, "Unknown job type", err.Message)
}

func TestJobFormValid(t *testing.T) {
	form := JobForm{
		Title:       "Junior Architect",
		StudioID:    "s1",
		Type:        "full-time",
		Description: "Drafting and site visits.",
	}
	require.NoError(t, form.Validate())
}

func TestCommentFormRejectsUnknownEntityType(t *testing.T) {
	form := CommentForm{EntityID: "p1", EntityType: "studio", Body: "nice"}
	err := validationError(t, form.Validate())
	require.Equal(t, "EntityType", err.Field)
}

func TestMessageFormStampsClientID(t *testing.T) {
	form := MessageForm{ConversationID: "c1", Body: "see you at the site tomorrow"}
	require.NoError(t, form.Validate())

	first := form.Draft()
	second := form.Draft()
	require.NotEmpty(t, first.ClientID)
	require.NotEqual(t, first.ClientID, second.ClientID)
	require.Equal(t, "c1", first.ConversationID)
}

func TestStudioFormValidatesHandle(t *testing.T) {
	form := StudioForm{Name: "Atelier Nord", Handle: "Atelier Nord"}
	err := validationError(t, form.Validate())
	require.Equal(t, "Handle", err.Field)
	require.Equal(t, "Studio handle can only contain lowercase letters, numbers, dots and dashes", err.Message)

	form.Handle = "atelier-nord"
	require.NoError(t, form.Validate())
}
