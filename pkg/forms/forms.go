package forms

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/blueprint-archi/blueprint-go/pkg/models"
	"github.com/blueprint-archi/blueprint-go/pkg/rest"
	"github.com/blueprint-archi/blueprint-go/pkg/session"
)

// Validation runs entirely on the client: a form that fails here never
// reaches the network.

var validate = validator.New()

var (
	fullNamePattern = regexp.MustCompile(`^[A-Za-z ]+$`)
	handlePattern   = regexp.MustCompile(`^[a-z0-9.-]+$`)
)

func init() {
	_ = validate.RegisterValidation("fullname", func(fl validator.FieldLevel) bool {
		return fullNamePattern.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("handle", func(fl validator.FieldLevel) bool {
		return handlePattern.MatchString(fl.Field().String())
	})
}

// messages maps "Field.tag" to the message the form surfaces.
var messages = map[string]string{
	"FullName.fullname":  "Full name can only contain letters and spaces",
	"FullName.required":  "Full name is required",
	"Username.required":  "Username is required",
	"Username.handle":    "Username can only contain lowercase letters, numbers, dots and dashes",
	"Username.min":       "Username must be at least 3 characters",
	"Email.required":     "Email is required",
	"Email.email":        "Email must be a valid address",
	"Password.required":  "Password is required",
	"Password.min":       "Password must be at least 8 characters",
	"Content.required":   "Post content is required",
	"Title.required":     "Title is required",
	"Name.required":      "Studio name is required",
	"Handle.required":    "Studio handle is required",
	"Handle.handle":      "Studio handle can only contain lowercase letters, numbers, dots and dashes",
	"StudioID.required":  "A studio is required",
	"Type.oneof":         "Unknown job type",
	"Type.required":      "Job type is required",
	"Body.required":      "A body is required",
	"EntityID.required":  "The commented entity is required",
	"Video.required":     "A video is required",
	"JobID.required":     "The applied job is required",
	"CoverLetter.required": "A cover letter is required",
	"Description.required": "A description is required",
}

func check(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(fieldErrors) == 0 {
		return &rest.ValidationError{Message: err.Error()}
	}

	first := fieldErrors[0]
	message, ok := messages[first.Field()+"."+first.Tag()]
	if !ok {
		message = fmt.Sprintf("%s is invalid", first.Field())
	}
	return &rest.ValidationError{Field: first.Field(), Message: message}
}

type Registration struct {
	FullName string `validate:"required,fullname"`
	Username string `validate:"required,min=3,max=30,handle"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

func (f Registration) Validate() error {
	return check(f)
}

func (f Registration) Request() session.RegisterRequest {
	return session.RegisterRequest{
		FullName: f.FullName,
		Username: f.Username,
		Email:    f.Email,
		Password: f.Password,
	}
}

type Login struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

func (f Login) Validate() error {
	return check(f)
}

func (f Login) Credentials() session.Credentials {
	return session.Credentials{Email: f.Email, Password: f.Password}
}

type PostForm struct {
	Content  string   `validate:"required,max=5000"`
	Images   []string `validate:"max=10"`
	StudioID string
}

func (f PostForm) Validate() error {
	return check(f)
}

// Draft stamps the detected content language onto the payload.
func (f PostForm) Draft() models.PostDraft {
	return models.PostDraft{
		Content:  f.Content,
		Images:   f.Images,
		StudioID: f.StudioID,
		Language: DetectLanguage(f.Content),
	}
}

type ProjectForm struct {
	Title       string `validate:"required,max=160"`
	Description string `validate:"required"`
	CoverImage  string
	Images      []string `validate:"max=20"`
	Tools       []string
	StudioID    string
}

func (f ProjectForm) Validate() error {
	return check(f)
}

func (f ProjectForm) Draft() models.ProjectDraft {
	return models.ProjectDraft{
		Title:       f.Title,
		Description: f.Description,
		CoverImage:  f.CoverImage,
		Images:      f.Images,
		Tools:       f.Tools,
		StudioID:    f.StudioID,
		Language:    DetectLanguage(f.Description),
	}
}

type ReelForm struct {
	Video    string `validate:"required"`
	Caption  string `validate:"max=500"`
	StudioID string
}

func (f ReelForm) Validate() error {
	return check(f)
}

func (f ReelForm) Draft() models.ReelDraft {
	return models.ReelDraft{
		Video:    f.Video,
		Caption:  f.Caption,
		StudioID: f.StudioID,
		Language: DetectLanguage(f.Caption),
	}
}

type StudioForm struct {
	Name        string `validate:"required,max=80"`
	Handle      string `validate:"required,min=3,max=30,handle"`
	Description string
	Private     bool
}

func (f StudioForm) Validate() error {
	return check(f)
}

func (f StudioForm) Draft() models.StudioDraft {
	return models.StudioDraft{
		Name:        f.Name,
		Handle:      f.Handle,
		Description: f.Description,
		Private:     f.Private,
	}
}

type JobForm struct {
	Title        string `validate:"required,max=160"`
	StudioID     string `validate:"required"`
	Location     string
	Type         string `validate:"required,oneof=full-time part-time contract internship"`
	Salary       string
	Requirements []string
	Description  string `validate:"required"`
}

func (f JobForm) Validate() error {
	return check(f)
}

func (f JobForm) Draft() models.JobDraft {
	return models.JobDraft{
		Title:        f.Title,
		StudioID:     f.StudioID,
		Location:     f.Location,
		Type:         f.Type,
		Salary:       f.Salary,
		Requirements: f.Requirements,
		Description:  f.Description,
	}
}

type JobApplicationForm struct {
	JobID       string `validate:"required"`
	CoverLetter string `validate:"required"`
	Portfolio   string
	ResumeURL   string
}

func (f JobApplicationForm) Validate() error {
	return check(f)
}

func (f JobApplicationForm) Application() models.JobApplication {
	return models.JobApplication{
		JobID:       f.JobID,
		CoverLetter: f.CoverLetter,
		Portfolio:   f.Portfolio,
		ResumeURL:   f.ResumeURL,
	}
}

type CommentForm struct {
	EntityID   string `validate:"required"`
	EntityType string `validate:"required,oneof=post project reel"`
	ParentID   *string
	Body       string `validate:"required,max=2000"`
}

func (f CommentForm) Validate() error {
	return check(f)
}

func (f CommentForm) Draft() models.CommentDraft {
	return models.CommentDraft{
		EntityID:   f.EntityID,
		EntityType: f.EntityType,
		ParentID:   f.ParentID,
		Body:       f.Body,
	}
}

type MessageForm struct {
	ConversationID string `validate:"required"`
	Body           string `validate:"required,max=5000"`
}

func (f MessageForm) Validate() error {
	return check(f)
}

// Draft stamps a client id so an echo of the message over the realtime bridge
// can be matched to the optimistic copy already on screen.
func (f MessageForm) Draft() models.MessageDraft {
	return models.MessageDraft{
		ConversationID: f.ConversationID,
		Body:           f.Body,
		ClientID:       uuid.NewString(),
	}
}
