package cache

// Tag identifies either one cached entity ({Type, ID}) or a whole class of
// list results ({Type} with no id). Mutations declare the tags they stale.

const (
	TypeUser         = "User"
	TypePost         = "Post"
	TypeProject      = "Project"
	TypeReel         = "Reel"
	TypeStudio       = "Studio"
	TypeComment      = "Comment"
	TypeJob          = "Job"
	TypeNotification = "Notification"
	TypeConversation = "Conversation"
	TypeMessage      = "Message"
	TypeFeed         = "Feed"
	TypeSaved        = "Saved"
)

type Tag struct {
	Type string
	ID   string
}

func List(entityType string) Tag {
	return Tag{Type: entityType}
}

func Item(entityType, id string) Tag {
	return Tag{Type: entityType, ID: id}
}

func (t Tag) String() string {
	if len(t.ID) == 0 {
		return t.Type
	}
	return t.Type + "#" + t.ID
}

// IsList reports whether the tag covers a class of list results rather than
// one entity.
func (t Tag) IsList() bool {
	return len(t.ID) == 0
}
