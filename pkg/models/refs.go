package models

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// The Blueprint API is loose about reference fields: an author may arrive as a
// bare id string or as a populated object, depending on which endpoint
// produced the document. These union types absorb that at the decode boundary
// so nothing downstream has to re-check shapes.

type UserRef struct {
	Ref string `json:"-"`
	Obj *User  `json:"-"`
}

func NewUserRef(id string) UserRef {
	return UserRef{Ref: id}
}

func (r UserRef) ID() string {
	if r.Obj != nil {
		return r.Obj.ID
	}
	return r.Ref
}

func (r UserRef) User() (*User, bool) {
	return r.Obj, r.Obj != nil
}

func (r UserRef) IsZero() bool {
	return r.Obj == nil && len(r.Ref) == 0
}

func (r *UserRef) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || len(trimmed) == 0 {
		*r = UserRef{}
		return nil
	}
	if strings.HasPrefix(trimmed, "\"") {
		return jsoniter.Unmarshal(data, &r.Ref)
	}
	var user User
	if err := jsoniter.Unmarshal(data, &user); err != nil {
		return fmt.Errorf("unable to parse user reference: %v", err)
	}
	r.Obj = &user
	r.Ref = user.ID
	return nil
}

func (r UserRef) MarshalJSON() ([]byte, error) {
	if r.Obj != nil {
		return jsoniter.Marshal(r.Obj)
	}
	return jsoniter.Marshal(r.Ref)
}

type StudioRef struct {
	Ref string  `json:"-"`
	Obj *Studio `json:"-"`
}

func NewStudioRef(id string) StudioRef {
	return StudioRef{Ref: id}
}

func (r StudioRef) ID() string {
	if r.Obj != nil {
		return r.Obj.ID
	}
	return r.Ref
}

func (r StudioRef) Studio() (*Studio, bool) {
	return r.Obj, r.Obj != nil
}

func (r StudioRef) IsZero() bool {
	return r.Obj == nil && len(r.Ref) == 0
}

func (r *StudioRef) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || len(trimmed) == 0 {
		*r = StudioRef{}
		return nil
	}
	if strings.HasPrefix(trimmed, "\"") {
		return jsoniter.Unmarshal(data, &r.Ref)
	}
	var studio Studio
	if err := jsoniter.Unmarshal(data, &studio); err != nil {
		return fmt.Errorf("unable to parse studio reference: %v", err)
	}
	r.Obj = &studio
	r.Ref = studio.ID
	return nil
}

func (r StudioRef) MarshalJSON() ([]byte, error) {
	if r.Obj != nil {
		return jsoniter.Marshal(r.Obj)
	}
	return jsoniter.Marshal(r.Ref)
}

// FlexCount reads either a precomputed integer or an array whose length is
// the count.
type FlexCount int

func (c *FlexCount) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || len(trimmed) == 0 {
		*c = 0
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var items []jsoniter.RawMessage
		if err := jsoniter.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("unable to parse count array: %v", err)
		}
		*c = FlexCount(len(items))
		return nil
	}
	var n int
	if err := jsoniter.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("unable to parse count: %v", err)
	}
	*c = FlexCount(n)
	return nil
}

func (c FlexCount) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(int(c))
}

func (c FlexCount) Int() int {
	return int(c)
}

// FlexStrings reads either a newline separated string or an array of strings.
type FlexStrings []string

func (s *FlexStrings) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || len(trimmed) == 0 {
		*s = nil
		return nil
	}
	if strings.HasPrefix(trimmed, "\"") {
		var raw string
		if err := jsoniter.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("unable to parse requirement string: %v", err)
		}
		var out []string
		for _, line := range strings.Split(raw, "\n") {
			if line = strings.TrimSpace(line); len(line) > 0 {
				out = append(out, line)
			}
		}
		*s = out
		return nil
	}
	var out []string
	if err := jsoniter.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("unable to parse requirement list: %v", err)
	}
	*s = out
	return nil
}

func (s FlexStrings) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal([]string(s))
}
