package models

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"
)

func TestUserRefDecodesBareID(t *testing.T) {
	var post Post
	err := jsoniter.Unmarshal([]byte(`{"_id":"p1","author":"u42","content":"hi","likes":[]}`), &post)
	require.NoError(t, err)

	require.Equal(t, "u42", post.Author.ID())
	_, populated := post.Author.User()
	require.False(t, populated)
}

func TestUserRefDecodesObject(t *testing.T) {
	var post Post
	err := jsoniter.Unmarshal([]byte(`{
		"_id": "p1",
		"author": {"_id": "u42", "fullName": "Mira Takala", "username": "mira"},
		"content": "hi",
		"likes": []
	}`), &post)
	require.NoError(t, err)

	require.Equal(t, "u42", post.Author.ID())
	user, populated := post.Author.User()
	require.True(t, populated)
	require.Equal(t, "Mira Takala", user.FullName)
	require.Equal(t, "mira", user.Username)
}

func TestUserRefDecodesNull(t *testing.T) {
	var ref UserRef
	require.NoError(t, jsoniter.Unmarshal([]byte(`null`), &ref))
	require.True(t, ref.IsZero())
	require.Empty(t, ref.ID())
}

func TestUserRefMarshalKeepsShape(t *testing.T) {
	bare, err := jsoniter.Marshal(NewUserRef("u1"))
	require.NoError(t, err)
	require.JSONEq(t, `"u1"`, string(bare))

	full, err := jsoniter.Marshal(UserRef{Obj: &User{ID: "u1", Username: "mira"}})
	require.NoError(t, err)
	require.Contains(t, string(full), `"username":"mira"`)
}

func TestStudioRefDecodesBothShapes(t *testing.T) {
	var bare StudioRef
	require.NoError(t, jsoniter.Unmarshal([]byte(`"s9"`), &bare))
	require.Equal(t, "s9", bare.ID())

	var full StudioRef
	require.NoError(t, jsoniter.Unmarshal([]byte(`{"_id":"s9","name":"Atelier Nord"}`), &full))
	require.Equal(t, "s9", full.ID())
	studio, ok := full.Studio()
	require.True(t, ok)
	require.Equal(t, "Atelier Nord", studio.Name)
}

func TestFlexCountReadsIntAndArray(t *testing.T) {
	var fromInt FlexCount
	require.NoError(t, jsoniter.Unmarshal([]byte(`7`), &fromInt))
	require.Equal(t, 7, fromInt.Int())

	var fromArray FlexCount
	require.NoError(t, jsoniter.Unmarshal([]byte(`[{"_id":"c1"},{"_id":"c2"}]`), &fromArray))
	require.Equal(t, 2, fromArray.Int())

	var fromNull FlexCount
	require.NoError(t, jsoniter.Unmarshal([]byte(`null`), &fromNull))
	require.Equal(t, 0, fromNull.Int())
}

func TestFlexStringsReadsNewlinesAndArrays(t *testing.T) {
	var fromString FlexStrings
	require.NoError(t, jsoniter.Unmarshal([]byte(`"B.Arch or equivalent\n5 years of experience\n\nRevit"`), &fromString))
	require.Equal(t, FlexStrings{"B.Arch or equivalent", "5 years of experience", "Revit"}, fromString)

	var fromArray FlexStrings
	require.NoError(t, jsoniter.Unmarshal([]byte(`["Revit","AutoCAD"]`), &fromArray))
	require.Equal(t, FlexStrings{"Revit", "AutoCAD"}, fromArray)
}
