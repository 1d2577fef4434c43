package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"devflow/internal/core/domain"
)

func TestTaskUpdateSetsAndUnsets(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	title := "Ship it"
	status := domain.TaskStatusDone

	update := taskUpdate(domain.UpdateTaskInput{
		Title:          &title,
		Status:         &status,
		DescriptionSet: true,
		DueDateSet:     true,
		TagsSet:        true,
		Tags:           []string{"release"},
	}, now)

	require.Equal(t, bson.M{
		"title":      "Ship it",
		"status":     "done",
		"tags":       []string{"release"},
		"updated_at": now,
	}, update["$set"])
	require.Equal(t, bson.M{"description": "", "due_date": ""}, update["$unset"])
}

func TestTaskUpdateWithoutClearsHasNoUnset(t *testing.T) {
	link := "https://go.dev/doc"
	update := taskUpdate(domain.UpdateTaskInput{DocumentationLink: &link, DocumentationLinkSet: true}, time.Time{})

	require.NotContains(t, update, "$unset")
	require.Equal(t, "https://go.dev/doc", update["$set"].(bson.M)["documentation_link"])
}

func TestNoteUpdateClearsColorAndTags(t *testing.T) {
	content := "new body"
	update := noteUpdate(domain.UpdateNoteInput{Content: &content, ColorSet: true, TagsSet: true}, time.Time{})

	require.Equal(t, "new body", update["$set"].(bson.M)["content"])
	require.Equal(t, bson.M{"color": "", "tags": ""}, update["$unset"])
}

func TestObjectIDRejectsMalformedIDs(t *testing.T) {
	_, ok := objectID("not-an-id")
	require.False(t, ok)

	_, ok = objectID("")
	require.False(t, ok)

	oid, ok := objectID("65f0c0ffee0000000000abcd")
	require.True(t, ok)
	require.Equal(t, "65f0c0ffee0000000000abcd", oid.Hex())
}
