package mongo

import (
	"testing"
	"time"

	"go-jobboard-backend/internal/docstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUpdateDocument(t *testing.T) {
	plan, err := docstore.PlanUpdate(map[string]any{
		"name":      "Ana",
		"updatedAt": docstore.ServerTimestamp,
		"saved":     docstore.ArrayUnion("v1"),
		"old":       docstore.ArrayRemove("v0"),
	})
	require.NoError(t, err)

	assert.Equal(t, bson.M{
		"$set":         bson.M{"name": "Ana"},
		"$currentDate": bson.M{"updatedAt": bson.M{"$type": "date"}},
		"$addToSet":    bson.M{"saved": bson.M{"$each": []any{"v1"}}},
		"$pull":        bson.M{"old": bson.M{"$in": []any{"v0"}}},
	}, updateDocument(plan))
}

func TestUpdateDocumentOmitsEmptyOperators(t *testing.T) {
	plan, err := docstore.PlanUpdate(map[string]any{"saved": docstore.ArrayUnion("v1")})
	require.NoError(t, err)

	update := updateDocument(plan)
	assert.NotContains(t, update, "$set")
	assert.NotContains(t, update, "$currentDate")
	assert.Contains(t, update, "$addToSet")
}

func TestToDocument(t *testing.T) {
	oid := primitive.NewObjectID()
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	doc := toDocument(bson.M{
		"_id":       oid,
		"email":     "a@x.com",
		"saved":     primitive.A{"v1", "v2"},
		"createdAt": primitive.NewDateTimeFromTime(ts),
	})

	assert.Equal(t, oid.Hex(), doc.ID)
	assert.NotContains(t, doc.Data, "_id")
	assert.Equal(t, []string{"v1", "v2"}, docstore.Strings(doc.Data, "saved"))
	assert.True(t, docstore.Time(doc.Data, "createdAt").Equal(ts))
}
