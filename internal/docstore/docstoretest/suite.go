// Package docstoretest holds the behaviour every docstore backend must share.
package docstoretest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"go-jobboard-backend/internal/docstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty store. Collections are namespaced per subtest so
// backends sharing one database stay isolated.
type Factory func(t *testing.T) docstore.Store

// Run executes the conformance suite against the store produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("add and get", func(t *testing.T) { testAddGet(t, newStore(t)) })
	t.Run("get missing", func(t *testing.T) { testGetMissing(t, newStore(t)) })
	t.Run("where equality", func(t *testing.T) { testWhere(t, newStore(t)) })
	t.Run("all", func(t *testing.T) { testAll(t, newStore(t)) })
	t.Run("partial update", func(t *testing.T) { testPartialUpdate(t, newStore(t)) })
	t.Run("array union", func(t *testing.T) { testArrayUnion(t, newStore(t)) })
	t.Run("array remove", func(t *testing.T) { testArrayRemove(t, newStore(t)) })
	t.Run("update missing", func(t *testing.T) { testUpdateMissing(t, newStore(t)) })
	t.Run("delete", func(t *testing.T) { testDelete(t, newStore(t)) })
	t.Run("concurrent union", func(t *testing.T) { testConcurrentUnion(t, newStore(t)) })
	t.Run("add rejects array transforms", func(t *testing.T) { testAddRejectsArrayTransforms(t, newStore(t)) })
}

func collection(t *testing.T) string {
	return fmt.Sprintf("suite_%d", time.Now().UnixNano())
}

func testAddGet(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	coll := collection(t)
	before := time.Now().Add(-time.Minute)

	id, err := s.Add(ctx, coll, map[string]any{
		"name":      "Ana",
		"curso":     nil,
		"saved":     []string{},
		"createdAt": docstore.ServerTimestamp,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	doc, err := s.Get(ctx, coll, id)
	require.NoError(t, err)
	assert.Equal(t, id, doc.ID)
	assert.Equal(t, "Ana", docstore.String(doc.Data, "name"))
	assert.Nil(t, docstore.OptionalString(doc.Data, "curso"))
	assert.Equal(t, []string{}, docstore.Strings(doc.Data, "saved"))

	created := docstore.Time(doc.Data, "createdAt")
	assert.False(t, created.IsZero())
	assert.True(t, created.After(before))
}

func testGetMissing(t *testing.T, s docstore.Store) {
	_, err := s.Get(context.Background(), collection(t), "does-not-exist")
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func testWhere(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	coll := collection(t)

	a, err := s.Add(ctx, coll, map[string]any{"email": "a@x.com"})
	require.NoError(t, err)
	_, err = s.Add(ctx, coll, map[string]any{"email": "b@x.com"})
	require.NoError(t, err)

	docs, err := s.Where(ctx, coll, "email", "a@x.com")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, a, docs[0].ID)

	docs, err = s.Where(ctx, coll, "email", "nobody@x.com")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func testAll(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	coll := collection(t)

	docs, err := s.All(ctx, coll)
	require.NoError(t, err)
	assert.Empty(t, docs)

	for i := 0; i < 3; i++ {
		_, err := s.Add(ctx, coll, map[string]any{"n": fmt.Sprint(i)})
		require.NoError(t, err)
	}

	docs, err = s.All(ctx, coll)
	require.NoError(t, err)
	assert.Len(t, docs, 3)
}

func testPartialUpdate(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	coll := collection(t)

	id, err := s.Add(ctx, coll, map[string]any{
		"name":      "Ana",
		"course":    "CS",
		"updatedAt": docstore.ServerTimestamp,
	})
	require.NoError(t, err)

	doc, err := s.Get(ctx, coll, id)
	require.NoError(t, err)
	firstStamp := docstore.Time(doc.Data, "updatedAt")

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, s.Update(ctx, coll, id, map[string]any{
		"course":    "Math",
		"updatedAt": docstore.ServerTimestamp,
	}))

	doc, err = s.Get(ctx, coll, id)
	require.NoError(t, err)
	assert.Equal(t, "Ana", docstore.String(doc.Data, "name"))
	assert.Equal(t, "Math", docstore.String(doc.Data, "course"))
	assert.False(t, docstore.Time(doc.Data, "updatedAt").Before(firstStamp))
}

func testArrayUnion(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	coll := collection(t)

	id, err := s.Add(ctx, coll, map[string]any{"saved": []string{"v1"}})
	require.NoError(t, err)

	require.NoError(t, s.Update(ctx, coll, id, map[string]any{"saved": docstore.ArrayUnion("v2")}))
	require.NoError(t, s.Update(ctx, coll, id, map[string]any{"saved": docstore.ArrayUnion("v1")}))
	require.NoError(t, s.Update(ctx, coll, id, map[string]any{"fresh": docstore.ArrayUnion("x")}))

	doc, err := s.Get(ctx, coll, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"v1", "v2"}, docstore.Strings(doc.Data, "saved"))
	assert.Equal(t, []string{"x"}, docstore.Strings(doc.Data, "fresh"))
}

func testArrayRemove(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	coll := collection(t)

	id, err := s.Add(ctx, coll, map[string]any{"saved": []string{"v1", "v2", "v3"}})
	require.NoError(t, err)

	require.NoError(t, s.Update(ctx, coll, id, map[string]any{"saved": docstore.ArrayRemove("v2")}))
	require.NoError(t, s.Update(ctx, coll, id, map[string]any{"saved": docstore.ArrayRemove("absent")}))

	doc, err := s.Get(ctx, coll, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"v1", "v3"}, docstore.Strings(doc.Data, "saved"))
}

func testUpdateMissing(t *testing.T, s docstore.Store) {
	err := s.Update(context.Background(), collection(t), "missing", map[string]any{"name": "x"})
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func testDelete(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	coll := collection(t)

	id, err := s.Add(ctx, coll, map[string]any{"name": "Ana"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, coll, id))

	_, err = s.Get(ctx, coll, id)
	assert.ErrorIs(t, err, docstore.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, coll, id), docstore.ErrNotFound)
}

func testConcurrentUnion(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	coll := collection(t)

	id, err := s.Add(ctx, coll, map[string]any{"saved": []string{}})
	require.NoError(t, err)

	const writers = 20
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Half the writers race on the same value.
			errs <- s.Update(ctx, coll, id, map[string]any{"saved": docstore.ArrayUnion(fmt.Sprintf("v%d", i%10))})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	doc, err := s.Get(ctx, coll, id)
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]string{"v0", "v1", "v2", "v3", "v4", "v5", "v6", "v7", "v8", "v9"},
		docstore.Strings(doc.Data, "saved"))
}

func testAddRejectsArrayTransforms(t *testing.T, s docstore.Store) {
	_, err := s.Add(context.Background(), collection(t), map[string]any{"saved": docstore.ArrayUnion("v1")})
	assert.ErrorIs(t, err, docstore.ErrInvalidTransform)
}
