//go:build integration

package mongo_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"go-jobboard-backend/internal/docstore"
	"go-jobboard-backend/internal/docstore/docstoretest"
	"go-jobboard-backend/internal/docstore/mongo"
)

var uri string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "27017")
	if err != nil {
		panic(err)
	}
	uri = fmt.Sprintf("mongodb://%s:%s", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newStore(t *testing.T) *mongo.Store {
	store, err := mongo.New(context.Background(), mongo.Config{URI: uri, Database: "jobboard_test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestConformance(t *testing.T) {
	store := newStore(t)
	docstoretest.Run(t, func(t *testing.T) docstore.Store { return store })
}

func TestMalformedIDIsNotFound(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "users", "not-an-object-id")
	assert.ErrorIs(t, err, docstore.ErrNotFound)
	assert.ErrorIs(t, store.Update(ctx, "users", "nope", map[string]any{"a": 1}), docstore.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "users", "nope"), docstore.ErrNotFound)
}

func TestNewRequiresDatabase(t *testing.T) {
	_, err := mongo.New(context.Background(), mongo.Config{URI: uri})
	assert.Error(t, err)
}
