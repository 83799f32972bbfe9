package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

func setupTestMongo(t *testing.T) *MongoStorage {
	if testing.Short() {
		t.Skip("skipping MongoDB container test in short mode")
	}
	ctx := context.Background()

	// Start MongoDB container
	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := ConnectMongoDB(ctx, uri, "testdb")
	require.NoError(t, err)

	s := NewMongoStorage(db)
	require.NoError(t, s.CreateIndexes(ctx))
	return s
}

func TestMongoStorage_RoundTrip(t *testing.T) {
	s := setupTestMongo(t)
	ctx := context.Background()

	_, err := s.Get(ctx, "cart:1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "cart:1", []byte(`{"itemCount":1}`)))
	require.NoError(t, s.Set(ctx, "cart:1", []byte(`{"itemCount":2}`)))

	got, err := s.Get(ctx, "cart:1")
	require.NoError(t, err)
	assert.Equal(t, `{"itemCount":2}`, string(got))

	require.NoError(t, s.Delete(ctx, "cart:1"))
	_, err = s.Get(ctx, "cart:1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, s.Delete(ctx, "cart:1"))
}
