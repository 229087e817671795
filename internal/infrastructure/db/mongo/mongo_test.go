package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestAuthEventIndexes(t *testing.T) {
	idx := authEventIndexes()
	require.Len(t, idx, 2)
	require.Equal(t, bson.D{{Key: "email", Value: 1}, {Key: "timestamp", Value: -1}}, idx[0].Keys)
	require.Equal(t, "email_timestamp", *idx[0].Options.Name)
	require.Equal(t, "type_timestamp", *idx[1].Options.Name)
}

func TestConnect_Unreachable(t *testing.T) {
	client, db, err := Connect(context.Background(), Config{URI: "mongodb://127.0.0.1:1", Timeout: 200 * time.Millisecond})
	require.Error(t, err)
	require.ErrorContains(t, err, "mongo")
	require.Nil(t, client)
	require.Nil(t, db)
}
