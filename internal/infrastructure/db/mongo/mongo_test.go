package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_RejectsIncompleteConfig(t *testing.T) {
	_, _, err := Connect(context.Background(), Config{Database: "askdesk"})
	assert.ErrorContains(t, err, "empty URI")

	_, _, err = Connect(context.Background(), Config{URI: "mongodb://localhost:27017"})
	assert.ErrorContains(t, err, "empty database name")
}

func TestPinger_Integration(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, _, err := Connect(ctx, Config{URI: uri, Database: "askdesk_ping"})
	require.NoError(t, err)

	require.NoError(t, Pinger(client)(ctx))
	require.NoError(t, Disconnect(client))
	assert.Error(t, Pinger(client)(ctx))
}
