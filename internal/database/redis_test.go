package database

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestConnectRedis(t *testing.T) {
	server := miniredis.RunT(t)

	client, err := ConnectRedis("redis://" + server.Addr() + "/0")
	require.NoError(t, err)
	require.NoError(t, client.Close())
}

func TestConnectRedisRejectsBadURLs(t *testing.T) {
	_, err := ConnectRedis("")
	require.Error(t, err)

	_, err = ConnectRedis("not-a-url://x")
	require.ErrorContains(t, err, "failed to parse redis url")
}
