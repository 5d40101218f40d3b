package keyshare

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsHelloRetryRequest(t *testing.T) {
	require.True(t, IsHelloRetryRequest(helloRetryRequestRandom[:]))

	notQuite := helloRetryRequestRandom
	notQuite[0] ^= 1
	require.False(t, IsHelloRetryRequest(notQuite[:]))
	require.False(t, IsHelloRetryRequest(make([]byte, 32)))
	require.False(t, IsHelloRetryRequest(helloRetryRequestRandom[:16]))
	require.False(t, IsHelloRetryRequest(nil))
}

func TestHelloRetryValid(t *testing.T) {
	conn := NewConn(nil)
	require.False(t, conn.IsHelloRetryValid())
	require.NoError(t, conn.SetServerRandom(helloRetryRequestRandom[:]))
	require.True(t, conn.IsHelloRetryValid())

	conn12 := NewConn(&Config{MaxVersion: VersionTLS12})
	require.NoError(t, conn12.SetServerRandom(helloRetryRequestRandom[:]))
	require.False(t, conn12.IsHelloRetryValid())

	require.ErrorIs(t, conn.SetServerRandom(make([]byte, 31)), ErrBadMessage)
}
