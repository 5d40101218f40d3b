package ecdhe

import (
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestScheme checks behavior every Scheme implementation must have.
func TestScheme(t *testing.T, scheme Scheme) {
	generate := func(i int) PrivateKey {
		rng := mrand.New(mrand.NewSource(int64(i)))
		priv, err := scheme.Generate(rng)
		require.NoError(t, err)
		return priv
	}
	t.Run("Generate", func(t *testing.T) {
		priv := generate(0)
		require.NotNil(t, priv)
		require.NotNil(t, priv.Public())
	})
	t.Run("MarshalParsePoint", func(t *testing.T) {
		priv := generate(0)
		data := make([]byte, scheme.ShareSize())
		require.NoError(t, scheme.MarshalPoint(data, priv.Public()))
		pub2, err := scheme.ParsePoint(data)
		require.NoError(t, err)

		// A parsed point must derive the same secret as the original.
		other := generate(1)
		s1, err := scheme.ComputeShared(other, priv.Public())
		require.NoError(t, err)
		s2, err := scheme.ComputeShared(other, pub2)
		require.NoError(t, err)
		require.Equal(t, s1, s2)
	})
	t.Run("Symmetry", func(t *testing.T) {
		a, b := generate(0), generate(1)
		s1, err := scheme.ComputeShared(a, b.Public())
		require.NoError(t, err)
		s2, err := scheme.ComputeShared(b, a.Public())
		require.NoError(t, err)
		require.NotZero(t, s1)
		require.Equal(t, s1, s2)
	})
	t.Run("ParseWrongLength", func(t *testing.T) {
		for _, n := range []int{0, 1, scheme.ShareSize() - 1, scheme.ShareSize() + 1} {
			_, err := scheme.ParsePoint(make([]byte, n))
			require.ErrorIs(t, err, ErrBadPoint)
		}
	})
	t.Run("MarshalWrongLength", func(t *testing.T) {
		priv := generate(0)
		err := scheme.MarshalPoint(make([]byte, scheme.ShareSize()-1), priv.Public())
		require.ErrorIs(t, err, ErrSerialize)
	})
	t.Run("Destroy", func(t *testing.T) {
		a, b := generate(0), generate(1)
		a.Destroy()
		a.Destroy()
		_, err := scheme.ComputeShared(a, b.Public())
		require.ErrorIs(t, err, ErrSharedSecret)
	})
}
