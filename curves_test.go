package keyshare

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	expected := []struct {
		curve     *NamedCurve
		id        uint16
		shareSize int
	}{
		{CurveSECP256R1, 23, 65},
		{CurveSECP384R1, 24, 97},
		{CurveX25519, 29, 32},
	}
	require.Len(t, SupportedCurves, len(expected))
	for _, e := range expected {
		require.Equal(t, e.id, e.curve.ID)
		require.Equal(t, e.shareSize, e.curve.ShareSize)
		require.Equal(t, e.shareSize, e.curve.Scheme.ShareSize())
		require.Contains(t, SupportedCurves, e.curve)
	}
}
