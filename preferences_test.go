package keyshare

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolvePreferences(t *testing.T) {
	tcs := []struct {
		version string
		first   *NamedCurve
		count   int
	}{
		{"default", CurveSECP256R1, 2},
		{"20140601", CurveSECP256R1, 2},
		{"default_tls13", CurveX25519, 3},
		{"20200310", CurveX25519, 3},
		{"DEFAULT_TLS13", CurveX25519, 3},
		{"20200310 ", nil, 0},
		{"bogus", nil, 0},
		{"", nil, 0},
	}
	for _, tc := range tcs {
		prefs, err := ResolvePreferences(tc.version)
		if tc.first == nil {
			require.ErrorIs(t, err, ErrInvalidPreferenceVersion, tc.version)
			require.True(t, IsErrInvalidPreferenceVersion(err))
			continue
		}
		require.NoError(t, err, tc.version)
		require.Len(t, prefs.Curves, tc.count)
		require.Equal(t, tc.first, prefs.Curves[0])
	}
}

func TestSetPreferencesKeepsPrevious(t *testing.T) {
	config := &Config{}
	require.NoError(t, config.SetPreferences("20140601"))
	require.Equal(t, "20140601", config.Preferences().Version)

	err := config.SetPreferences("bogus")
	require.ErrorIs(t, err, ErrInvalidPreferenceVersion)
	require.Equal(t, "20140601", config.Preferences().Version)
}

func TestPreferencesIndex(t *testing.T) {
	require.Equal(t, 0, Preferences20200310.Index(GroupX25519))
	require.Equal(t, 1, Preferences20200310.Index(GroupSECP256R1))
	require.Equal(t, -1, Preferences20140601.Index(GroupX25519))
	require.Nil(t, Preferences20140601.Lookup(GroupX25519))
	require.Equal(t, CurveSECP384R1, Preferences20140601.Lookup(GroupSECP384R1))
}
