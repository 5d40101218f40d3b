package keyshare

import (
	"crypto/rand"
	"io"

	"github.com/sirupsen/logrus"
)

// Protocol versions, as they appear on the wire.
const (
	VersionTLS12 uint16 = 0x0303
	VersionTLS13 uint16 = 0x0304
)

// Config carries the negotiation settings shared by connections.
// A Config is read once when a Conn is created; changing it afterwards does
// not affect existing connections.
type Config struct {
	// PreferredKeyShares lists group ids to generate real shares for, in
	// order. Preference list curves it does not cover are only announced,
	// not generated.
	PreferredKeyShares []uint16
	// SendEmptyKeyShares announces every preference list curve without
	// generating any key material, forcing the server into a
	// HelloRetryRequest.
	SendEmptyKeyShares bool
	// MaxVersion caps the protocol version. Zero means TLS 1.3.
	MaxVersion uint16
	// Rand is the entropy source for key generation. nil means crypto/rand.
	Rand io.Reader
	// Logger overrides the package logger.
	Logger *logrus.Logger

	prefs *Preferences
}

// SetPreferences selects the curve preference list by version label.
// On an unknown label the previously selected list is left unchanged.
func (c *Config) SetPreferences(version string) error {
	prefs, err := ResolvePreferences(version)
	if err != nil {
		return err
	}
	c.prefs = prefs
	return nil
}

// Preferences returns the selected preference list, defaulting to the
// TLS 1.3 list.
func (c *Config) Preferences() *Preferences {
	if c.prefs == nil {
		return Preferences20200310
	}
	return c.prefs
}

func (c *Config) rand() io.Reader {
	if c.Rand == nil {
		return rand.Reader
	}
	return c.Rand
}

func (c *Config) logger() *logrus.Logger {
	if c.Logger == nil {
		return log
	}
	return c.Logger
}

func (c *Config) maxVersion() uint16 {
	if c.MaxVersion == 0 {
		return VersionTLS13
	}
	return c.MaxVersion
}
