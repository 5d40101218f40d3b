package keyshare

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// Preferences is an ordered list of curves, selected once per configuration
// and reused for the lifetime of a connection. Lists are immutable; new
// versions are added, old versions never change.
type Preferences struct {
	Version string
	Curves  []*NamedCurve
}

// Index returns the position of the curve with the given group id, or -1.
func (p *Preferences) Index(id uint16) int {
	return slices.IndexFunc(p.Curves, func(c *NamedCurve) bool {
		return c.ID == id
	})
}

// Lookup returns the curve with the given group id, or nil.
func (p *Preferences) Lookup(id uint16) *NamedCurve {
	if i := p.Index(id); i >= 0 {
		return p.Curves[i]
	}
	return nil
}

var (
	Preferences20140601 = &Preferences{
		Version: "20140601",
		Curves:  []*NamedCurve{CurveSECP256R1, CurveSECP384R1},
	}
	Preferences20200310 = &Preferences{
		Version: "20200310",
		Curves:  []*NamedCurve{CurveX25519, CurveSECP256R1, CurveSECP384R1},
	}
)

var preferenceVersions = []struct {
	version string
	prefs   *Preferences
}{
	{"default", Preferences20140601},
	{"default_tls13", Preferences20200310},
	{"20200310", Preferences20200310},
	{"20140601", Preferences20140601},
}

// ResolvePreferences returns the preference list registered under version.
// Version labels match case-insensitively.
func ResolvePreferences(version string) (*Preferences, error) {
	for _, e := range preferenceVersions {
		if strings.EqualFold(version, e.version) {
			return e.prefs, nil
		}
	}
	return nil, errors.Wrapf(ErrInvalidPreferenceVersion, "%q", version)
}
