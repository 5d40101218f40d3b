package keyshare

import (
	"errors"
)

var (
	// ErrBadMessage indicates malformed or invalid bytes from the peer.
	ErrBadMessage = errors.New("keyshare: bad message")
	// ErrUnsupportedCurve indicates two key exchange parameters that were
	// expected to agree on a curve but do not.
	ErrUnsupportedCurve = errors.New("keyshare: curves do not match")
	// ErrInvalidPreferenceVersion indicates an unknown preference version label.
	ErrInvalidPreferenceVersion = errors.New("keyshare: invalid preference version")
)

func IsErrBadMessage(err error) bool {
	return errors.Is(err, ErrBadMessage)
}

func IsErrUnsupportedCurve(err error) bool {
	return errors.Is(err, ErrUnsupportedCurve)
}

func IsErrInvalidPreferenceVersion(err error) bool {
	return errors.Is(err, ErrInvalidPreferenceVersion)
}
