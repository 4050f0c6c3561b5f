package she

import "errors"

var (
	// ErrCantDecrypt is returned when no plaintext in the decodable range
	// matches the ciphertext. Out of range plaintexts, a wrong secret key and
	// corrupted ciphertexts are not told apart.
	ErrCantDecrypt = errors.New("she: cannot decrypt")
	// ErrInternal reports a failure of the curve engine.
	ErrInternal = errors.New("she: internal error")
	// ErrUnsupportedCurve is returned by Init for curves without an
	// implementation of the requested mode.
	ErrUnsupportedCurve = errors.New("she: unsupported curve")
	// ErrAlreadyInitialized is returned when a scheme is initialized again
	// with another curve or mode.
	ErrAlreadyInitialized = errors.New("she: scheme already initialized")
	// ErrNotInitialized is returned by operations on a scheme before Init.
	ErrNotInitialized = errors.New("she: scheme not initialized")
	// ErrRandomness is returned when the random source fails. It is not
	// recoverable: there is no safe fallback for missing entropy.
	ErrRandomness = errors.New("she: random source failure")
	// ErrInvalidRange is returned for table sizes and try counts out of
	// bounds.
	ErrInvalidRange = errors.New("she: invalid decryption range")
	// ErrLevelUnavailable is returned for G2 and GT operations on a scheme
	// initialized in single-level mode.
	ErrLevelUnavailable = errors.New("she: group unavailable in single-level mode")
	// ErrSchemeMismatch is returned when values from schemes on different
	// curves are combined.
	ErrSchemeMismatch = errors.New("she: values belong to different curves")
	// ErrInvalidEncoding is returned when parsing malformed keys or
	// ciphertexts.
	ErrInvalidEncoding = errors.New("she: invalid encoding")
)

// IsUnrecoverable reports whether err is a failure the caller should not
// retry, such as a broken random source.
func IsUnrecoverable(err error) bool {
	return errors.Is(err, ErrRandomness)
}
