package otbv

import "errors"

// Every failure mode gets its own sentinel so callers can tell corrupt
// input from caller misuse from internal defects with errors.Is, and
// decide for themselves whether to retry, abort, or report.  Nothing
// in this package retries or auto-corrects.
var (
	// ErrInvalidShape reports a flat buffer whose length does not
	// match the requested resolution.
	ErrInvalidShape = errors.New("invalid shape")

	// ErrEmptyVolume reports a volume of size 0 passed where a
	// non-empty volume is required.
	ErrEmptyVolume = errors.New("empty volume")

	// ErrMaxDepthExceeded reports an octree traversal that went past
	// the recursion ceiling.  The data is likely too large or
	// malformed.
	ErrMaxDepthExceeded = errors.New("maximum octree depth exceeded")

	// ErrZeroSizeSubvolume reports a subvolume of size 0 during a
	// traversal.  This should never happen for a well-formed
	// power-of-two cube; seeing it means a defect, not bad user input.
	ErrZeroSizeSubvolume = errors.New("zero-size subvolume")

	// ErrMalformedEncoding reports an encoding shorter (or longer)
	// than its octree traversal requires.
	ErrMalformedEncoding = errors.New("malformed encoding")

	// ErrSignatureMismatch reports a container that does not begin
	// with the OTBV signature.
	ErrSignatureMismatch = errors.New("signature mismatch")

	// ErrResolutionTooLarge reports a header resolution above
	// MaxResolution on some axis.
	ErrResolutionTooLarge = errors.New("resolution too large")
)
