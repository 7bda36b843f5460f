package trajectory

import "errors"

// Error taxonomy of the engine. All are data-integrity errors surfaced to
// the caller immediately; none are retried internally. Callers test with
// errors.Is.
var (
	// ErrInvalidInput marks a fix table with malformed or missing required
	// fields (timestamp, position, or the grouping attribute).
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyInput marks a fix table with zero rows.
	ErrEmptyInput = errors.New("empty input")

	// ErrEmptyTrajectory marks an accessor call on a trajectory with no
	// fixes.
	ErrEmptyTrajectory = errors.New("empty trajectory")

	// ErrUnknownAttribute marks a request for an attribute no fix carries,
	// from start-location extraction or attribute statistics.
	ErrUnknownAttribute = errors.New("unknown attribute")
)
