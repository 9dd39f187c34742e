package vxoctree

import "errors"

// The four error kinds of the core's error-handling design. Callers
// discriminate with errors.Is; every error the core detects itself wraps one
// of these with fmt.Errorf("...: %w", ...) context. Write errors from the
// codec's io.Writer, and read errors other than a short stream, are returned
// wrapping the underlying I/O error instead.
var (
	// ErrCorruptStream is returned by the codec when a byte stream is
	// truncated or decodes a non-positive root size. Node and brick counts
	// are not checked beyond reading that many words from the stream.
	ErrCorruptStream = errors.New("vxoctree: corrupt stream")

	// ErrPoolExhausted is returned when a caller-supplied node or brick
	// count cap would be exceeded by a build or update.
	ErrPoolExhausted = errors.New("vxoctree: pool exhausted")

	// ErrPreconditionViolation is returned for invalid construction
	// arguments: NewOctree rejects a non-positive root size with it. The
	// codec does not check that reader and writer agree on the brick shape.
	ErrPreconditionViolation = errors.New("vxoctree: precondition violation")

	// ErrOracleFault is returned when a VoxelData callback panics during a
	// build or update; the panic is recovered and reported as this error.
	ErrOracleFault = errors.New("vxoctree: oracle fault")
)
