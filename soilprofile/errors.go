package soilprofile

import "fmt"

// Fatal conditions are returned as errors wrapping one of these sentinels,
// so callers can match with errors.Is. Advisory conditions (inserting an
// existing transition, clamping cut bounds) are never errors; they go to the
// profile's Diagnostics instead.
var (
	// ErrInvalidLayering marks non-contiguous, unsorted or empty layering.
	ErrInvalidLayering = fmt.Errorf("invalid layering")

	// ErrMissingPairedColumn marks a linearly varying parameter whose
	// "from" or "to" counterpart is absent, or whose form differs between
	// layers.
	ErrMissingPairedColumn = fmt.Errorf("missing paired from/to column")

	// ErrUnknownParameter marks a reference to a parameter the profile
	// does not carry.
	ErrUnknownParameter = fmt.Errorf("unknown parameter")

	// ErrDepthOutOfRange marks a query depth outside [MinDepth, MaxDepth].
	ErrDepthOutOfRange = fmt.Errorf("depth out of profile range")

	// ErrNodesOutOfRange marks mapping nodes outside [MinDepth, MaxDepth].
	ErrNodesOutOfRange = fmt.Errorf("nodes out of profile range")

	// ErrNodesNotAscending marks a mapping node sequence that is not
	// strictly ascending.
	ErrNodesNotAscending = fmt.Errorf("nodes not strictly ascending")

	// ErrNaNInIntegrand marks depth integration over a parameter with NaN
	// values.
	ErrNaNInIntegrand = fmt.Errorf("NaN in integrand")

	// ErrNotLinear marks an operation that requires a linearly varying
	// parameter applied to a constant one.
	ErrNotLinear = fmt.Errorf("parameter does not vary linearly")

	// ErrNotConstant marks an operation that requires a constant parameter
	// applied to a linearly varying one.
	ErrNotConstant = fmt.Errorf("parameter is not constant per layer")

	// ErrNotAdjacent marks a merge of layers that are not index-adjacent.
	ErrNotAdjacent = fmt.Errorf("layers are not adjacent")
)
