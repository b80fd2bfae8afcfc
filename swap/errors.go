package swap

import "errors"

var (
	// ErrTooShortPeriod means the finish height leaves no room for the swap
	// deadline arithmetic; the caller can retry with a later finish height.
	ErrTooShortPeriod = errors.New("too short period until timeout")

	// ErrMissingTransactionArtifact means the node built the trigger but its
	// reply carried no full hash or no unsigned bytes.
	ErrMissingTransactionArtifact = errors.New("missing transaction bytes or hash")

	// ErrRelay means signing or broadcasting returned no usable result.
	ErrRelay = errors.New("no usable reply from node")
)
