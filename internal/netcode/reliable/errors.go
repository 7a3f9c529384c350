package reliable

import "errors"

var (
	// ErrQueueFull is returned by Send when the unacknowledged send queue
	// would exceed constants.MaxSendQueueSize (spec.md §4.2, §7).
	ErrQueueFull = errors.New("reliable: send queue full")

	// ErrStreamClosed is returned by Send once the stream has left
	// Established.
	ErrStreamClosed = errors.New("reliable: stream closed")
)
