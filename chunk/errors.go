package chunk

import "errors"

// Sentinel errors for the chunk decoder's failure kinds (§7). Wrap these
// with fmt.Errorf("...: %w", ErrX) so callers can errors.Is against them
// without depending on message text.
var (
	// ErrCorruptChunk covers a missing required tag, a tag of the wrong
	// type, or a palette index that exceeds the palette length implied by
	// its bits-per-entry.
	ErrCorruptChunk = errors.New("corrupt chunk")
	// ErrUnsupportedChunk is DataVersion < 2860.
	ErrUnsupportedChunk = errors.New("unsupported chunk version")
)
