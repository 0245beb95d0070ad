// File: hotload/timing.go
package hotload

import "time"

// Core timing constants.
// These define the default hot-load behavior of the package.
const (
	// DefaultInterval is the polling interval used by the Builder when no
	// interval is set explicitly.
	DefaultInterval = 10 * time.Second
)
