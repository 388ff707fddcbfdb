// Package lifecycle holds process lifecycle constants shared by fx hooks.
package lifecycle

import "time"

// DefaultTimeout bounds start and stop hooks (database ping, server shutdown, flushes).
const DefaultTimeout = 10 * time.Second
