// Package timeouts defines shared timeout constants used by the runtime.
package timeouts

import "time"

// StoreWrite caps a single diagnostic or round write to the store.
const StoreWrite = 2 * time.Second

// StoreRead caps a history query against the store.
const StoreRead = 2 * time.Second

// Shutdown limits how long the runtime waits for the module loop and the
// telemetry exporter to drain.
const Shutdown = 5 * time.Second
