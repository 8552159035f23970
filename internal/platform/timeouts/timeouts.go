// Package timeouts defines shared timeout constants.
// Centralizing these values keeps the durations discoverable.
package timeouts

import "time"

// Shutdown limits how long telemetry may take to flush when a command exits.
const Shutdown = 5 * time.Second

// JournalFinish caps the write that records a halted game after its run
// context is gone.
const JournalFinish = 5 * time.Second
