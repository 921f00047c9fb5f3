// Package timeouts defines shared timeout constants used by the site binaries.
package timeouts

import "time"

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long the HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// Relay caps a single outbound call to the mail relay.
const Relay = 10 * time.Second

// ContentReloadDebounce coalesces bursts of content file events.
const ContentReloadDebounce = 500 * time.Millisecond

// SFTPDial caps the SSH handshake for lead exports.
const SFTPDial = 20 * time.Second
