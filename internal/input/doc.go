// Package input resolves key events against the keymap registry.
//
// The Handler accumulates keys into a pending sequence and resolves it
// synchronously on every call: an exact binding match produces an
// action, a proper prefix of a longer binding waits for more keys, and
// anything else clears the pending state. Multi-key sequences expire
// when the gap between presses exceeds the sequence timeout; expiry is
// detected by comparing event timestamps, so no timer goroutine runs.
package input
