package input

import (
	"time"

	"github.com/dshills/arbor/internal/input/key"
	"github.com/dshills/arbor/internal/input/keymap"
)

// DefaultSequenceTimeout is how long a pending multi-key sequence
// stays alive between presses.
const DefaultSequenceTimeout = time.Second

// Status describes the outcome of feeding a key to the handler.
type Status int

const (
	// StatusNone means the key resolved to nothing.
	StatusNone Status = iota

	// StatusMatched means the sequence resolved to an action.
	StatusMatched

	// StatusPending means the sequence is a prefix of a longer binding
	// and the handler is waiting for more keys.
	StatusPending
)

// Resolution is the result of feeding one key event.
type Resolution struct {
	// Status describes the outcome.
	Status Status

	// Action is the resolved action name when Status is StatusMatched.
	Action string

	// Binding is the matched binding when Status is StatusMatched.
	Binding *keymap.Binding

	// Pending is the pending keys display string when Status is
	// StatusPending, e.g. "g" or "z".
	Pending string
}

// Handler resolves key events against a keymap registry.
//
// It is not safe for concurrent use; the application feeds it from the
// event loop goroutine only.
type Handler struct {
	registry *keymap.Registry
	pending  *key.Sequence
	timeout  time.Duration
}

// NewHandler creates a handler over the given registry.
func NewHandler(registry *keymap.Registry) *Handler {
	return &Handler{
		registry: registry,
		pending:  key.NewSequence(),
		timeout:  DefaultSequenceTimeout,
	}
}

// SetTimeout changes the sequence timeout. Zero or negative disables
// expiry.
func (h *Handler) SetTimeout(d time.Duration) {
	h.timeout = d
}

// Registry returns the keymap registry.
func (h *Handler) Registry() *keymap.Registry {
	return h.registry
}

// Pending returns the pending key sequence as a display string.
func (h *Handler) Pending() string {
	return h.pending.String()
}

// Reset abandons any pending sequence.
func (h *Handler) Reset() {
	h.pending.Clear()
}

// Feed processes one key event in the given scope and returns how it
// resolved. Sequence expiry is checked against the gap between this
// event's timestamp and the previous one.
func (h *Handler) Feed(event key.Event, scope keymap.Scope) Resolution {
	// Escape always abandons the pending sequence.
	if event.IsEscape() {
		h.pending.Clear()
		return Resolution{Status: StatusNone}
	}

	// A stale prefix is abandoned; the new key starts fresh.
	if h.timeout > 0 && !h.pending.IsEmpty() {
		if last := h.pending.Last(); last != nil && event.Timestamp.Sub(last.Timestamp) > h.timeout {
			h.pending.Clear()
		}
	}

	h.pending.Add(event)

	if binding := h.registry.Lookup(h.pending, scope); binding != nil {
		h.pending.Clear()
		return Resolution{
			Status:  StatusMatched,
			Action:  binding.Action,
			Binding: binding,
		}
	}

	if h.registry.HasPrefix(h.pending, scope) {
		return Resolution{
			Status:  StatusPending,
			Pending: h.pending.String(),
		}
	}

	// Dead sequence. Retry the terminating key alone so a key that
	// broke a prefix still acts on its own binding.
	retry := h.pending.Len() > 1
	h.pending.Clear()
	if retry {
		return h.Feed(event, scope)
	}
	return Resolution{Status: StatusNone}
}
