package key

import (
	"strings"
)

// Sequence represents a series of key events forming a binding.
// Examples: "g g" (jump to top), "z o" (expand), "C-d" (half page down)
type Sequence struct {
	// Events contains the key events in order.
	Events []Event
}

// NewSequence creates an empty key sequence.
func NewSequence() *Sequence {
	return &Sequence{
		Events: make([]Event, 0, 2),
	}
}

// NewSequenceFrom creates a sequence from the given events.
func NewSequenceFrom(events ...Event) *Sequence {
	return &Sequence{
		Events: events,
	}
}

// Len returns the number of events in the sequence.
func (s *Sequence) Len() int {
	return len(s.Events)
}

// IsEmpty returns true if the sequence has no events.
func (s *Sequence) IsEmpty() bool {
	return len(s.Events) == 0
}

// Add appends an event to the sequence.
func (s *Sequence) Add(event Event) {
	s.Events = append(s.Events, event)
}

// Clear removes all events from the sequence.
func (s *Sequence) Clear() {
	s.Events = s.Events[:0]
}

// Last returns the last event, or nil if empty.
func (s *Sequence) Last() *Event {
	if len(s.Events) == 0 {
		return nil
	}
	return &s.Events[len(s.Events)-1]
}

// String returns a human-readable representation.
// Examples: "g g", "z o", "C-d"
func (s *Sequence) String() string {
	if len(s.Events) == 0 {
		return ""
	}

	parts := make([]string, len(s.Events))
	for i, e := range s.Events {
		parts[i] = e.String()
	}
	return strings.Join(parts, " ")
}

// Equals returns true if two sequences are identical.
func (s *Sequence) Equals(other *Sequence) bool {
	if s == nil || other == nil {
		return s == other
	}
	if len(s.Events) != len(other.Events) {
		return false
	}
	for i, e := range s.Events {
		if !e.Equals(other.Events[i]) {
			return false
		}
	}
	return true
}

// HasPrefix returns true if this sequence starts with the given prefix.
func (s *Sequence) HasPrefix(prefix *Sequence) bool {
	if prefix == nil || prefix.IsEmpty() {
		return true
	}
	if len(prefix.Events) > len(s.Events) {
		return false
	}
	for i, e := range prefix.Events {
		if !e.Equals(s.Events[i]) {
			return false
		}
	}
	return true
}

// Clone returns a copy of the sequence.
func (s *Sequence) Clone() *Sequence {
	if s == nil {
		return nil
	}
	events := make([]Event, len(s.Events))
	copy(events, s.Events)
	return &Sequence{Events: events}
}

// Append creates a new sequence by appending events from another sequence.
func (s *Sequence) Append(other *Sequence) *Sequence {
	if other == nil || other.IsEmpty() {
		return s.Clone()
	}

	events := make([]Event, len(s.Events)+len(other.Events))
	copy(events, s.Events)
	copy(events[len(s.Events):], other.Events)
	return &Sequence{Events: events}
}

// AsString returns the sequence as a string if it contains only unmodified
// runes. Returns empty string and false otherwise.
func (s *Sequence) AsString() (string, bool) {
	if len(s.Events) == 0 {
		return "", false
	}

	var sb strings.Builder
	for _, e := range s.Events {
		if !e.IsRune() || e.IsModified() {
			return "", false
		}
		sb.WriteRune(e.Rune)
	}
	return sb.String(), true
}

// ParseSequence parses a key sequence string into a Sequence.
//
// The string can be space-separated ("g g", "z o"), a single spec
// ("q", "enter", "<C-d>"), or a continuous run ("gg", "<C-x><C-s>").
func ParseSequence(s string) (*Sequence, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NewSequence(), nil
	}

	if strings.ContainsRune(s, ' ') {
		seq := NewSequence()
		for _, part := range strings.Fields(s) {
			event, err := Parse(part)
			if err != nil {
				return nil, err
			}
			seq.Add(event)
		}
		return seq, nil
	}

	// A whole spec such as "enter" or "<C-d>" is a single event.
	if event, err := Parse(s); err == nil {
		seq := NewSequence()
		seq.Add(event)
		return seq, nil
	}

	// Continuous form: each rune is an event, <...> groups are one.
	seq := NewSequence()
	runes := []rune(s)
	i := 0
	for i < len(runes) {
		if runes[i] != '<' {
			seq.Add(NewRuneEvent(runes[i], ModNone))
			i++
			continue
		}

		end := -1
		for j := i + 1; j < len(runes); j++ {
			if runes[j] == '>' {
				end = j
				break
			}
		}
		if end == -1 {
			// No closing >, treat as a literal <.
			seq.Add(NewRuneEvent('<', ModNone))
			i++
			continue
		}

		event, err := Parse(string(runes[i : end+1]))
		if err != nil {
			return nil, err
		}
		seq.Add(event)
		i = end + 1
	}

	return seq, nil
}

// MustParseSequence parses a sequence string and panics on error.
// Use only for known-valid sequences in initialization code.
func MustParseSequence(s string) *Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic("invalid key sequence: " + s + ": " + err.Error())
	}
	return seq
}
