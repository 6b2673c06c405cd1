// Package session owns the mutable UI-side state the evaluation core stays
// free of: the expression under construction and the chronological history
// log. Entries are immutable once appended; the log can only grow or be
// cleared wholesale, and nothing is recorded for failed evaluations.
package session

import (
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Entry is one committed calculation. Immutable after creation.
type Entry struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	At          time.Time `json:"at"`
}

// Session holds one user's expression-in-progress and history. A single
// user issues one action at a time, but HTTP handlers may touch the same
// session from concurrent goroutines, so access is mutex-guarded.
type Session struct {
	mu      sync.Mutex
	expr    string
	history []Entry
	subs    map[string]chan Entry
}

func New() *Session {
	return &Session{subs: map[string]chan Entry{}}
}

// Expression returns the current expression under construction.
func (s *Session) Expression() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expr
}

// SetExpression replaces the expression wholesale, e.g. with a result after
// a successful evaluation.
func (s *Session) SetExpression(expr string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expr = expr
}

// Append adds a token (digit, operator, function prefix) to the expression.
func (s *Session) Append(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expr += token
}

// Backspace removes the last rune of the expression, not the last byte:
// multi-byte tokens like π delete cleanly.
func (s *Session) Backspace() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.expr == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(s.expr)
	s.expr = s.expr[:len(s.expr)-size]
}

// Clear resets the expression under construction. History is untouched.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expr = ""
}

// Commit appends a history entry and notifies subscribers. Slow subscribers
// miss updates rather than block the caller.
func (s *Session) Commit(description string) Entry {
	entry := Entry{ID: uuid.New(), Description: description, At: time.Now()}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, entry)
	for _, ch := range s.subs {
		select {
		case ch <- entry:
		default:
		}
	}
	return entry
}

// History returns a copy of the log in chronological order.
func (s *Session) History() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.history))
	copy(out, s.history)
	return out
}

// ClearHistory discards the whole log.
func (s *Session) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
}

// Subscribe registers a listener for future commits under the given id,
// replacing any previous subscription with that id.
func (s *Session) Subscribe(id string) <-chan Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.subs[id]; ok {
		close(old)
	}
	ch := make(chan Entry, 16)
	s.subs[id] = ch
	return ch
}

// Unsubscribe removes a listener and closes its channel.
func (s *Session) Unsubscribe(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ch, ok := s.subs[id]; ok {
		close(ch)
		delete(s.subs, id)
	}
}
