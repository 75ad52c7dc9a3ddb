// Package generation tracks which asynchronous request currently owns a slot.
//
// Every request takes a Token when it is issued. Issuing a new request (or
// invalidating the slot) advances the generation, and a completion handler
// applies its result only while its token is still current.
package generation

import "sync/atomic"

type Token uint64

type Tracker struct {
	current atomic.Uint64
}

// Next advances the generation and returns the token for the new request.
func (t *Tracker) Next() Token {
	return Token(t.current.Add(1))
}

// Invalidate makes every outstanding token stale.
func (t *Tracker) Invalidate() {
	t.current.Add(1)
}

func (t *Tracker) Current(tok Token) bool {
	return t.current.Load() == uint64(tok)
}
