/*
Package state implements ParseState and RecoverState (§4.4, §4.5), the two
cursors that drive GrammarElement.rule() and .recover() respectively.
*/
package state

import (
	"github.com/cnf/structhash"

	"github.com/npillmayer/pegium-go"
	"github.com/npillmayer/pegium-go/cst"
	"github.com/npillmayer/pegium-go/skip"
	"github.com/npillmayer/pegium-go/trace"
)

// tracer traces with key 'pegium.state'.
func tracer() interface {
	Debugf(string, ...interface{})
} {
	return trace.For("state")
}

// ParseState carries the builder, the skipper, input begin/end/cursor, and
// maxCursor — the furthest point ever reached, used as the recovery anchor
// (§4.4).
type ParseState struct {
	Input      string
	Builder    *cst.Builder
	Skipper    *skip.Skipper
	begin, end pegium.TextOffset
	Cursor     pegium.TextOffset
	maxCursor  pegium.TextOffset
	entering   map[string]struct{}
}

// New creates a ParseState positioned at the start of input.
func New(input string, sk *skip.Skipper, b *cst.Builder) *ParseState {
	if sk == nil {
		sk = skip.Empty()
	}
	return &ParseState{
		Input:   input,
		Builder: b,
		Skipper: sk,
		begin:   0,
		end:     pegium.TextOffset(len(input)),
		Cursor:  0,
	}
}

// End returns the offset just past the input.
func (s *ParseState) End() pegium.TextOffset { return s.end }

// AtEnd reports whether the cursor has reached the end of input.
func (s *ParseState) AtEnd() bool { return s.Cursor >= s.end }

// MaxCursor returns the furthest cursor position ever reached.
func (s *ParseState) MaxCursor() pegium.TextOffset { return s.maxCursor }

func (s *ParseState) bump(to pegium.TextOffset) {
	s.Cursor = to
	if to > s.maxCursor {
		s.maxCursor = to
	}
}

// Checkpoint captures cursor + builder state for rewind.
type Checkpoint struct {
	cursor pegium.TextOffset
	inner  cst.Checkpoint
}

// Mark saves a checkpoint at the current position.
func (s *ParseState) Mark() Checkpoint {
	return Checkpoint{cursor: s.Cursor, inner: s.Builder.Mark()}
}

// Rewind restores cursor and builder to a previously marked checkpoint.
func (s *ParseState) Rewind(cp Checkpoint) {
	s.Cursor = cp.cursor
	s.Builder.Rewind(cp.inner)
}

// SkipHiddenNodes advances the cursor past hidden/ignored tokens and
// updates maxCursor.
func (s *ParseState) SkipHiddenNodes() {
	s.bump(s.Skipper.SkipHiddenNodes(s.Input, s.Cursor, s.Builder))
}

// Advance moves the cursor to to (must be >= current cursor), tracking
// maxCursor.
func (s *ParseState) Advance(to pegium.TextOffset) {
	s.bump(to)
}

// Enter forwards to the builder, using the current cursor as begin.
func (s *ParseState) Enter() cst.NodeId {
	return s.Builder.Enter(s.Cursor)
}

// Exit forwards to the builder, using the current cursor as end.
func (s *ParseState) Exit(elem pegium.Element) {
	s.Builder.Exit(s.Cursor, elem)
}

// Leaf forwards to the builder, spanning [begin, current cursor).
func (s *ParseState) Leaf(begin pegium.TextOffset, elem pegium.Element, hidden bool) cst.NodeId {
	return s.Builder.Leaf(begin, s.Cursor, elem, hidden, false)
}

// guardKey fingerprints a (rule name, cursor) pair so EnterGuard/ExitGuard
// don't need to build and compare a string key themselves at every call.
func guardKey(ruleName string, cursor pegium.TextOffset) string {
	h, err := structhash.Hash(struct {
		Rule   string
		Cursor pegium.TextOffset
	}{Rule: ruleName, Cursor: cursor}, 1)
	if err != nil { // structhash only fails on unhashable types; our struct never is
		panic(err)
	}
	return h
}

// EnterGuard records that ruleName is being entered at the current cursor
// with zero prior input consumed since the last such entry, and reports
// whether that exact (rule, cursor) pair is already on the stack — true
// meaning it is safe to proceed, false meaning the rule would recurse into
// itself without making progress (direct or indirect left recursion).
// Callers must pair a successful EnterGuard with ExitGuard once the rule
// returns.
func (s *ParseState) EnterGuard(ruleName string) (string, bool) {
	if s.entering == nil {
		s.entering = make(map[string]struct{})
	}
	key := guardKey(ruleName, s.Cursor)
	if _, seen := s.entering[key]; seen {
		return key, false
	}
	s.entering[key] = struct{}{}
	return key, true
}

// ExitGuard releases a key obtained from a successful EnterGuard.
func (s *ParseState) ExitGuard(key string) {
	delete(s.entering, key)
}
