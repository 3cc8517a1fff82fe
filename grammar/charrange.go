package grammar

import (
	"github.com/npillmayer/pegium-go"
	"github.com/npillmayer/pegium-go/state"
	"github.com/npillmayer/pegium-go/text"
)

// CharacterRange matches exactly one byte against a 256-bit ASCII
// inclusion table compiled from a DSL (§4.1.2).
type CharacterRange struct {
	Spec  string
	table text.Table
}

var _ Element = (*CharacterRange)(nil)

// NewCharacterRange compiles a DSL spec like "a-zA-Z0-9_" or "^ \t\n".
func NewCharacterRange(spec string, insensitive bool) (*CharacterRange, error) {
	t, err := text.CompileRange(spec)
	if err != nil {
		return nil, err
	}
	if insensitive {
		t = t.CaseInsensitive()
	}
	return &CharacterRange{Spec: spec, table: t}, nil
}

// MustCharacterRange is like NewCharacterRange but panics on a malformed
// spec — meant for grammar authors composing static grammars at init time.
func MustCharacterRange(spec string, insensitive bool) *CharacterRange {
	cr, err := NewCharacterRange(spec, insensitive)
	if err != nil {
		panic(err)
	}
	return cr
}

func (c *CharacterRange) Kind() pegium.Kind { return pegium.KindCharacterRange }
func (c *CharacterRange) String() string    { return "[" + c.Spec + "]" }

func (c *CharacterRange) Terminal(input string, begin, end pegium.TextOffset) pegium.MatchResult {
	if int(begin) >= len(input) {
		return pegium.MatchResult{End: begin, Valid: false}
	}
	b := input[begin]
	if b >= 0x80 || !c.table.Test(b) {
		return pegium.MatchResult{End: begin, Valid: false}
	}
	return pegium.MatchResult{End: begin + 1, Valid: true}
}

func (c *CharacterRange) Rule(s *state.ParseState) bool {
	begin := s.Cursor
	res := c.Terminal(s.Input, begin, s.End())
	if !res.Valid {
		return false
	}
	s.Advance(res.End)
	s.Leaf(begin, c, false)
	s.SkipHiddenNodes()
	return true
}

func (c *CharacterRange) Recover(s *state.RecoverState) bool {
	cp := saveRecover(s)
	if c.tryMatch(s) {
		return true
	}
	for s.AllowDelete {
		if !s.DeleteOneCodepoint() {
			break
		}
		if c.tryMatch(s) {
			return true
		}
	}
	restoreRecover(s, cp)
	return false
}

func (c *CharacterRange) tryMatch(s *state.RecoverState) bool {
	begin := s.Cursor
	res := c.Terminal(s.Input, begin, s.End())
	if !res.Valid {
		return false
	}
	s.Advance(res.End)
	s.Leaf(begin, c, false)
	s.SkipHiddenNodes()
	return true
}
