package grammar

import (
	"github.com/npillmayer/pegium-go"
	"github.com/npillmayer/pegium-go/state"
	"github.com/npillmayer/pegium-go/text"
)

// AnyCharacter matches exactly one UTF-8 codepoint (§4.1.3). Truncated
// sequences and invalid lead bytes fail.
type AnyCharacter struct{}

var _ Element = (*AnyCharacter)(nil)

// Dot is the single shared AnyCharacter instance.
var Dot = &AnyCharacter{}

func (a *AnyCharacter) Kind() pegium.Kind { return pegium.KindAnyCharacter }
func (a *AnyCharacter) String() string    { return "." }

func (a *AnyCharacter) Terminal(input string, begin, end pegium.TextOffset) pegium.MatchResult {
	n := text.ScanCodepoint(input, int(begin))
	if n == 0 {
		return pegium.MatchResult{End: begin, Valid: false}
	}
	return pegium.MatchResult{End: begin + pegium.TextOffset(n), Valid: true}
}

func (a *AnyCharacter) Rule(s *state.ParseState) bool {
	begin := s.Cursor
	res := a.Terminal(s.Input, begin, s.End())
	if !res.Valid {
		return false
	}
	s.Advance(res.End)
	s.Leaf(begin, a, false)
	s.SkipHiddenNodes()
	return true
}

func (a *AnyCharacter) Recover(s *state.RecoverState) bool {
	cp := saveRecover(s)
	begin := s.Cursor
	if res := a.Terminal(s.Input, begin, s.End()); res.Valid {
		s.Advance(res.End)
		s.Leaf(begin, a, false)
		s.SkipHiddenNodes()
		return true
	}
	// Recovery may delete one codepoint and retry.
	for s.AllowDelete {
		if !s.DeleteOneCodepoint() {
			break
		}
		begin := s.Cursor
		if res := a.Terminal(s.Input, begin, s.End()); res.Valid {
			s.Advance(res.End)
			s.Leaf(begin, a, false)
			s.SkipHiddenNodes()
			return true
		}
	}
	restoreRecover(s, cp)
	return false
}
