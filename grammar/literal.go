package grammar

import (
	"github.com/npillmayer/pegium-go"
	"github.com/npillmayer/pegium-go/state"
	"github.com/npillmayer/pegium-go/text"
)

// Literal is a compile-time byte sequence and a case-sensitivity flag
// (§4.1.1). If it ends in a word-class character, the byte immediately
// past the match (if any) must not be word-class either — "class" does not
// accept "classy" as a prefix.
type Literal struct {
	Text          string
	Insensitive   bool
	AllowInsert   bool
	AllowDelete   bool
}

var _ Element = (*Literal)(nil)

// NewLiteral builds a case-sensitive literal.
func NewLiteral(s string) *Literal { return &Literal{Text: s} }

func (l *Literal) Kind() pegium.Kind { return pegium.KindLiteral }
func (l *Literal) String() string    { return quote(l.Text) }

// LiteralText and CaseSensitive implement the skip package's literalTexter
// interface, used by the default force-insert policy.
func (l *Literal) LiteralText() string  { return l.Text }
func (l *Literal) CaseSensitive() bool  { return !l.Insensitive }

func quote(s string) string { return "\"" + s + "\"" }

func (l *Literal) matches(input string, begin pegium.TextOffset) (pegium.TextOffset, bool) {
	n := len(l.Text)
	if int(begin)+n > len(input) {
		return begin, false
	}
	slice := input[begin : int(begin)+n]
	if l.Insensitive {
		if !text.EqualFoldASCII(slice, l.Text) {
			return begin, false
		}
	} else if slice != l.Text {
		return begin, false
	}
	end := begin + pegium.TextOffset(n)
	if n > 0 && text.IsWordByte(l.Text[n-1]) {
		if int(end) < len(input) && text.IsWordByte(input[end]) {
			return end, false // word-boundary violation
		}
	}
	return end, true
}

func (l *Literal) Terminal(input string, begin, end pegium.TextOffset) pegium.MatchResult {
	e, ok := l.matches(input, begin)
	return pegium.MatchResult{End: e, Valid: ok}
}

func (l *Literal) Rule(s *state.ParseState) bool {
	begin := s.Cursor
	end, ok := l.matches(s.Input, begin)
	if !ok {
		return false
	}
	s.Advance(end)
	s.Leaf(begin, l, false)
	s.SkipHiddenNodes()
	return true
}

func (l *Literal) Recover(s *state.RecoverState) bool {
	cp := saveRecover(s)
	begin := s.Cursor
	if end, ok := l.matches(s.Input, begin); ok {
		s.Advance(end)
		s.Leaf(begin, l, false)
		s.SkipHiddenNodes()
		return true
	}
	if !s.AllowInsert && !s.AllowDelete {
		restoreRecover(s, cp)
		return false
	}
	// Forced zero-width insertion: only where the skipper's force policy
	// accepts this literal.
	if s.InsertHiddenForced(l) {
		return true
	}
	// Typo replacement: only for all-word-class literals of length >= 2.
	if allWordClass(l.Text) && len(l.Text) >= 2 {
		if end, ok := tryTypo(s.Input, s.Cursor, l.Text); ok {
			s.ReplaceLeaf(end, l)
			s.SkipHiddenNodes()
			return true
		}
	}
	// Delete-then-rematch.
	for s.AllowDelete {
		if !s.DeleteOneCodepoint() {
			break
		}
		matchBegin := s.Cursor
		if end, ok := l.matches(s.Input, matchBegin); ok {
			s.Advance(end)
			s.Leaf(matchBegin, l, false)
			s.SkipHiddenNodes()
			return true
		}
	}
	restoreRecover(s, cp)
	return false
}

func allWordClass(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !text.IsWordByte(s[i]) {
			return false
		}
	}
	return true
}

// tryTypo tries substitution, adjacent transposition, missing-character and
// extra-character one-edit shapes of lit at cursor, returning the end
// offset of the matched (recovered) span (§4.1.1 "Typo replacement").
func tryTypo(input string, cursor pegium.TextOffset, lit string) (pegium.TextOffset, bool) {
	n := len(lit)
	avail := len(input) - int(cursor)

	closeEnough := func(a, b byte) bool {
		return text.LowerASCII(a) == text.LowerASCII(b)
	}

	// One substitution: same length, differs in exactly one byte.
	if avail >= n {
		cand := input[cursor : int(cursor)+n]
		diff := 0
		for i := 0; i < n; i++ {
			if !closeEnough(cand[i], lit[i]) {
				diff++
				if diff > 1 {
					break
				}
			}
		}
		if diff == 1 {
			return cursor + pegium.TextOffset(n), true
		}
	}
	// One adjacent transposition: same length, two adjacent bytes swapped.
	if avail >= n && n >= 2 {
		cand := input[cursor : int(cursor)+n]
		for i := 0; i+1 < n; i++ {
			swapped := []byte(cand)
			swapped[i], swapped[i+1] = swapped[i+1], swapped[i]
			if text.EqualFoldASCII(string(swapped), lit) {
				return cursor + pegium.TextOffset(n), true
			}
		}
	}
	// One missing character: input has lit with one character deleted, so
	// input contributes n-1 bytes matching lit minus one byte.
	if n >= 2 && avail >= n-1 {
		cand := input[cursor : int(cursor)+n-1]
		for skip := 0; skip < n; skip++ {
			reduced := lit[:skip] + lit[skip+1:]
			if text.EqualFoldASCII(cand, reduced) {
				return cursor + pegium.TextOffset(n-1), true
			}
		}
	}
	// One extra character: input has lit plus one extra byte inserted.
	if avail >= n+1 {
		cand := input[cursor : int(cursor)+n+1]
		for ins := 0; ins <= n; ins++ {
			without := cand[:ins] + cand[ins+1:]
			if text.EqualFoldASCII(without, lit) {
				return cursor + pegium.TextOffset(n+1), true
			}
		}
	}
	return cursor, false
}
