package grammar

import (
	"github.com/npillmayer/pegium-go"
	"github.com/npillmayer/pegium-go/state"
)

// OrderedChoice is "A | B | C": try in declaration order, first success
// wins (§4.1.5). Checkpoint before each alternative, rewind on failure
// before trying the next.
type OrderedChoice struct {
	Alts []Element
}

var _ Element = (*OrderedChoice)(nil)

// Choice builds an OrderedChoice, flattening nested choices so that
// right- and left-associative constructions produce an identical tuple.
func Choice(alts ...Element) Element {
	flat := make([]Element, 0, len(alts))
	for _, a := range alts {
		if c, ok := a.(*OrderedChoice); ok {
			flat = append(flat, c.Alts...)
		} else {
			flat = append(flat, a)
		}
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return &OrderedChoice{Alts: flat}
}

func (c *OrderedChoice) Kind() pegium.Kind { return pegium.KindOrderedChoice }
func (c *OrderedChoice) String() string    { return "(" + joinElements(c.Alts, " | ") + ")" }

func (c *OrderedChoice) Terminal(input string, begin, end pegium.TextOffset) pegium.MatchResult {
	var last pegium.MatchResult
	for _, a := range c.Alts {
		res := a.Terminal(input, begin, end)
		if res.Valid {
			return res
		}
		last = res
	}
	return last
}

func (c *OrderedChoice) Rule(s *state.ParseState) bool {
	for _, a := range c.Alts {
		cp := saveRule(s)
		if a.Rule(s) {
			return true
		}
		restoreRule(s, cp)
	}
	return false
}

func (c *OrderedChoice) Recover(s *state.RecoverState) bool {
	cp := saveRecover(s)
	// Strict pass across alternatives (insert/delete disabled).
	for _, a := range c.Alts {
		acp := saveRecover(s)
		if a.Rule(s.ParseState) {
			return true
		}
		restoreRecover(s, acp)
	}
	if !s.AllowInsert && !s.AllowDelete {
		restoreRecover(s, cp)
		return false
	}
	// Editable pass across alternatives.
	for _, a := range c.Alts {
		acp := saveRecover(s)
		if a.Recover(s) {
			return true
		}
		restoreRecover(s, acp)
	}
	restoreRecover(s, cp)
	return false
}
