package grammar

import (
	"github.com/npillmayer/pegium-go"
	"github.com/npillmayer/pegium-go/state"
)

// AndPredicate is "&E": match E, rewind, succeed iff E matched (§4.1.8).
type AndPredicate struct{ Sub Element }

var _ Element = (*AndPredicate)(nil)

func And(e Element) Element { return &AndPredicate{Sub: e} }

func (p *AndPredicate) Kind() pegium.Kind { return pegium.KindAndPredicate }
func (p *AndPredicate) String() string    { return "&" + p.Sub.String() }

func (p *AndPredicate) Terminal(input string, begin, end pegium.TextOffset) pegium.MatchResult {
	res := p.Sub.Terminal(input, begin, end)
	return pegium.MatchResult{End: begin, Valid: res.Valid}
}

func (p *AndPredicate) Rule(s *state.ParseState) bool {
	cp := saveRule(s)
	ok := p.Sub.Rule(s)
	restoreRule(s, cp)
	return ok
}

// Recover probes with both insert and delete disabled, then inverts the
// result — predicates never consume edits (§4.1.8, §4.9).
func (p *AndPredicate) Recover(s *state.RecoverState) bool {
	cp := saveRecover(s)
	probe := state.NewRecoverState(s.ParseState, false, false, s.EditFloor, s.EditCeiling)
	ok := p.Sub.Recover(probe)
	restoreRecover(s, cp)
	return ok
}

// NotPredicate is "!E": match E, rewind, succeed iff E did *not* match.
type NotPredicate struct{ Sub Element }

var _ Element = (*NotPredicate)(nil)

func Not(e Element) Element { return &NotPredicate{Sub: e} }

func (p *NotPredicate) Kind() pegium.Kind { return pegium.KindNotPredicate }
func (p *NotPredicate) String() string    { return "!" + p.Sub.String() }

func (p *NotPredicate) Terminal(input string, begin, end pegium.TextOffset) pegium.MatchResult {
	res := p.Sub.Terminal(input, begin, end)
	return pegium.MatchResult{End: begin, Valid: !res.Valid}
}

func (p *NotPredicate) Rule(s *state.ParseState) bool {
	cp := saveRule(s)
	ok := p.Sub.Rule(s)
	restoreRule(s, cp)
	return !ok
}

func (p *NotPredicate) Recover(s *state.RecoverState) bool {
	cp := saveRecover(s)
	probe := state.NewRecoverState(s.ParseState, false, false, s.EditFloor, s.EditCeiling)
	ok := p.Sub.Recover(probe)
	restoreRecover(s, cp)
	return !ok
}
