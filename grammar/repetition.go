package grammar

import (
	"github.com/npillmayer/pegium-go"
	"github.com/npillmayer/pegium-go/state"
)

// unbounded marks Repetition.Max as having no upper limit.
const unbounded = -1

// Repetition is parameterized by (min, max) with specialized fast paths
// for {0,1}, {0,∞}, {1,∞}, {n,n} (§4.1.7). The loop detects non-consuming
// iterations (cursor unchanged after a successful match) and breaks to
// avoid infinite loops (§3 invariant 7, §9 open question on edit-only
// iterations).
type Repetition struct {
	Item     Element
	Min, Max int // Max == unbounded for no upper limit
}

var _ Element = (*Repetition)(nil)

// OptionRep is the {0,1} shape.
func OptionRep(e Element) Element { return &Repetition{Item: e, Min: 0, Max: 1} }

// Many is the {0,∞} shape.
func Many(e Element) Element { return &Repetition{Item: e, Min: 0, Max: unbounded} }

// Some is the {1,∞} shape.
func Some(e Element) Element { return &Repetition{Item: e, Min: 1, Max: unbounded} }

// Rep is the {n,n} (and general {min,max}) shape.
func Rep(e Element, min, max int) Element { return &Repetition{Item: e, Min: min, Max: max} }

func (r *Repetition) Kind() pegium.Kind { return pegium.KindRepetition }
func (r *Repetition) String() string {
	switch {
	case r.Min == 0 && r.Max == 1:
		return r.Item.String() + "?"
	case r.Min == 0 && r.Max == unbounded:
		return r.Item.String() + "*"
	case r.Min == 1 && r.Max == unbounded:
		return r.Item.String() + "+"
	default:
		return r.Item.String() + "{n,m}"
	}
}

func (r *Repetition) reachedMax(n int) bool {
	return r.Max != unbounded && n >= r.Max
}

func (r *Repetition) Terminal(input string, begin, end pegium.TextOffset) pegium.MatchResult {
	cursor := begin
	n := 0
	for !r.reachedMax(n) {
		res := r.Item.Terminal(input, cursor, end)
		if !res.Valid {
			break
		}
		if res.End == cursor { // zero-progress: stop to avoid an infinite loop
			n++
			break
		}
		cursor = res.End
		n++
	}
	return pegium.MatchResult{End: cursor, Valid: n >= r.Min}
}

func (r *Repetition) Rule(s *state.ParseState) bool {
	cp := saveRule(s)
	n := 0
	for !r.reachedMax(n) {
		before := s.Cursor
		icp := saveRule(s)
		if !r.Item.Rule(s) {
			restoreRule(s, icp)
			break
		}
		n++
		if s.Cursor == before { // pure zero-width match: stop, don't spin
			break
		}
	}
	if n < r.Min {
		restoreRule(s, cp)
		return false
	}
	return true
}

func (r *Repetition) Recover(s *state.RecoverState) bool {
	cp := saveRecover(s)
	n := 0
	// Strict pass first.
	for !r.reachedMax(n) {
		before := s.Cursor
		icp := saveRecover(s)
		if !r.Item.Rule(s.ParseState) {
			restoreRecover(s, icp)
			break
		}
		n++
		if s.Cursor == before {
			break
		}
	}
	if !s.AllowInsert && !s.AllowDelete {
		if n < r.Min {
			restoreRecover(s, cp)
			return false
		}
		return true
	}
	// Editable continuation: optional ({0,1}) and star/plus variants stop
	// probing as soon as a zero-progress recover occurs, to avoid runaway
	// insertions (§4.9); the ambient AllowInsert/AllowDelete flags are left
	// unchanged for the rest of the attempt. Progress is
	// judged purely by cursor movement: an edit (e.g. a forced zero-width
	// insertion) that leaves the cursor unchanged still ends the loop
	// after counting this one iteration (§9 open question).
	for !r.reachedMax(n) {
		before := s.Cursor
		icp := saveRecover(s)
		if !r.Item.Recover(s) {
			restoreRecover(s, icp)
			break
		}
		n++
		if s.Cursor == before {
			break
		}
	}
	if n < r.Min {
		restoreRecover(s, cp)
		return false
	}
	return true
}
