package grammar

import (
	"github.com/npillmayer/pegium-go"
	"github.com/npillmayer/pegium-go/state"
)

// Group is an ordered concatenation of N>=2 elements: A + B + C matches
// each in order (§4.1.4). Checkpoint at entry; on any sub-failure rewind
// and return false. Each sub-element is responsible for its own post-match
// hidden skipping in rule().
type Group struct {
	Items []Element
}

var _ Element = (*Group)(nil)

// Seq builds a Group, flattening nested Groups so that A+B+C is a single
// N-ary tuple regardless of how it was associated (mirrors OrderedChoice's
// flattening requirement in §4.1.5, applied symmetrically).
func Seq(items ...Element) Element {
	flat := make([]Element, 0, len(items))
	for _, it := range items {
		if g, ok := it.(*Group); ok {
			flat = append(flat, g.Items...)
		} else {
			flat = append(flat, it)
		}
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return &Group{Items: flat}
}

func (g *Group) Kind() pegium.Kind { return pegium.KindGroup }
func (g *Group) String() string    { return joinElements(g.Items, " ") }

func (g *Group) Terminal(input string, begin, end pegium.TextOffset) pegium.MatchResult {
	cursor := begin
	for _, it := range g.Items {
		res := it.Terminal(input, cursor, end)
		if !res.Valid {
			return pegium.MatchResult{End: res.End, Valid: false}
		}
		cursor = res.End
	}
	return pegium.MatchResult{End: cursor, Valid: true}
}

func (g *Group) Rule(s *state.ParseState) bool {
	cp := saveRule(s)
	for _, it := range g.Items {
		if !it.Rule(s) {
			restoreRule(s, cp)
			return false
		}
	}
	return true
}

func (g *Group) Recover(s *state.RecoverState) bool {
	cp := saveRecover(s)
	// Strict first.
	strictOk := true
	strictCp := saveRecover(s)
	for _, it := range g.Items {
		if !it.Rule(s.ParseState) {
			strictOk = false
			break
		}
	}
	if strictOk {
		return true
	}
	restoreRecover(s, strictCp)
	if !s.AllowInsert && !s.AllowDelete {
		restoreRecover(s, cp)
		return false
	}
	// Editable: replay each sub-element's recover() in order.
	for _, it := range g.Items {
		if !it.Recover(s) {
			restoreRecover(s, cp)
			return false
		}
	}
	return true
}

func joinElements(items []Element, sep string) string {
	out := ""
	for i, it := range items {
		if i > 0 {
			out += sep
		}
		out += it.String()
	}
	return out
}
