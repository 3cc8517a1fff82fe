package grammar

import (
	"github.com/emirpasic/gods/sets/hashset"

	"github.com/npillmayer/pegium-go"
	"github.com/npillmayer/pegium-go/state"
)

// UnorderedGroup is "A & B & C": each element must match exactly once, in
// any order (§4.1.6). The loop repeats until no element makes progress;
// succeeds iff all have been matched, otherwise fully rewinds.
//
// matched tracks, by index, which elements have already been consumed in
// the current attempt; a gods/hashset gives the "repeat until no element
// makes progress" loop an O(1) membership test without a parallel []bool
// allocation per attempt.
type UnorderedGroup struct {
	Items []Element
}

var _ Element = (*UnorderedGroup)(nil)

// Unordered builds an UnorderedGroup.
func Unordered(items ...Element) Element {
	if len(items) == 1 {
		return items[0]
	}
	return &UnorderedGroup{Items: items}
}

func (u *UnorderedGroup) Kind() pegium.Kind { return pegium.KindUnorderedGroup }
func (u *UnorderedGroup) String() string    { return "(" + joinElements(u.Items, " & ") + ")" }

func (u *UnorderedGroup) Terminal(input string, begin, end pegium.TextOffset) pegium.MatchResult {
	// Terminal-mode: the same greedy progress loop used by rule(), without
	// side effects. Each round takes the first unmatched item that matches
	// at the cursor; other orders are not tried.
	cursor := begin
	matched := hashset.New()
	for matched.Size() < len(u.Items) {
		progressed := false
		for i, it := range u.Items {
			if matched.Contains(i) {
				continue
			}
			res := it.Terminal(input, cursor, end)
			if res.Valid {
				cursor = res.End
				matched.Add(i)
				progressed = true
				break
			}
		}
		if !progressed {
			return pegium.MatchResult{End: cursor, Valid: false}
		}
	}
	return pegium.MatchResult{End: cursor, Valid: true}
}

func (u *UnorderedGroup) Rule(s *state.ParseState) bool {
	cp := saveRule(s)
	matched := hashset.New()
	for matched.Size() < len(u.Items) {
		progressed := false
		for i, it := range u.Items {
			if matched.Contains(i) {
				continue
			}
			icp := saveRule(s)
			if it.Rule(s) {
				matched.Add(i)
				progressed = true
				break
			}
			restoreRule(s, icp)
		}
		if !progressed {
			restoreRule(s, cp)
			return false
		}
	}
	return true
}

// Recover runs a strict pass first, then an editable pass second, each
// being the same repeat-until-no-progress loop (§4.9). Open question
// (§9): elements that required edits during the strict phase are not
// re-attempted in the editable phase once matched — once matched, an
// index is never revisited, matching the "each element exactly once"
// invariant most directly.
func (u *UnorderedGroup) Recover(s *state.RecoverState) bool {
	cp := saveRecover(s)
	matched := hashset.New()
	// Strict pass: no edits.
	for {
		progressed := false
		for i, it := range u.Items {
			if matched.Contains(i) {
				continue
			}
			icp := saveRecover(s)
			if it.Rule(s.ParseState) {
				matched.Add(i)
				progressed = true
				break
			}
			restoreRecover(s, icp)
		}
		if !progressed {
			break
		}
	}
	if matched.Size() == len(u.Items) {
		return true
	}
	if !s.AllowInsert && !s.AllowDelete {
		restoreRecover(s, cp)
		return false
	}
	// Editable pass: continue from wherever the strict pass left off.
	for matched.Size() < len(u.Items) {
		progressed := false
		for i, it := range u.Items {
			if matched.Contains(i) {
				continue
			}
			icp := saveRecover(s)
			if it.Recover(s) {
				matched.Add(i)
				progressed = true
				break
			}
			restoreRecover(s, icp)
		}
		if !progressed {
			restoreRecover(s, cp)
			return false
		}
	}
	return true
}
