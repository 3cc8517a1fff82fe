package grammar

import (
	"github.com/npillmayer/pegium-go"
	"github.com/npillmayer/pegium-go/state"
)

// Assignment binds a matched sub-element's value to a named feature on the
// enclosing ParserRule's AST value (§3 invariant 4, §4.1.10). Three
// operators: "=" replaces the feature, "+=" appends to a slice feature,
// "?=" sets a boolean feature to true iff the sub-element matched at all
// (the matched text itself is discarded).
//
// CST shaping is dual, matching how materialization (package ast) needs to
// walk back from a feature to its value:
//
//   - when Sub is an OrderedChoice, the alternative that wins may produce a
//     different shape (or zero nodes) depending on which alternative
//     matched, so Assignment wraps the match in its own Enter/Exit pair,
//     giving the feature a dedicated CST node to hang off regardless of
//     which alternative fired;
//   - otherwise Sub produces exactly one fresh top-level CST node when it
//     matches (a literal, a character range, a rule call, a repetition of
//     such), so Assignment simply retags that node's grammar element to
//     itself via OverrideGrammarElement — cheaper, no extra node.
type Assignment struct {
	Feature string
	Op      AssignOp
	Sub     Element
}

var _ Element = (*Assignment)(nil)

func Assign(feature string, sub Element) *Assignment {
	return &Assignment{Feature: feature, Op: OpAssign, Sub: sub}
}

func AppendTo(feature string, sub Element) *Assignment {
	return &Assignment{Feature: feature, Op: OpAppend, Sub: sub}
}

func EnableIf(feature string, sub Element) *Assignment {
	return &Assignment{Feature: feature, Op: OpEnableIf, Sub: sub}
}

func (a *Assignment) Kind() pegium.Kind { return pegium.KindAssignment }
func (a *Assignment) String() string    { return a.Feature + a.Op.String() + a.Sub.String() }

func (a *Assignment) Terminal(input string, begin, end pegium.TextOffset) pegium.MatchResult {
	return a.Sub.Terminal(input, begin, end)
}

func (a *Assignment) wrapsChoice() bool {
	_, ok := a.Sub.(*OrderedChoice)
	return ok
}

// assignedTag replaces a retagged node's grammar element, but keeps the
// element that actually produced it reachable — materialization (package
// ast) needs to know whether the value beneath an Assign("feature", ...)
// came from a nested rule call, a cross-reference, or a plain terminal, and
// OverrideGrammarElement alone would erase that distinction.
type assignedTag struct {
	assign   *Assignment
	produced pegium.Element
}

var _ AssignedElement = (*assignedTag)(nil)

func (t *assignedTag) Kind() pegium.Kind        { return pegium.KindAssignment }
func (t *assignedTag) String() string           { return t.assign.String() }
func (t *assignedTag) Assignment() *Assignment  { return t.assign }
func (t *assignedTag) Produced() pegium.Element { return t.produced }

// AssignedElement is implemented by a retagged node's element, letting
// materialization recover both the owning Assignment and the element that
// actually produced the node (§4.1.10, §4.8).
type AssignedElement interface {
	pegium.Element
	Assignment() *Assignment
	Produced() pegium.Element
}

func (a *Assignment) Rule(s *state.ParseState) bool {
	if a.wrapsChoice() {
		return a.ruleWrapped(s)
	}
	return a.ruleRetagged(s)
}

func (a *Assignment) ruleWrapped(s *state.ParseState) bool {
	cp := saveRule(s)
	s.Enter()
	if !a.Sub.Rule(s) {
		restoreRule(s, cp)
		return false
	}
	s.Exit(a)
	return true
}

func (a *Assignment) ruleRetagged(s *state.ParseState) bool {
	cp := saveRule(s)
	nextId := s.Builder.NextAllocatedId()
	if !a.Sub.Rule(s) {
		restoreRule(s, cp)
		return false
	}
	produced := s.Builder.Root().Node(nextId).Element()
	s.Builder.OverrideGrammarElement(nextId, &assignedTag{assign: a, produced: produced})
	return true
}

func (a *Assignment) Recover(s *state.RecoverState) bool {
	if a.wrapsChoice() {
		return a.recoverWrapped(s)
	}
	return a.recoverRetagged(s)
}

func (a *Assignment) recoverWrapped(s *state.RecoverState) bool {
	cp := saveRecover(s)
	s.Enter()
	if !a.Sub.Recover(s) {
		restoreRecover(s, cp)
		return false
	}
	s.Exit(a)
	return true
}

func (a *Assignment) recoverRetagged(s *state.RecoverState) bool {
	cp := saveRecover(s)
	nextId := s.Builder.NextAllocatedId()
	if !a.Sub.Recover(s) {
		restoreRecover(s, cp)
		return false
	}
	produced := s.Builder.Root().Node(nextId).Element()
	s.Builder.OverrideGrammarElement(nextId, &assignedTag{assign: a, produced: produced})
	return true
}
