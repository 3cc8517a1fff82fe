package grammar

import (
	"github.com/npillmayer/pegium-go"
	"github.com/npillmayer/pegium-go/state"
)

// CrossReference matches reference-text syntax (commonly a RuleCall to an
// identifier DataTypeRule) and tags the resulting CST node as itself, so
// that materialization (package ast) recognizes the span as "this is text
// to resolve later", not a plain feature value (§4.1.13). The actual
// resolution happens off the matched text at materialization time, via a
// grammar.Reference installed with the enclosing rule's Resolver.
type CrossReference struct {
	Sub Element
}

var _ Element = (*CrossReference)(nil)

func Xref(sub Element) *CrossReference { return &CrossReference{Sub: sub} }

func (x *CrossReference) Kind() pegium.Kind { return pegium.KindCrossReference }
func (x *CrossReference) String() string    { return "@" + x.Sub.String() }

func (x *CrossReference) Terminal(input string, begin, end pegium.TextOffset) pegium.MatchResult {
	return x.Sub.Terminal(input, begin, end)
}

func (x *CrossReference) Rule(s *state.ParseState) bool {
	cp := saveRule(s)
	nextId := s.Builder.NextAllocatedId()
	if !x.Sub.Rule(s) {
		restoreRule(s, cp)
		return false
	}
	s.Builder.OverrideGrammarElement(nextId, x)
	return true
}

func (x *CrossReference) Recover(s *state.RecoverState) bool {
	cp := saveRecover(s)
	nextId := s.Builder.NextAllocatedId()
	if !x.Sub.Recover(s) {
		restoreRecover(s, cp)
		return false
	}
	s.Builder.OverrideGrammarElement(nextId, x)
	return true
}
