package grammar

import (
	"github.com/npillmayer/pegium-go"
	"github.com/npillmayer/pegium-go/state"
)

// RuleCall is a non-owning reference to a Rule (§4.1.11). Its terminal()
// delegates to the referenced rule's terminal matcher; its rule()
// delegates to the rule's rule-mode matcher. Rules may call themselves and
// each other freely; recursion is supported up to the host stack.
type RuleCall struct {
	Target *Rule
}

var _ Element = (*RuleCall)(nil)

// Call references target. target may still be nil at construction time —
// it is filled in once the referenced Rule is declared — callers that need
// forward references should build the RuleCall first and set Target before
// any parse runs.
func Call(target *Rule) *RuleCall { return &RuleCall{Target: target} }

func (c *RuleCall) Kind() pegium.Kind { return pegium.KindRuleCall }
func (c *RuleCall) String() string {
	if c.Target == nil {
		return "<unresolved rule call>"
	}
	return c.Target.Name
}

func (c *RuleCall) requireTarget() *Rule {
	if c.Target == nil || c.Target.Body == nil {
		panic("grammar: RuleCall to an undefined rule (missing rule definition)")
	}
	return c.Target
}

func (c *RuleCall) Terminal(input string, begin, end pegium.TextOffset) pegium.MatchResult {
	return c.requireTarget().Terminal(input, begin, end)
}

func (c *RuleCall) Rule(s *state.ParseState) bool {
	return c.requireTarget().Rule(s)
}

func (c *RuleCall) Recover(s *state.RecoverState) bool {
	return c.requireTarget().Recover(s)
}
