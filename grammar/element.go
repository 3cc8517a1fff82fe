/*
Package grammar implements the grammar element hierarchy (§3, §4.1): tagged
variants — Literal, CharacterRange, AnyCharacter, Group, OrderedChoice,
UnorderedGroup, Repetition, And/NotPredicate, RuleCall, Assignment, Action,
CrossReference — each exposing terminal(), rule() and recover(), plus the
three Rule kinds (TerminalRule, DataTypeRule, ParserRule).

Elements are immutable and stateless once built and may be shared across
concurrent parses of different inputs (§5).
*/
package grammar

import (
	"github.com/npillmayer/pegium-go"
	"github.com/npillmayer/pegium-go/state"
	"github.com/npillmayer/pegium-go/trace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pegium.grammar'.
func tracer() tracing.Trace {
	return trace.For("grammar")
}

// Element is the common contract every grammar element implements (§4.1).
//
// terminal is a pure, side-effect-free matcher used inside terminal rules
// and lookahead predicates; it allocates nothing and never touches state.
//
// Rule is the productive matcher used inside parser rules: on success it
// advances state and appends CST nodes, returning true; on failure it
// rewinds state to its entry position and returns false.
//
// Recover is the recovery-phase variant: same contract, plus the right to
// perform bounded edits (§4.9).
type Element interface {
	pegium.Element
	Terminal(input string, begin, end pegium.TextOffset) pegium.MatchResult
	Rule(s *state.ParseState) bool
	Recover(s *state.RecoverState) bool
}

// AssignOp is the operator an Assignment binds with (§3 invariant 4).
type AssignOp uint8

const (
	OpAssign AssignOp = iota
	OpAppend
	OpEnableIf
)

func (op AssignOp) String() string {
	switch op {
	case OpAssign:
		return "="
	case OpAppend:
		return "+="
	case OpEnableIf:
		return "?="
	}
	return "?"
}

// checkpointSave/restore helpers shared by composite elements' rule()/
// recover() implementations.
func saveRule(s *state.ParseState) state.Checkpoint { return s.Mark() }

func restoreRule(s *state.ParseState, cp state.Checkpoint) { s.Rewind(cp) }

func saveRecover(s *state.RecoverState) state.RecoverCheckpoint { return s.Mark() }

func restoreRecover(s *state.RecoverState, cp state.RecoverCheckpoint) { s.Rewind(cp) }
