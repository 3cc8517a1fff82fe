package grammar

import (
	"github.com/npillmayer/pegium-go"
	"github.com/npillmayer/pegium-go/state"
)

// ActionMode distinguishes the two action flavors (§3, §4.1.9).
type ActionMode uint8

const (
	// ActionNew allocates a fresh AST value via Factory and makes it the
	// materializer's "current" value; if NestFeature is non-empty, the
	// value that was "current" immediately before this action fires is
	// assigned onto the new value's NestFeature first — the standard
	// left-recursion-elimination shape: "Multiplicative (('+'|'-')
	// New('left') Assign('op', ...) Assign('right', Multiplicative))*"
	// rewrites a left-recursive sum into a right-nested tree of binary
	// nodes, each holding the previous result as its left child.
	ActionNew ActionMode = iota
	// ActionInit replaces the "current" value with a fresh one from
	// Factory without nesting anything, even when a current value (for
	// instance from Rule.New) already exists; with a nil Factory the
	// current value is left unchanged.
	ActionInit
)

func (m ActionMode) String() string {
	if m == ActionInit {
		return "init"
	}
	return "new"
}

// Action is a zero-width CST marker consumed only during materialization
// (package ast); it never advances the cursor and always succeeds, in
// either terminal, rule or recovery mode — it carries no grammar to match,
// only an instruction for the AST-building pass.
type Action struct {
	Mode        ActionMode
	TypeName    string
	Factory     func() interface{}
	NestFeature string // only meaningful when Mode == ActionNew
}

var _ Element = (*Action)(nil)

// NewAction builds an ActionNew marker. nestFeature may be empty if the
// previous current value (if any) should simply be discarded rather than
// nested.
func NewAction(typeName string, factory func() interface{}, nestFeature string) *Action {
	return &Action{Mode: ActionNew, TypeName: typeName, Factory: factory, NestFeature: nestFeature}
}

// InitAction builds an ActionInit marker.
func InitAction(typeName string, factory func() interface{}) *Action {
	return &Action{Mode: ActionInit, TypeName: typeName, Factory: factory}
}

func (a *Action) Kind() pegium.Kind {
	if a.Mode == ActionInit {
		return pegium.KindInitAction
	}
	return pegium.KindNewAction
}

func (a *Action) String() string { return a.Mode.String() + "<" + a.TypeName + ">()" }

func (a *Action) Terminal(input string, begin, end pegium.TextOffset) pegium.MatchResult {
	return pegium.MatchResult{End: begin, Valid: true}
}

func (a *Action) Rule(s *state.ParseState) bool {
	// Not hidden: an Action is a materialization-only marker, not a
	// skip-inserted artifact, and applyAction (package ast) needs to see
	// it in VisibleChildren().
	s.Leaf(s.Cursor, a, false)
	return true
}

func (a *Action) Recover(s *state.RecoverState) bool {
	s.Leaf(s.Cursor, a, false)
	return true
}
