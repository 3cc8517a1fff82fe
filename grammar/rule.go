package grammar

import (
	"strconv"

	"github.com/npillmayer/pegium-go"
	"github.com/npillmayer/pegium-go/state"
)

// Converter turns the matched text of a TerminalRule or DataTypeRule into a
// typed value (§4.1.12). The default converter returns the matched text
// unchanged (the "string"/"string_view" case); bool, integer and float
// results require a converter such as BoolConverter, IntConverter or
// FloatConverter below — "char and other types require a user-supplied
// converter".
type Converter func(text string) (interface{}, error)

func defaultConverter(text string) (interface{}, error) { return text, nil }

// BoolConverter understands the single literal "true" (anything else is
// false), mirroring the "true"-only boolean convention of most PEG grammars
// that spell false by the absence of a keyword.
func BoolConverter(text string) (interface{}, error) { return text == "true", nil }

// IntConverter parses a signed base-10 integer.
func IntConverter(text string) (interface{}, error) { return strconv.ParseInt(text, 10, 64) }

// UintConverter parses an unsigned base-10 integer.
func UintConverter(text string) (interface{}, error) { return strconv.ParseUint(text, 10, 64) }

// FloatConverter parses a base-10 floating point number.
func FloatConverter(text string) (interface{}, error) { return strconv.ParseFloat(text, 64) }

// Rule is one of the three rule kinds tagged by its Kind (§3, §4.1.12):
//
//   - TerminalRule: matches in terminal mode only; its CST contribution is
//     a single leaf node tagged with the rule itself.
//   - DataTypeRule: matches in rule mode (hidden nodes are skipped between
//     sub-elements), producing a composite subtree whose default string
//     value concatenates the text of its visible leaves, preferring a
//     child rule's own converted value when one is present.
//   - ParserRule: matches in rule mode, producing a subtree rooted at the
//     rule node; materialization (ast package) walks this subtree to build
//     an AST value via the rule's Assignment/Action children.
//
// Body is settable after construction (via SetBody) so that mutually and
// self-recursive grammars can build a RuleCall referencing a Rule before
// its body is known — mirroring the host language's assignment operator
// "=" used to (re)bind a rule's body (§6).
type Rule struct {
	Name string
	kind pegium.Kind
	Body Element

	// Converter applies to TerminalRule and DataTypeRule matches only; nil
	// means defaultConverter (plain matched text).
	Converter Converter

	// New constructs the zero-value AST node for a ParserRule before
	// materialization assigns its features (§4.8). When nil, materialization
	// collects assigned features into a map[string]interface{}, or takes the
	// value of a bare nested rule call as the result.
	New func() interface{}

	// Resolver is the host-grammar-supplied cross-reference lookup used
	// when materializing CrossReference assignments found directly inside
	// this rule's own body (§4.7). It is installed by the grammar author,
	// not by the engine; nested ParserRule children install their own.
	Resolver ReferenceInfo
}

var _ Element = (*Rule)(nil)

// NewTerminalRule builds a TerminalRule. conv may be nil for the default
// (string) converter.
func NewTerminalRule(name string, body Element, conv Converter) *Rule {
	return &Rule{Name: name, kind: pegium.KindTerminalRule, Body: body, Converter: conv}
}

// NewDataTypeRule builds a DataTypeRule. conv may be nil for the default
// (text-concatenating) converter.
func NewDataTypeRule(name string, body Element, conv Converter) *Rule {
	return &Rule{Name: name, kind: pegium.KindDataTypeRule, Body: body, Converter: conv}
}

// NewParserRule builds a ParserRule with no body yet; call SetBody once the
// grammar's recursive structure is fully declared.
func NewParserRule(name string) *Rule {
	return &Rule{Name: name, kind: pegium.KindParserRule}
}

// SetBody (re)binds a rule's body, supporting forward references built via
// Call(rule) before the rule's grammar is fully declared.
func (r *Rule) SetBody(e Element) { r.Body = e }

// IsTerminalRule, IsDataTypeRule and IsParserRule classify the rule kind.
func (r *Rule) IsTerminalRule() bool { return r.kind == pegium.KindTerminalRule }
func (r *Rule) IsDataTypeRule() bool { return r.kind == pegium.KindDataTypeRule }
func (r *Rule) IsParserRule() bool   { return r.kind == pegium.KindParserRule }

func (r *Rule) Kind() pegium.Kind { return r.kind }
func (r *Rule) String() string    { return r.Name }

func (r *Rule) converter() Converter {
	if r.Converter != nil {
		return r.Converter
	}
	return defaultConverter
}

// Convert applies the rule's converter (or the default) to matched text.
// Exposed for the ast package, which calls it when materializing
// TerminalRule/DataTypeRule values into AST features (§4.8).
func (r *Rule) Convert(text string) (interface{}, error) { return r.converter()(text) }

func (r *Rule) requireBody() Element {
	if r.Body == nil {
		panic("grammar: rule \"" + r.Name + "\" has no body (forward reference never resolved)")
	}
	return r.Body
}

func (r *Rule) Terminal(input string, begin, end pegium.TextOffset) pegium.MatchResult {
	return r.requireBody().Terminal(input, begin, end)
}

// Rule dispatches on the rule's kind. TerminalRule produces a single leaf
// node; DataTypeRule and ParserRule produce a subtree rooted at the rule
// node, built by entering before and exiting after the body matches.
func (r *Rule) Rule(s *state.ParseState) bool {
	if r.kind == pegium.KindTerminalRule {
		return r.ruleAsTerminal(s)
	}
	return r.ruleAsComposite(s)
}

func (r *Rule) ruleAsTerminal(s *state.ParseState) bool {
	begin := s.Cursor
	res := r.requireBody().Terminal(s.Input, begin, s.End())
	if !res.Valid {
		return false
	}
	s.Advance(res.End)
	s.Leaf(begin, r, false)
	s.SkipHiddenNodes()
	return true
}

func (r *Rule) ruleAsComposite(s *state.ParseState) bool {
	key, ok := s.EnterGuard(r.Name)
	if !ok {
		panic("grammar: rule \"" + r.Name + "\" left-recurses without consuming input")
	}
	defer s.ExitGuard(key)
	cp := saveRule(s)
	s.Enter()
	if !r.requireBody().Rule(s) {
		restoreRule(s, cp)
		return false
	}
	s.Exit(r)
	s.SkipHiddenNodes()
	return true
}

// Recover dispatches on rule kind. Per the parser-entry algorithm (§4.6),
// only ParserRule ever runs an editable phase when it is itself the
// recovery entry point. As a RuleCall target invoked from within a larger
// rule's own recover(), a TerminalRule matches its body in terminal mode
// only and makes no edits at all; DataTypeRule and ParserRule run their
// body's Recover, so their edits are exactly those of their body elements,
// and they shape the CST the same way rule() does.
func (r *Rule) Recover(s *state.RecoverState) bool {
	if r.kind == pegium.KindTerminalRule {
		return r.recoverAsTerminal(s)
	}
	return r.recoverAsComposite(s)
}

func (r *Rule) recoverAsTerminal(s *state.RecoverState) bool {
	cp := saveRecover(s)
	begin := s.Cursor
	res := r.requireBody().Terminal(s.Input, begin, s.End())
	if res.Valid {
		s.Advance(res.End)
		s.Leaf(begin, r, false)
		s.SkipHiddenNodes()
		return true
	}
	restoreRecover(s, cp)
	return false
}

func (r *Rule) recoverAsComposite(s *state.RecoverState) bool {
	key, ok := s.EnterGuard(r.Name)
	if !ok {
		panic("grammar: rule \"" + r.Name + "\" left-recurses without consuming input")
	}
	defer s.ExitGuard(key)
	cp := saveRecover(s)
	s.Enter()
	if !r.requireBody().Recover(s) {
		restoreRecover(s, cp)
		return false
	}
	s.Exit(r)
	s.SkipHiddenNodes()
	return true
}
