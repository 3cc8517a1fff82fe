/*
Package combinator is the grammar-authoring facade (§6): the functions here
are what a grammar author actually writes, gluing together package grammar's
element hierarchy, package skip's hidden-token policy and package ast's
materialization pass behind names that read like a grammar rather than a
tree of structs.

Kw/Lit build literals (Kw case-insensitive with word-boundary checking —
the keyword shape — Lit case-sensitive), CharIn builds a character range,
Dot/Eof/Eol cover the remaining built-in terminals, Seq/Choice/Unordered/
Many/Some/Option/Rep/And/Not mirror the grammar element constructors of the
same shape, and Assign/Append/EnableIf/Xref/New/Init wire up AST
materialization. TerminalRule/DataTypeRule/ParserRule declare rules; Call
references one, possibly before it is defined, supporting recursive and
mutually recursive grammars the same way the underlying rule assignment
operator does (§6 "the assignment operator (=) to reassign the rule's
body").
*/
package combinator

import (
	"github.com/npillmayer/pegium-go/grammar"
)

// Element is the grammar element type every combinator returns.
type Element = grammar.Element

// Lit builds a case-sensitive literal.
func Lit(s string) Element { return grammar.NewLiteral(s) }

// Kw builds a case-insensitive literal — the usual shape for a language
// keyword. It sets the literal's AllowInsert/AllowDelete fields, but
// Literal.Recover does not read them: which edits recovery may make is
// decided by the recover state's flags and budgets alone, exactly as for Lit.
func Kw(s string) Element {
	return &grammar.Literal{Text: s, Insensitive: true, AllowInsert: true, AllowDelete: true}
}

// CharIn builds a character range from a DSL spec such as "a-zA-Z_" or
// "^0-9" (negated). Panics on a malformed spec — grammars are built once at
// init time, so a bad spec is a programming error, not a runtime one.
func CharIn(spec string) Element { return grammar.MustCharacterRange(spec, false) }

// CharInFold is CharIn with ASCII case folding applied to both the table
// and the input byte before testing.
func CharInFold(spec string) Element { return grammar.MustCharacterRange(spec, true) }

// Dot matches any single UTF-8 codepoint.
func Dot() Element { return grammar.Dot }

// Eof matches the end of input and consumes nothing.
func Eof() Element { return grammar.Not(grammar.Dot) }

// Eol matches one newline sequence ("\r\n", "\n" or "\r").
func Eol() Element {
	return grammar.Choice(grammar.NewLiteral("\r\n"), grammar.NewLiteral("\n"), grammar.NewLiteral("\r"))
}

// Seq concatenates elements in order.
func Seq(items ...Element) Element { return grammar.Seq(items...) }

// Choice tries alternatives in order, first match wins.
func Choice(alts ...Element) Element { return grammar.Choice(alts...) }

// Unordered requires every item exactly once, in any order.
func Unordered(items ...Element) Element { return grammar.Unordered(items...) }

// Option is the {0,1} repetition.
func Option(e Element) Element { return grammar.OptionRep(e) }

// Many is the {0,∞} repetition.
func Many(e Element) Element { return grammar.Many(e) }

// Some is the {1,∞} repetition.
func Some(e Element) Element { return grammar.Some(e) }

// Rep is the general {min,max} repetition.
func Rep(e Element, min, max int) Element { return grammar.Rep(e, min, max) }

// ManySep is "many(e, sep)" sugar: zero or more e separated by sep,
// desugaring to (e (sep e)*)? (§6 "separator sugar").
func ManySep(e, sep Element) Element {
	return Option(Seq(e, Many(Seq(sep, e))))
}

// SomeSep is "some(e, sep)" sugar: one or more e separated by sep,
// desugaring to e (sep e)*.
func SomeSep(e, sep Element) Element {
	return Seq(e, Many(Seq(sep, e)))
}

// And is the "&e" lookahead predicate.
func And(e Element) Element { return grammar.And(e) }

// Not is the "!e" negative lookahead predicate.
func Not(e Element) Element { return grammar.Not(e) }

// Assign binds the matched value of sub onto feature with "=" semantics.
func Assign(feature string, sub Element) Element { return grammar.Assign(feature, sub) }

// Append binds the matched value of sub onto feature with "+=" semantics.
func Append(feature string, sub Element) Element { return grammar.AppendTo(feature, sub) }

// EnableIf sets feature to true iff sub matched, discarding sub's value.
func EnableIf(feature string, sub Element) Element { return grammar.EnableIf(feature, sub) }

// Xref marks sub's matched text as a cross-reference to be resolved at
// materialization time, not a plain value.
func Xref(sub Element) Element { return grammar.Xref(sub) }

// New allocates a fresh AST value of the given (informational) type name
// via factory, nesting the previously current value onto nestFeature if
// nestFeature is non-empty and a previous value exists — the
// left-recursion-elimination shape (§4.1.9).
func New(typeName string, factory func() interface{}, nestFeature string) Element {
	return grammar.NewAction(typeName, factory, nestFeature)
}

// Init replaces the current AST value with a fresh one from factory,
// without nesting the previous value anywhere; with a nil factory the
// current value is left as it is.
func Init(typeName string, factory func() interface{}) Element {
	return grammar.InitAction(typeName, factory)
}

// Call references target, which may still be undeclared (nil body) at the
// point Call is invoked — necessary for recursive and mutually recursive
// rule graphs; Target must be assigned a body before any parse runs.
func Call(target *grammar.Rule) Element { return grammar.Call(target) }

// TerminalRule declares a rule that matches in terminal mode only and
// contributes a single leaf CST node. conv may be nil for the plain-text
// default.
func TerminalRule(name string, body Element, conv grammar.Converter) *grammar.Rule {
	return grammar.NewTerminalRule(name, body, conv)
}

// DataTypeRule declares a rule that matches in rule mode (skipping hidden
// tokens between sub-elements) and contributes a composite CST subtree
// whose default string value concatenates visible leaf text.
func DataTypeRule(name string, body Element, conv grammar.Converter) *grammar.Rule {
	return grammar.NewDataTypeRule(name, body, conv)
}

// ParserRule declares a rule that matches in rule mode and whose CST
// subtree materializes, via New/Assign/Append/EnableIf children, into an
// AST value. SetBody must be called before any parse runs; New and
// Resolver may be set on the returned Rule directly.
func ParserRule(name string) *grammar.Rule { return grammar.NewParserRule(name) }
