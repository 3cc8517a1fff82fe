package pegium

import "fmt"

// --- Text offsets and node identifiers --------------------------------

// TextOffset is a byte offset into the input text. Input size is limited
// to 2³²−1 bytes.
type TextOffset uint32

// NodeId identifies a node within a CST arena.
type NodeId uint32

// Span denotes a half-open range [Begin,End) of text offsets. A terminal
// match (MatchResult) records only its end offset, and a diagnostic only
// its offset, not a Span.
type Span struct {
	Begin TextOffset
	End   TextOffset
}

// MakeSpan creates a span from two offsets.
func MakeSpan(begin, end TextOffset) Span {
	return Span{Begin: begin, End: end}
}

// Len returns the length of the span.
func (s Span) Len() TextOffset {
	return s.End - s.Begin
}

// IsNull returns true for the zero-width, zero-origin span.
func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend grows s to also cover other.
func (s Span) Extend(other Span) Span {
	if other.Begin < s.Begin {
		s.Begin = other.Begin
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s.Begin, s.End)
}

// --- Grammar element identity -------------------------------------------

// Kind tags the variant of a grammar element. rule() and recover() are
// dispatched through the Element interface; Kind is read where the variant
// itself matters, e.g. a Rule choosing its terminal or composite path.
type Kind uint8

const (
	KindLiteral Kind = iota
	KindCharacterRange
	KindAnyCharacter
	KindGroup
	KindOrderedChoice
	KindUnorderedGroup
	KindRepetition
	KindAndPredicate
	KindNotPredicate
	KindRuleCall
	KindAssignment
	KindNewAction
	KindInitAction
	KindCrossReference
	KindTerminalRule
	KindDataTypeRule
	KindParserRule
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "Literal"
	case KindCharacterRange:
		return "CharacterRange"
	case KindAnyCharacter:
		return "AnyCharacter"
	case KindGroup:
		return "Group"
	case KindOrderedChoice:
		return "OrderedChoice"
	case KindUnorderedGroup:
		return "UnorderedGroup"
	case KindRepetition:
		return "Repetition"
	case KindAndPredicate:
		return "AndPredicate"
	case KindNotPredicate:
		return "NotPredicate"
	case KindRuleCall:
		return "RuleCall"
	case KindAssignment:
		return "Assignment"
	case KindNewAction:
		return "NewAction"
	case KindInitAction:
		return "InitAction"
	case KindCrossReference:
		return "CrossReference"
	case KindTerminalRule:
		return "TerminalRule"
	case KindDataTypeRule:
		return "DataTypeRule"
	case KindParserRule:
		return "ParserRule"
	}
	return "?"
}

// Element is the minimal identity every grammar element must expose. It is
// kept deliberately small (rather than living in package grammar) so that
// package cst can store a non-owning pointer to the producing element
// without importing package grammar — grammar imports cst, not the other
// way round.
type Element interface {
	Kind() Kind
	String() string
}

// MatchResult is returned by an element's terminal-mode matcher. Valid=false
// means the element did not match at the given position; End may point
// anywhere in between and is used purely for error reporting.
type MatchResult struct {
	End   TextOffset
	Valid bool
}
