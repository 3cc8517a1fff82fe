/*
Package skip implements the composed hidden+ignored terminal skipper
(§4.3). It is type-erased over the grammar element hierarchy: a Terminal is
just a matcher closure plus an element identity, so package skip has no
dependency on package grammar — the combinator facade is what adapts real
grammar elements into skip.Terminal values.
*/
package skip

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/npillmayer/pegium-go"
	"github.com/npillmayer/pegium-go/cst"
	"github.com/npillmayer/pegium-go/trace"
)

func tracer() interface {
	Debugf(string, ...interface{})
} {
	return trace.For("skip")
}

// Terminal is one hidden or ignored terminal the skipper knows how to try.
// Match is a terminal-mode matcher: given the input and a cursor it returns
// the end offset of the match and whether it matched.
type Terminal struct {
	Element pegium.Element
	Match   func(input string, begin pegium.TextOffset) pegium.MatchResult
}

// ForcePolicy decides whether a given element may be force-inserted during
// recovery (§4.1.1 "Forced insertion", §4.3 canForceInsert).
type ForcePolicy func(elem pegium.Element) bool

// literalTexter is implemented by every grammar.Literal, so the default
// force-insert policy can recognize single-character punctuation literals
// without importing package grammar.
type literalTexter interface {
	LiteralText() string
	CaseSensitive() bool
}

// terminalRuleMarker is implemented by TerminalRule so the default policy
// can recognize "any terminal rule" per §4.1.1.
type terminalRuleMarker interface {
	IsTerminalRule() bool
}

// defaultForceInsertPunctuation is the default single-character punctuation
// set the skipper allows to be force-inserted (§4.1.1, §6 glossary
// "Force-insert").
var defaultForceInsertPunctuation = map[string]bool{
	")": true, "]": true, "}": true, ",": true, ";": true,
}

// DefaultForcePolicy accepts any TerminalRule and any single-character
// literal in {) ] } , ;}.
func DefaultForcePolicy(elem pegium.Element) bool {
	if tr, ok := elem.(terminalRuleMarker); ok && tr.IsTerminalRule() {
		return true
	}
	if lit, ok := elem.(literalTexter); ok {
		return defaultForceInsertPunctuation[lit.LiteralText()]
	}
	return false
}

// Skipper is the composed matcher for hidden and ignored terminals, applied
// between tokens in rule mode.
type Skipper struct {
	ignored     []Terminal
	hidden      []Terminal
	forcePolicy ForcePolicy
}

// Builder is the fluent `.ignore(...).hide(...).build()` constructor (§6).
type Builder struct {
	s Skipper
}

// NewBuilder starts building a skipper with the default force-insert
// policy.
func NewBuilder() *Builder {
	return &Builder{s: Skipper{forcePolicy: DefaultForcePolicy}}
}

// Ignore adds terminals that are fully elided (no CST node). A terminal
// already registered (by its element's String()) is skipped, so composing
// skippers from shared fragments (e.g. a common whitespace terminal reused
// across several grammars) doesn't duplicate the scan.
func (b *Builder) Ignore(terminals ...Terminal) *Builder {
	b.s.ignored = appendNewTerminals(b.s.ignored, terminals)
	return b
}

// Hide adds terminals that are kept in the CST, tagged hidden. Duplicates
// are elided the same way Ignore elides them.
func (b *Builder) Hide(terminals ...Terminal) *Builder {
	b.s.hidden = appendNewTerminals(b.s.hidden, terminals)
	return b
}

func appendNewTerminals(existing []Terminal, additions []Terminal) []Terminal {
	for _, t := range additions {
		label := t.Element.String()
		if slices.ContainsFunc(existing, func(e Terminal) bool { return e.Element.String() == label }) {
			continue
		}
		existing = append(existing, t)
	}
	return existing
}

// WithForcePolicy overrides the default canForceInsert policy.
func (b *Builder) WithForcePolicy(p ForcePolicy) *Builder {
	b.s.forcePolicy = p
	return b
}

// Build finishes the skipper.
func (b *Builder) Build() *Skipper {
	return &b.s
}

// Empty is a no-op skipper — useful for terminal-mode-only grammars.
func Empty() *Skipper {
	return NewBuilder().Build()
}

// CanForceInsert exposes the configured force-insert policy.
func (sk *Skipper) CanForceInsert(elem pegium.Element) bool {
	if sk == nil || sk.forcePolicy == nil {
		return DefaultForcePolicy(elem)
	}
	return sk.forcePolicy(elem)
}

// SkipHiddenNodes alternately (a) consumes as many ignored terminals as
// match, then (b) attempts exactly one hidden terminal and, if it matches,
// emits a hidden leaf; it loops until neither applies. Returns the new
// cursor.
func (sk *Skipper) SkipHiddenNodes(input string, begin pegium.TextOffset, b *cst.Builder) pegium.TextOffset {
	if sk == nil {
		return begin
	}
	cursor := begin
	for {
		progressed := false
		for {
			advanced := false
			for _, ig := range sk.ignored {
				res := ig.Match(input, cursor)
				if res.Valid {
					if res.End == cursor {
						panic(fmt.Sprintf("skip: ignored terminal %v matched zero bytes at %d", ig.Element, cursor))
					}
					cursor = res.End
					advanced = true
					progressed = true
					break // restart ignored scan from the top, in declared order
				}
			}
			if !advanced {
				break
			}
		}
		for _, h := range sk.hidden {
			res := h.Match(input, cursor)
			if res.Valid {
				if res.End == cursor {
					panic(fmt.Sprintf("skip: hidden terminal %v matched zero bytes at %d", h.Element, cursor))
				}
				b.Leaf(cursor, res.End, h.Element, true, false)
				cursor = res.End
				progressed = true
				break
			}
		}
		if !progressed {
			break
		}
	}
	return cursor
}
