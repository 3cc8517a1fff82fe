package combinator

import (
	"github.com/npillmayer/pegium-go"
	"github.com/npillmayer/pegium-go/skip"
)

// terminal adapts a grammar element into the type-erased skip.Terminal the
// skip package expects, so skipper construction never needs package skip's
// caller to depend on package grammar's internals — only on Element.
func terminal(e Element) skip.Terminal {
	return skip.Terminal{
		Element: e,
		Match: func(input string, begin pegium.TextOffset) pegium.MatchResult {
			return e.Terminal(input, begin, pegium.TextOffset(len(input)))
		},
	}
}

// SkipperBuilder is the fluent ignore/hide skipper-construction facade
// (§6).
type SkipperBuilder struct {
	b *skip.Builder
}

// NewSkipper starts building a skipper with the default force-insert
// policy.
func NewSkipper() *SkipperBuilder { return &SkipperBuilder{b: skip.NewBuilder()} }

// Ignore elides the given terminals entirely between tokens (no CST node).
func (sb *SkipperBuilder) Ignore(terminals ...Element) *SkipperBuilder {
	ts := make([]skip.Terminal, len(terminals))
	for i, t := range terminals {
		ts[i] = terminal(t)
	}
	sb.b.Ignore(ts...)
	return sb
}

// Hide keeps the given terminals in the CST (tagged hidden) between
// tokens.
func (sb *SkipperBuilder) Hide(terminals ...Element) *SkipperBuilder {
	ts := make([]skip.Terminal, len(terminals))
	for i, t := range terminals {
		ts[i] = terminal(t)
	}
	sb.b.Hide(ts...)
	return sb
}

// WithForcePolicy overrides the default canForceInsert policy.
func (sb *SkipperBuilder) WithForcePolicy(p skip.ForcePolicy) *SkipperBuilder {
	sb.b.WithForcePolicy(p)
	return sb
}

// Build finishes the skipper.
func (sb *SkipperBuilder) Build() *skip.Skipper { return sb.b.Build() }
