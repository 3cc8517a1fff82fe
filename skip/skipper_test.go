package skip

import (
	"testing"

	"github.com/npillmayer/pegium-go"
	"github.com/npillmayer/pegium-go/cst"
)

type punctLiteral struct {
	text string
}

func (p punctLiteral) Kind() pegium.Kind       { return pegium.KindLiteral }
func (p punctLiteral) String() string          { return p.text }
func (p punctLiteral) LiteralText() string     { return p.text }
func (p punctLiteral) CaseSensitive() bool     { return true }

func literalTerminal(text string) Terminal {
	elem := punctLiteral{text: text}
	return Terminal{
		Element: elem,
		Match: func(input string, begin pegium.TextOffset) pegium.MatchResult {
			end := int(begin) + len(text)
			if end <= len(input) && input[begin:end] == text {
				return pegium.MatchResult{End: pegium.TextOffset(end), Valid: true}
			}
			return pegium.MatchResult{Valid: false}
		},
	}
}

func whitespaceTerminal() Terminal {
	return Terminal{
		Element: punctLiteral{text: "ws"},
		Match: func(input string, begin pegium.TextOffset) pegium.MatchResult {
			end := begin
			for int(end) < len(input) && (input[end] == ' ' || input[end] == '\t') {
				end++
			}
			if end == begin {
				return pegium.MatchResult{Valid: false}
			}
			return pegium.MatchResult{End: end, Valid: true}
		},
	}
}

func TestSkipperIgnoresWhitespace(t *testing.T) {
	sk := NewBuilder().Ignore(whitespaceTerminal()).Build()
	b := cst.NewBuilder("   x")
	end := sk.SkipHiddenNodes("   x", 0, b)
	if end != 3 {
		t.Errorf("expected cursor at 3, got %d", end)
	}
	if b.Root().Len() != 0 {
		t.Error("ignored terminals must not produce a CST node")
	}
}

func TestSkipperHidesButKeepsNode(t *testing.T) {
	sk := NewBuilder().Hide(literalTerminal("//c")).Build()
	b := cst.NewBuilder("//cx")
	end := sk.SkipHiddenNodes("//cx", 0, b)
	if end != 3 {
		t.Errorf("expected cursor at 3, got %d", end)
	}
	if b.Root().Len() != 1 {
		t.Fatalf("expected exactly one hidden node, got %d", b.Root().Len())
	}
	node, _ := b.Root().Root()
	if !node.IsHidden() {
		t.Error("expected the node to be tagged hidden")
	}
}

func TestSkipperIgnoreDedupesRepeatedTerminal(t *testing.T) {
	b := NewBuilder().Ignore(whitespaceTerminal()).Ignore(whitespaceTerminal())
	if len(b.s.ignored) != 1 {
		t.Errorf("expected a repeated Ignore registration to be deduped, got %d entries", len(b.s.ignored))
	}
}

func TestDefaultForcePolicyPunctuation(t *testing.T) {
	if !DefaultForcePolicy(punctLiteral{text: ")"}) {
		t.Error("expected ')' to be force-insertable by default")
	}
	if DefaultForcePolicy(punctLiteral{text: "x"}) {
		t.Error("expected an ordinary letter literal to not be force-insertable by default")
	}
}

func TestEmptySkipperIsNoop(t *testing.T) {
	sk := Empty()
	b := cst.NewBuilder("  x")
	end := sk.SkipHiddenNodes("  x", 0, b)
	if end != 0 {
		t.Errorf("expected the empty skipper to consume nothing, got end=%d", end)
	}
}
