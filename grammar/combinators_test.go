package grammar

import (
	"testing"

	"github.com/npillmayer/pegium-go/state"
)

func TestChoiceFirstMatchWins(t *testing.T) {
	c := Choice(NewLiteral("foo"), NewLiteral("foobar"))
	s := parseState("foobar")
	if !c.Rule(s) {
		t.Fatal("expected the first matching alternative to win")
	}
	if s.Cursor != 3 {
		t.Errorf("expected cursor at 3 (stopping at \"foo\"), got %d", s.Cursor)
	}
}

func TestChoiceFlattensNestedChoices(t *testing.T) {
	c := Choice(Choice(NewLiteral("a"), NewLiteral("b")), NewLiteral("c"))
	oc, ok := c.(*OrderedChoice)
	if !ok {
		t.Fatal("expected Choice to produce an *OrderedChoice")
	}
	if len(oc.Alts) != 3 {
		t.Errorf("expected nested choices flattened into 3 alternatives, got %d", len(oc.Alts))
	}
}

func TestChoiceSingleAltUnwraps(t *testing.T) {
	c := Choice(NewLiteral("a"))
	if _, ok := c.(*OrderedChoice); ok {
		t.Error("expected a single alternative to not be wrapped in *OrderedChoice")
	}
}

func TestChoiceRewindsOnFailedAlternative(t *testing.T) {
	c := Choice(NewLiteral("foo"), NewLiteral("bar"))
	s := parseState("bar")
	if !c.Rule(s) {
		t.Fatal("expected the second alternative to match after the first fails")
	}
	if s.Cursor != 3 {
		t.Errorf("expected cursor at 3, got %d", s.Cursor)
	}
}

func TestSeqMatchesInOrder(t *testing.T) {
	g := Seq(NewLiteral("foo"), NewLiteral("bar"))
	s := parseState("foobar")
	if !g.Rule(s) {
		t.Fatal("expected sequential match to succeed")
	}
	if s.Cursor != 6 {
		t.Errorf("expected cursor at 6, got %d", s.Cursor)
	}
}

func TestSeqFlattensNestedGroups(t *testing.T) {
	g := Seq(Seq(NewLiteral("a"), NewLiteral("b")), NewLiteral("c"))
	grp, ok := g.(*Group)
	if !ok {
		t.Fatal("expected Seq to produce a *Group")
	}
	if len(grp.Items) != 3 {
		t.Errorf("expected nested groups flattened into 3 items, got %d", len(grp.Items))
	}
}

func TestSeqRewindsOnPartialFailure(t *testing.T) {
	g := Seq(NewLiteral("foo"), NewLiteral("bar"))
	s := parseState("foobaz")
	if g.Rule(s) {
		t.Fatal("expected the sequence to fail when the second item doesn't match")
	}
	if s.Cursor != 0 {
		t.Errorf("expected cursor rewound to 0 on failure, got %d", s.Cursor)
	}
}

func TestManyMatchesZeroOrMore(t *testing.T) {
	r := Many(NewLiteral("a"))
	s := parseState("aaab")
	if !r.Rule(s) {
		t.Fatal("expected Many to always succeed, even on zero matches")
	}
	if s.Cursor != 3 {
		t.Errorf("expected cursor at 3, got %d", s.Cursor)
	}
}

func TestManyAcceptsZeroMatches(t *testing.T) {
	r := Many(NewLiteral("a"))
	s := parseState("bbb")
	if !r.Rule(s) {
		t.Fatal("expected Many to succeed on zero matches")
	}
	if s.Cursor != 0 {
		t.Errorf("expected cursor unchanged, got %d", s.Cursor)
	}
}

func TestSomeRequiresAtLeastOne(t *testing.T) {
	r := Some(NewLiteral("a"))
	s := parseState("bbb")
	if r.Rule(s) {
		t.Fatal("expected Some to fail on zero matches")
	}
}

func TestOptionRepMatchesAtMostOne(t *testing.T) {
	r := OptionRep(NewLiteral("a"))
	s := parseState("aaa")
	if !r.Rule(s) {
		t.Fatal("expected OptionRep to succeed")
	}
	if s.Cursor != 1 {
		t.Errorf("expected cursor at 1 (single match), got %d", s.Cursor)
	}
}

func TestAndPredicateDoesNotConsume(t *testing.T) {
	p := And(NewLiteral("foo"))
	s := parseState("foobar")
	if !p.Rule(s) {
		t.Fatal("expected the predicate to succeed")
	}
	if s.Cursor != 0 {
		t.Errorf("expected the lookahead to not consume input, got cursor %d", s.Cursor)
	}
}

func TestNotPredicateSucceedsWhenSubFails(t *testing.T) {
	p := Not(NewLiteral("foo"))
	s := parseState("bar")
	if !p.Rule(s) {
		t.Fatal("expected negative lookahead to succeed when sub-element fails")
	}
	if s.Cursor != 0 {
		t.Errorf("expected the lookahead to not consume input, got cursor %d", s.Cursor)
	}
}

func TestNotPredicateFailsWhenSubMatches(t *testing.T) {
	p := Not(NewLiteral("foo"))
	s := parseState("foo")
	if p.Rule(s) {
		t.Error("expected negative lookahead to fail when sub-element matches")
	}
}

func TestAnyCharacterMatchesOneCodepoint(t *testing.T) {
	s := parseState("éx") // "é" (2 bytes) followed by 'x'
	if !Dot.Rule(s) {
		t.Fatal("expected Dot to match a multi-byte codepoint")
	}
	if s.Cursor != 2 {
		t.Errorf("expected cursor to advance by the codepoint's byte length (2), got %d", s.Cursor)
	}
}

func TestAnyCharacterFailsAtEnd(t *testing.T) {
	s := parseState("")
	if Dot.Rule(s) {
		t.Error("expected Dot to fail at end of input")
	}
}

func TestAnyCharacterRecoverDeletesAndRetries(t *testing.T) {
	s := parseState("\xffx")
	rs := state.NewRecoverState(s, false, true, 0, 2)
	if !Dot.Recover(rs) {
		t.Fatal("expected Dot.Recover to delete the bad byte and match the next codepoint")
	}
}

func TestCharacterRangeMatchesMember(t *testing.T) {
	cr := MustCharacterRange("a-z", false)
	s := parseState("hi")
	if !cr.Rule(s) {
		t.Fatal("expected character range to match 'h'")
	}
	if s.Cursor != 1 {
		t.Errorf("expected cursor at 1, got %d", s.Cursor)
	}
}

func TestCharacterRangeRejectsNonMember(t *testing.T) {
	cr := MustCharacterRange("a-z", false)
	s := parseState("HI")
	if cr.Rule(s) {
		t.Error("expected character range to reject uppercase when case-sensitive")
	}
}

func TestCharacterRangeRecoverDeletesAndRetries(t *testing.T) {
	cr := MustCharacterRange("0-9", false)
	s := parseState("!5")
	rs := state.NewRecoverState(s, false, true, 0, 2)
	if !cr.Recover(rs) {
		t.Fatal("expected delete-then-rematch recovery to succeed")
	}
}
