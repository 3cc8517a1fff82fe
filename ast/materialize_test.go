package ast

import (
	"testing"

	"github.com/npillmayer/pegium-go"
	"github.com/npillmayer/pegium-go/cst"
	"github.com/npillmayer/pegium-go/grammar"
	"github.com/npillmayer/pegium-go/skip"
	"github.com/npillmayer/pegium-go/state"
)

// Decl exercises every feature-assignment shape materialize.go supports in
// one pass: a boolean ?= flag, a plain "=" scalar, an optional pointer
// field populated by "=", and a repeated "+=" slice.
type Decl struct {
	Exported bool
	Name     string
	Doc      *string
	Tags     []string
}

func buildDeclGrammar() *grammar.Rule {
	ident := grammar.NewTerminalRule("Ident", grammar.Some(grammar.MustCharacterRange("a-z", false)), nil)
	doc := grammar.NewTerminalRule("Doc", grammar.Some(grammar.MustCharacterRange("a-z", false)), nil)
	tag := grammar.NewTerminalRule("Tag", grammar.Some(grammar.MustCharacterRange("a-z", false)), nil)

	decl := grammar.NewParserRule("Decl")
	decl.New = func() interface{} { return &Decl{} }
	decl.SetBody(grammar.Seq(
		grammar.OptionRep(grammar.EnableIf("Exported", grammar.NewLiteral("pub"))),
		grammar.Assign("Name", grammar.Call(ident)),
		grammar.OptionRep(grammar.Assign("Doc", grammar.Call(doc))),
		grammar.Many(grammar.Seq(grammar.NewLiteral(","), grammar.AppendTo("Tags", grammar.Call(tag)))),
	))
	return decl
}

// parseDecl drives decl's grammar directly against state/cst, bypassing the
// combinator/skip-config layer entirely, then returns the finalized root.
func parseDecl(t *testing.T, decl *grammar.Rule, input string) cst.NodeView {
	t.Helper()
	ws := grammar.MustCharacterRange(" ", false)
	sk := skip.NewBuilder().Ignore(skip.Terminal{
		Element: ws,
		Match: func(in string, begin pegium.TextOffset) pegium.MatchResult {
			end := begin
			for int(end) < len(in) && in[end] == ' ' {
				end++
			}
			if end == begin {
				return pegium.MatchResult{Valid: false}
			}
			return pegium.MatchResult{End: end, Valid: true}
		},
	}).Build()
	builder := cst.NewBuilder(input)
	s := state.New(input, sk, builder)
	if !decl.Rule(s) {
		t.Fatalf("expected grammar to match input %q", input)
	}
	if !s.AtEnd() {
		t.Fatalf("expected the grammar to consume all of %q, stopped at %d", input, s.Cursor)
	}
	builder.Finalize()
	root, ok := builder.Root().Root()
	if !ok {
		t.Fatal("expected a root node after a successful match")
	}
	return root
}

func TestMaterializeFullFeatureSet(t *testing.T) {
	decl := buildDeclGrammar()
	root := parseDecl(t, decl, "pub foo bar,x,y")

	v, err := Materialize(decl, root)
	if err != nil {
		t.Fatal(err)
	}
	got, ok := v.(*Decl)
	if !ok {
		t.Fatalf("expected a *Decl, got %T", v)
	}
	if !got.Exported {
		t.Error("expected the ?= assignment to set Exported to true")
	}
	if got.Name != "foo" {
		t.Errorf("expected Name \"foo\", got %q", got.Name)
	}
	if got.Doc == nil || *got.Doc != "bar" {
		t.Fatalf("expected Doc to point to \"bar\", got %v", got.Doc)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "x" || got.Tags[1] != "y" {
		t.Errorf("expected Tags [x y], got %v", got.Tags)
	}
}

func TestMaterializeOptionalFieldsOmitted(t *testing.T) {
	decl := buildDeclGrammar()
	root := parseDecl(t, decl, "foo")

	v, err := Materialize(decl, root)
	if err != nil {
		t.Fatal(err)
	}
	got := v.(*Decl)
	if got.Exported {
		t.Error("expected Exported to stay false when \"pub\" is absent")
	}
	if got.Doc != nil {
		t.Errorf("expected Doc to stay nil when absent, got %v", *got.Doc)
	}
	if got.Tags != nil {
		t.Errorf("expected Tags to stay nil when no tags matched, got %v", got.Tags)
	}
}

func TestMaterializeDataTypeRuleUsesConverter(t *testing.T) {
	number := grammar.NewDataTypeRule("Number", grammar.Some(grammar.MustCharacterRange("0-9", false)), grammar.IntConverter)
	builder := cst.NewBuilder("123")
	s := state.New("123", skip.Empty(), builder)
	if !number.Rule(s) {
		t.Fatal("expected the data-type rule to match")
	}
	builder.Finalize()
	root, _ := builder.Root().Root()

	v, err := Materialize(number, root)
	if err != nil {
		t.Fatal(err)
	}
	if v.(int64) != 123 {
		t.Errorf("expected the converter to produce int64(123), got %#v", v)
	}
}

func TestMaterializeDataTypeRuleDefaultConverterConcatenatesText(t *testing.T) {
	word := grammar.NewDataTypeRule("Word", grammar.Some(grammar.MustCharacterRange("a-z", false)), nil)
	builder := cst.NewBuilder("abc")
	s := state.New("abc", skip.Empty(), builder)
	if !word.Rule(s) {
		t.Fatal("expected the data-type rule to match")
	}
	builder.Finalize()
	root, _ := builder.Root().Root()

	v, err := Materialize(word, root)
	if err != nil {
		t.Fatal(err)
	}
	if v.(string) != "abc" {
		t.Errorf("expected the default converter to concatenate the matched text, got %#v", v)
	}
}

func TestMaterializeTerminalRuleProducesRawText(t *testing.T) {
	word := grammar.NewTerminalRule("Word", grammar.Some(grammar.MustCharacterRange("a-z", false)), nil)
	builder := cst.NewBuilder("xyz")
	s := state.New("xyz", skip.Empty(), builder)
	if !word.Rule(s) {
		t.Fatal("expected the terminal rule to match")
	}
	builder.Finalize()
	root, _ := builder.Root().Root()

	v, err := Materialize(word, root)
	if err != nil {
		t.Fatal(err)
	}
	if v.(string) != "xyz" {
		t.Errorf("expected the terminal rule's raw matched text, got %#v", v)
	}
}

// TestMaterializeMapFallbackWithoutFactory covers ensureTarget/assignFeatureMap:
// a ParserRule with no New factory materializes into a plain map.
func TestMaterializeMapFallbackWithoutFactory(t *testing.T) {
	ident := grammar.NewTerminalRule("Ident", grammar.Some(grammar.MustCharacterRange("a-z", false)), nil)
	number := grammar.NewDataTypeRule("Number", grammar.Some(grammar.MustCharacterRange("0-9", false)), grammar.IntConverter)
	pair := grammar.NewParserRule("Pair")
	pair.SetBody(grammar.Seq(
		grammar.Assign("Key", grammar.Call(ident)),
		grammar.NewLiteral(":"),
		grammar.Assign("Value", grammar.Call(number)),
	))
	builder := cst.NewBuilder("x:7")
	s := state.New("x:7", skip.Empty(), builder)
	if !pair.Rule(s) {
		t.Fatal("expected the grammar to match")
	}
	builder.Finalize()
	root, _ := builder.Root().Root()

	v, err := Materialize(pair, root)
	if err != nil {
		t.Fatal(err)
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		t.Fatalf("expected a map[string]interface{} fallback, got %T", v)
	}
	if m["Key"] != "x" {
		t.Errorf("expected Key \"x\", got %v", m["Key"])
	}
	if n, ok := m["Value"].(int64); !ok || n != 7 {
		t.Errorf("expected Value 7, got %v", m["Value"])
	}
}

// TestMaterializeActionNestsPreviousCurrent checks the left-recursion
// elimination shape: a New(...) action placed after an Assign nests
// whatever was already materialized for this production onto the new
// node's NestFeature, rather than discarding it.
func TestMaterializeActionNestsPreviousCurrent(t *testing.T) {
	type Outer struct {
		Left interface{}
		Tag  string
	}
	rule := grammar.NewParserRule("Outer")
	rule.New = func() interface{} { return &Outer{} }
	rule.SetBody(grammar.Seq(
		grammar.Assign("Tag", grammar.Call(grammar.NewTerminalRule("Ident", grammar.MustCharacterRange("a-z", false), nil))),
		grammar.NewAction("Outer", func() interface{} { return &Outer{} }, "Left"),
		grammar.Assign("Tag", grammar.Call(grammar.NewTerminalRule("Ident", grammar.MustCharacterRange("a-z", false), nil))),
	))
	builder := cst.NewBuilder("ab")
	s := state.New("ab", skip.Empty(), builder)
	if !rule.Rule(s) {
		t.Fatal("expected the grammar to match")
	}
	builder.Finalize()
	root, _ := builder.Root().Root()

	v, err := Materialize(rule, root)
	if err != nil {
		t.Fatal(err)
	}
	top := v.(*Outer)
	if top.Tag != "b" {
		t.Errorf("expected the outer Tag to be the second ident \"b\", got %q", top.Tag)
	}
	nested, ok := top.Left.(*Outer)
	if !ok {
		t.Fatalf("expected the Action to nest the previously-materialized value under Left, got %#v", top.Left)
	}
	if nested.Tag != "a" {
		t.Errorf("expected the nested Tag to be the first ident \"a\", got %q", nested.Tag)
	}
}

func TestMaterializeInitActionAlwaysStartsFresh(t *testing.T) {
	type Thing struct{ Name string }
	rule := grammar.NewParserRule("Thing")
	rule.New = func() interface{} { return &Thing{Name: "stale"} }
	rule.SetBody(grammar.Seq(
		grammar.InitAction("Thing", func() interface{} { return &Thing{} }),
		grammar.Assign("Name", grammar.Call(grammar.NewTerminalRule("Ident", grammar.Some(grammar.MustCharacterRange("a-z", false)), nil))),
	))
	builder := cst.NewBuilder("z")
	s := state.New("z", skip.Empty(), builder)
	if !rule.Rule(s) {
		t.Fatal("expected the grammar to match")
	}
	builder.Finalize()
	root, _ := builder.Root().Root()

	v, err := Materialize(rule, root)
	if err != nil {
		t.Fatal(err)
	}
	if got := v.(*Thing).Name; got != "z" {
		t.Errorf("expected Name \"z\", got %q", got)
	}
}

// TestMaterializeCrossReferenceProducesReference exercises
// dispatchProduced's *grammar.CrossReference branch independent of the
// combinator-level scope wiring tested elsewhere.
func TestMaterializeCrossReferenceProducesReference(t *testing.T) {
	type VarRef struct {
		Name *grammar.Reference[interface{}]
	}
	ident := grammar.NewTerminalRule("Ident", grammar.Some(grammar.MustCharacterRange("a-zA-Z", false)), nil)
	rule := grammar.NewParserRule("VarRef")
	rule.New = func() interface{} { return &VarRef{} }
	rule.Resolver = func(text string) (interface{}, bool) {
		if text == "q" {
			return 99, true
		}
		return nil, false
	}
	rule.SetBody(grammar.Assign("Name", grammar.Xref(grammar.Call(ident))))

	builder := cst.NewBuilder("q")
	s := state.New("q", skip.Empty(), builder)
	if !rule.Rule(s) {
		t.Fatal("expected the grammar to match")
	}
	builder.Finalize()
	root, _ := builder.Root().Root()

	v, err := Materialize(rule, root)
	if err != nil {
		t.Fatal(err)
	}
	ref := v.(*VarRef)
	resolved, ok := ref.Name.Get()
	if !ok || resolved.(int) != 99 {
		t.Errorf("expected the cross-reference to resolve to 99, got %v, %v", resolved, ok)
	}
}

// TestMaterializeWrappedAssignmentChoiceBooleanFlag covers the
// materializeWrappedAssignment path for an EnableIf wrapping an
// OrderedChoice: the assignment's own wrapper node is tagged with the
// *grammar.Assignment itself (ruleWrapped), and EnableIf's OpEnableIf
// ignores whichever alternative's text was produced, setting the flag true.
func TestMaterializeWrappedAssignmentChoiceBooleanFlag(t *testing.T) {
	type Flagged struct{ Const bool }
	rule := grammar.NewParserRule("Flagged")
	rule.New = func() interface{} { return &Flagged{} }
	rule.SetBody(grammar.EnableIf("Const", grammar.Choice(grammar.NewLiteral("const"), grammar.NewLiteral("final"))))

	builder := cst.NewBuilder("const")
	s := state.New("const", skip.Empty(), builder)
	if !rule.Rule(s) {
		t.Fatal("expected the grammar to match")
	}
	builder.Finalize()
	root, _ := builder.Root().Root()

	v, err := Materialize(rule, root)
	if err != nil {
		t.Fatal(err)
	}
	if !v.(*Flagged).Const {
		t.Error("expected the wrapped choice to still set the boolean flag true")
	}
}
