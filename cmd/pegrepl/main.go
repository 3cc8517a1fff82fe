/*
Command pegrepl is an interactive sandbox for experimenting with pegium
grammars: it builds a small precedence-climbing arithmetic grammar (the
shape of §8 scenario S1) and drops into a read-eval-print loop, parsing each
line, printing the materialized AST value plus any recovery diagnostics, and
rendering the underlying concrete syntax tree.
*/
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/pegium-go/combinator"
	"github.com/npillmayer/pegium-go/cst"
	"github.com/npillmayer/pegium-go/grammar"
	"github.com/npillmayer/pegium-go/trace"
)

func tracer() tracing.Trace { return trace.For("pegrepl") }

// BinExpr is the demo AST node for a left-associative binary operator
// application, the result of eliminating left recursion in the classical
// Expr/Term/Factor grammar (§4.1.9).
type BinExpr struct {
	Left  interface{}
	Op    string
	Right interface{}
}

func (b *BinExpr) String() string {
	return fmt.Sprintf("(%v %s %v)", b.Left, b.Op, b.Right)
}

//   Additive       ::= Multiplicative (('+'|'-') Multiplicative)*
//   Multiplicative ::= Primary (('*'|'/') Primary)*
//   Primary        ::= number | '(' Additive ')'
//
// Operator assignment happens via New("BinExpr", ..., "Left") placed just
// before the operator literal in each loop iteration, nesting whatever was
// current (the left operand built so far) before the operator and the
// right operand are assigned.
func buildGrammar() *grammar.Rule {
	number := combinator.DataTypeRule("Number",
		combinator.Some(combinator.CharIn("0-9")),
		grammar.IntConverter,
	)

	additive := combinator.ParserRule("Additive")
	multiplicative := combinator.ParserRule("Multiplicative")
	primary := combinator.ParserRule("Primary")

	primary.SetBody(combinator.Choice(
		combinator.Call(number),
		combinator.Seq(combinator.Kw("("), combinator.Call(additive), combinator.Kw(")")),
	))

	multiplicative.SetBody(combinator.Seq(
		combinator.Call(primary),
		combinator.Many(combinator.Seq(
			combinator.New("BinExpr", func() interface{} { return &BinExpr{} }, "Left"),
			combinator.Assign("Op", combinator.Choice(combinator.Lit("*"), combinator.Lit("/"))),
			combinator.Assign("Right", combinator.Call(primary)),
		)),
	))

	additive.SetBody(combinator.Seq(
		combinator.Call(multiplicative),
		combinator.Many(combinator.Seq(
			combinator.New("BinExpr", func() interface{} { return &BinExpr{} }, "Left"),
			combinator.Assign("Op", combinator.Choice(combinator.Lit("+"), combinator.Lit("-"))),
			combinator.Assign("Right", combinator.Call(multiplicative)),
		)),
	))

	return additive
}

func buildSkipper() *combinator.SkipperBuilder {
	return combinator.NewSkipper().Ignore(combinator.CharIn(" \t\r\n"))
}

func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	initf := flag.String("init", "", "Initial load")
	flag.Parse()

	tracer().SetTraceLevel(traceLevel(*tlevel))
	pterm.Info.Println("Welcome to pegrepl")
	tracer().Infof("Trace level is %s", *tlevel)

	entry := buildGrammar()

	input := strings.Join(flag.Args(), " ")
	input = strings.TrimSpace(input)

	repl, err := readline.New("pegrepl> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{
		entry:     entry,
		repl:      repl,
		lastInput: input,
	}
	if input != "" {
		intp.Eval(input)
	}

	tracer().Infof("Quit with <ctrl>D")
	intp.loadInitFile(*initf)
	intp.REPL()
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp holds state across REPL turns: the grammar entry point, the
// readline instance, and the last evaluated line/value (for scripting or
// debugging).
type Intp struct {
	entry     *grammar.Rule
	repl      *readline.Instance
	lastInput string
	lastValue interface{}
}

func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	f, err := os.Open(filename)
	if err != nil {
		tracer().Errorf("unable to open init file: %s", filename)
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	lineno := 1
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		intp.Eval(line)
		lineno++
	}
	if err := scanner.Err(); err != nil {
		tracer().Errorf("error while reading init file: %s", err.Error())
	}
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		intp.Eval(line)
	}
	println("Good bye!")
}

// Eval parses line against the demo arithmetic grammar and prints the
// materialized value, any recovery diagnostics, and the CST as a tree.
func (intp *Intp) Eval(line string) {
	sk := buildSkipper().Build()
	result, err := combinator.Parse(intp.entry, line, combinator.WithSkipper(sk))
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	intp.lastInput = line
	intp.lastValue = result.Value
	if result.Recovered {
		pterm.Warning.Printfln("recovered with %d diagnostic(s)", len(result.Diagnostics))
		for _, d := range result.Diagnostics {
			pterm.Warning.Printfln(" - %s at offset %d (%s)", d.Kind, d.Offset, d.Element)
		}
	}
	pterm.Info.Println(fmt.Sprint(result.Value))
	root := indentedTreeFrom(result.Root)
	pterm.DefaultTree.WithRoot(root).Render()
}

func indentedTreeFrom(node cst.NodeView) pterm.TreeNode {
	label := node.Text()
	if r, ok := node.Element().(*grammar.Rule); ok {
		label = r.Name + ": " + label
	}
	children := node.VisibleChildren()
	kids := make([]pterm.TreeNode, 0, len(children))
	for _, c := range children {
		kids = append(kids, indentedTreeFrom(c))
	}
	return pterm.TreeNode{Text: label, Children: kids}
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
