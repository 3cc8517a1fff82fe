package combinator

import (
	"fmt"

	"github.com/npillmayer/pegium-go"
	"github.com/npillmayer/pegium-go/ast"
	"github.com/npillmayer/pegium-go/cst"
	"github.com/npillmayer/pegium-go/grammar"
	"github.com/npillmayer/pegium-go/recovery"
	"github.com/npillmayer/pegium-go/skip"
	"github.com/npillmayer/pegium-go/state"
	"github.com/npillmayer/pegium-go/trace"
)

func tracer() interface {
	Debugf(string, ...interface{})
} {
	return trace.For("combinator")
}

// Options configures a Parse call (§4.6, §6).
type Options struct {
	Skipper               *skip.Skipper
	AllowRecovery         bool
	EditWindow            int // 0 = global window (whole input); >0 = local window centered on the strict phase's furthest reach
	MaxConsecutiveDeletes int
}

// Option mutates an Options value being built up by Parse's variadic
// arguments.
type Option func(*Options)

// WithSkipper installs the hidden/ignored-terminal skipper. Parse uses an
// empty skipper (skip.Empty) if none is given.
func WithSkipper(sk *skip.Skipper) Option { return func(o *Options) { o.Skipper = sk } }

// WithRecovery enables or disables the recovery phase entirely (default:
// enabled). Disabling it turns any strict-phase failure into a plain
// error, the shape most useful for machine-generated input (§8 S5) versus
// human-typed input (§8 S2-S4).
func WithRecovery(enabled bool) Option { return func(o *Options) { o.AllowRecovery = enabled } }

// WithEditWindow selects the local-window recovery strategy, restricting
// edits to a band of the given byte width centered on the strict phase's
// furthest reach (maxCursor). Zero (the default) uses the global-window
// strategy: edits are allowed anywhere in the input.
func WithEditWindow(bytes int) Option { return func(o *Options) { o.EditWindow = bytes } }

// WithMaxConsecutiveDeletes overrides the cap on runs of single-codepoint
// deletes (default state.DefaultMaxConsecutiveCodepointDeletes).
func WithMaxConsecutiveDeletes(n int) Option {
	return func(o *Options) { o.MaxConsecutiveDeletes = n }
}

// Result is what a successful Parse returns: the materialized AST value,
// any recovery diagnostics (empty unless the recovery phase ran), whether
// recovery actually ran, and the CST node the value was built from.
type Result struct {
	Value       interface{}
	Diagnostics []recovery.Diagnostic
	Recovered   bool
	Root        cst.NodeView
}

// Parse runs entry against input end to end: a strict phase with no edits
// allowed, and — only if that phase fails to consume the whole input and
// recovery is enabled — a staged sequence of from-scratch recovery attempts
// (recoveryStages), each resetting the builder and re-entering at position
// 0, stopping at the first attempt whose editable recover() succeeds,
// followed by materialization of the first CST node matching entry (§4.6).
//
// A strict-phase success that does not consume the whole input (trailing
// garbage) is treated the same as an outright mismatch: both fall through
// to the recovery phase, and a recovery attempt counts as a success only
// if it, too, ends at the end of the input.
func Parse(entry *grammar.Rule, input string, opts ...Option) (*Result, error) {
	o := Options{
		AllowRecovery:         true,
		MaxConsecutiveDeletes: state.DefaultMaxConsecutiveCodepointDeletes,
	}
	for _, f := range opts {
		f(&o)
	}
	sk := o.Skipper
	if sk == nil {
		sk = skip.Empty()
	}

	strictBuilder := cst.NewBuilder(input)
	strictState := state.New(input, sk, strictBuilder)
	strictState.SkipHiddenNodes()

	if entry.Rule(strictState) && strictState.AtEnd() {
		strictBuilder.Finalize()
		return materializeResult(entry, strictBuilder, nil, false)
	}
	strictReach := strictState.MaxCursor()

	if !o.AllowRecovery {
		return nil, fmt.Errorf("combinator: parse of rule %q failed at offset %d", entry.Name, strictReach)
	}

	tracer().Debugf("strict phase failed at %d, entering recovery", strictReach)

	for _, attempt := range recoveryStages(o.EditWindow, strictReach, pegium.TextOffset(len(input))) {
		recoverBuilder := cst.NewBuilder(input)
		recoverState := state.New(input, sk, recoverBuilder)
		recoverState.SkipHiddenNodes()

		rs := state.NewRecoverState(recoverState, attempt.allowInsert, attempt.allowDelete, attempt.floor, attempt.ceiling)
		rs.SetMaxConsecutiveCodepointDeletes(o.MaxConsecutiveDeletes)

		if entry.Recover(rs) && recoverState.AtEnd() {
			recoverBuilder.Finalize()
			return materializeResult(entry, recoverBuilder, rs.Diagnostics(), true)
		}
		tracer().Debugf("recovery attempt (insert=%v delete=%v [%d,%d]) failed at %d",
			attempt.allowInsert, attempt.allowDelete, attempt.floor, attempt.ceiling, recoverState.MaxCursor())
	}
	return nil, fmt.Errorf("combinator: recovery for rule %q failed at offset %d", entry.Name, strictReach)
}

// recoveryAttempt is one from-scratch (allowInsert, allowDelete, [floor,
// ceiling]) configuration tried by the recovery loop (§4.6).
type recoveryAttempt struct {
	floor, ceiling           pegium.TextOffset
	allowInsert, allowDelete bool
}

// recoveryStages builds the ordered sequence of recovery attempts (§4.6
// step 3). With a local edit window configured, it is the three-step
// strategy: a no-edit replay (confirms the strict failure is real in a
// fresh builder), then an editable attempt confined to the window around
// the strict phase's furthest reach, then a fully permissive whole-input
// attempt. The windowed attempt runs with allowInsert=false, allowDelete=true
// — the shape insertHiddenForced requires (§4.5, §4.9) — so forced
// insertion of force-insertable punctuation/terminal rules is actually
// reachable. The final attempt widens the edit window to the whole input
// with allowInsert=true, which switches forced insertion off; no element
// performs plain insertion, so that attempt offers deletions and typo
// replacements only.
//
// Without a local window, the same two editable shapes are tried directly
// over [strictReach, end] and then the whole input.
func recoveryStages(editWindowBytes int, reach, inputLen pegium.TextOffset) []recoveryAttempt {
	if editWindowBytes > 0 {
		wFloor, wCeiling := localWindow(editWindowBytes, reach, inputLen)
		return []recoveryAttempt{
			{floor: 0, ceiling: inputLen, allowInsert: false, allowDelete: false},
			{floor: wFloor, ceiling: wCeiling, allowInsert: false, allowDelete: true},
			{floor: 0, ceiling: inputLen, allowInsert: true, allowDelete: true},
		}
	}
	return []recoveryAttempt{
		{floor: reach, ceiling: inputLen, allowInsert: false, allowDelete: true},
		{floor: 0, ceiling: inputLen, allowInsert: true, allowDelete: true},
	}
}

// localWindow computes [floor, ceiling] for a local recovery window of the
// given byte width, centered on reach and clamped to the input's bounds.
func localWindow(bytes int, reach, inputLen pegium.TextOffset) (pegium.TextOffset, pegium.TextOffset) {
	half := pegium.TextOffset(bytes / 2)
	var floor pegium.TextOffset
	if reach > half {
		floor = reach - half
	}
	ceiling := reach + half
	if ceiling > inputLen {
		ceiling = inputLen
	}
	return floor, ceiling
}

func materializeResult(entry *grammar.Rule, builder *cst.Builder, diags []recovery.Diagnostic, recovered bool) (*Result, error) {
	node, ok := builder.Root().FirstMatching(entry)
	if !ok {
		return nil, fmt.Errorf("combinator: no CST node produced for rule %q", entry.Name)
	}
	val, err := ast.Materialize(entry, node)
	if err != nil {
		return nil, err
	}
	return &Result{Value: val, Diagnostics: diags, Recovered: recovered, Root: node}, nil
}
