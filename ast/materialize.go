/*
Package ast materializes a concrete syntax tree produced by a parse (package
cst) into a typed AST value, driven by the Assignment, Action and
CrossReference markers a grammar (package grammar) leaves behind in the CST
(§4.8).

Materialization walks a ParserRule's CST children exactly once, left to
right, keeping one "current" value that Assignment children mutate and that
Action children may replace outright — the same shape a hand-written
recursive-descent parser's semantic actions would have, just driven by the
tree instead of by the parse itself.

Feature assignment onto the current value goes through a small amount of
reflection (scalar, optional-pointer, slice-append and cross-reference
variants); a rule built without a New factory falls back to a
map[string]interface{}, so a grammar with no AST types at all still
produces something materialization-shaped rather than nothing.
*/
package ast

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/npillmayer/pegium-go"
	"github.com/npillmayer/pegium-go/cst"
	"github.com/npillmayer/pegium-go/grammar"
	"github.com/npillmayer/pegium-go/trace"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace { return trace.For("ast") }

// Materialize builds the AST value for node, which must have been produced
// by rule (i.e. node.Element() is rule, or rule is the root entry rule and
// node is the CST node cst.RootCstNode.FirstMatching(rule) returned).
func Materialize(rule *grammar.Rule, node cst.NodeView) (interface{}, error) {
	switch {
	case rule.IsTerminalRule():
		return rule.Convert(node.Text())
	case rule.IsDataTypeRule():
		return materializeDataTypeRule(rule, node)
	case rule.IsParserRule():
		return materializeParserRule(rule, node)
	}
	return nil, fmt.Errorf("ast: rule %q has an unrecognized kind", rule.Name)
}

// materializeDataTypeRule applies the rule's converter (custom, e.g.
// strconv-based number parsing, or §4.1.12's "string" default) to text
// assembled from the node's visible children, preferring each visible child
// rule's own converted value over its raw span text. Hidden tokens and
// recovery-deleted input inside the span are therefore never seen by the
// converter.
func materializeDataTypeRule(rule *grammar.Rule, node cst.NodeView) (interface{}, error) {
	return rule.Convert(concatenateVisibleText(rule, node))
}

func concatenateVisibleText(rule *grammar.Rule, node cst.NodeView) string {
	children := node.VisibleChildren()
	if len(children) == 0 {
		return node.Text()
	}
	var b strings.Builder
	for _, child := range children {
		if childRule, ok := child.Element().(*grammar.Rule); ok {
			if v, err := Materialize(childRule, child); err == nil {
				fmt.Fprint(&b, v)
				continue
			}
		}
		b.WriteString(child.Text())
	}
	return b.String()
}

// materializeParserRule runs the three-pass algorithm of §4.8: start the
// rule's own factory value (or nil, deferred to the first InitAction/
// Assignment encountered), walk children left to right applying Action
// swaps and Assignment writes, return whatever "current" ends up as.
func materializeParserRule(rule *grammar.Rule, node cst.NodeView) (interface{}, error) {
	var current interface{}
	if rule.New != nil {
		current = rule.New()
	}
	for _, child := range node.VisibleChildren() {
		var err error
		current, err = applyChild(rule, current, child)
		if err != nil {
			return nil, fmt.Errorf("ast: materializing rule %q: %w", rule.Name, err)
		}
	}
	return current, nil
}

func applyChild(rule *grammar.Rule, current interface{}, child cst.NodeView) (interface{}, error) {
	switch e := child.Element().(type) {
	case *grammar.Action:
		return applyAction(rule, current, e)
	case *grammar.Assignment:
		val, err := materializeWrappedAssignment(rule, child)
		if err != nil {
			return current, err
		}
		return current, assignFeature(ensureTarget(&current), e.Feature, e.Op, val)
	case grammar.AssignedElement:
		val, err := dispatchProduced(rule, e.Produced(), child)
		if err != nil {
			return current, err
		}
		assign := e.Assignment()
		return current, assignFeature(ensureTarget(&current), assign.Feature, assign.Op, val)
	case *grammar.Rule:
		// A bare nested rule call with no enclosing Assignment. If no
		// value is current yet, its return value becomes current outright
		// — the usual shape for "Multiplicative: Primary (op Primary)*"
		// grammars, where the leading Primary needs to become current
		// before any New('left') can nest it. Once current is set, a
		// later bare call only runs for its side effects.
		val, err := Materialize(e, child)
		if err != nil {
			return current, err
		}
		if current == nil {
			return val, nil
		}
		return current, nil
	default:
		return current, nil
	}
}

func applyAction(rule *grammar.Rule, current interface{}, a *grammar.Action) (interface{}, error) {
	switch a.Mode {
	case grammar.ActionInit:
		if a.Factory != nil {
			return a.Factory(), nil
		}
		return current, nil
	case grammar.ActionNew:
		prev := current
		var next interface{}
		if a.Factory != nil {
			next = a.Factory()
		}
		if a.NestFeature != "" && prev != nil {
			if err := assignFeature(ensureTarget(&next), a.NestFeature, grammar.OpAssign, prev); err != nil {
				return current, err
			}
		}
		return next, nil
	}
	return current, nil
}

// materializeWrappedAssignment handles an Assignment whose Sub was an
// OrderedChoice: child is the Assignment's own dedicated wrapper node, and
// whichever alternative matched is (at most) its single visible child.
func materializeWrappedAssignment(rule *grammar.Rule, wrapper cst.NodeView) (interface{}, error) {
	kids := wrapper.VisibleChildren()
	if len(kids) == 0 {
		return true, nil
	}
	return dispatchProduced(rule, kids[0].Element(), kids[0])
}

// dispatchProduced materializes the value a node (or a node's recorded
// producing element, for a retagged node) represents: a nested rule call
// recurses into Materialize, a cross-reference becomes a lazily-resolved
// Reference, anything else contributes its raw matched text.
func dispatchProduced(rule *grammar.Rule, elem pegium.Element, node cst.NodeView) (interface{}, error) {
	switch e := elem.(type) {
	case *grammar.Rule:
		return Materialize(e, node)
	case *grammar.CrossReference:
		return grammar.NewReference[interface{}](node.Text(), rule.Resolver), nil
	case grammar.AssignedElement:
		return dispatchProduced(rule, e.Produced(), node)
	default:
		return node.Text(), nil
	}
}

// ensureTarget returns a settable assignment target for *cur: if *cur is
// nil, it is initialized to a map[string]interface{}, the generic fallback
// used by grammars that never supplied a New factory (§4.8).
func ensureTarget(cur *interface{}) interface{} {
	if *cur == nil {
		*cur = map[string]interface{}{}
	}
	return *cur
}

// Container is implemented by AST node types that need to know their
// enclosing node — the back-link invariant 9 (§4.1.10) requires: "for
// every non-root AST node created by materialization of a rule, its
// container back-link points at the parent AST node produced by the
// enclosing rule." A type that doesn't implement it is simply never
// linked; only types that care about their container need to.
type Container interface {
	SetContainer(parent interface{})
}

// detachContainer clears old's container back-link, if it has one, before
// it is displaced from a feature slot by a replacing assignment.
func detachContainer(old interface{}) {
	if c, ok := old.(Container); ok {
		c.SetContainer(nil)
	}
}

// linkContainer points child's container back-link at parent, if child
// cares to track one. Called only after the assignment it back-links has
// already succeeded.
func linkContainer(child, parent interface{}) {
	if c, ok := child.(Container); ok {
		c.SetContainer(parent)
	}
}

func assignFeature(target interface{}, feature string, op grammar.AssignOp, value interface{}) error {
	if m, ok := target.(map[string]interface{}); ok {
		return assignFeatureMap(m, feature, op, value)
	}
	return assignFeatureReflect(target, feature, op, value)
}

func assignFeatureMap(m map[string]interface{}, feature string, op grammar.AssignOp, value interface{}) error {
	switch op {
	case grammar.OpAppend:
		existing, _ := m[feature].([]interface{})
		m[feature] = append(existing, value)
		linkContainer(value, m)
	case grammar.OpEnableIf:
		m[feature] = true
	default:
		detachContainer(m[feature])
		m[feature] = value
		linkContainer(value, m)
	}
	return nil
}

// assignFeatureReflect assigns value onto a named exported field of the
// struct target points to. Handles four shapes (§4.8, §9 design note on
// "a small runtime reflection layer"): a directly assignable scalar or
// interface field, an optional field (a pointer one level deeper than
// value's type, freshly allocated), a convertible scalar (e.g. the int64
// IntConverter produces, assigned into an int field), and += onto a slice.
func assignFeatureReflect(target interface{}, feature string, op grammar.AssignOp, value interface{}) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("assigning feature %q: target %T is not a non-nil pointer", feature, target)
	}
	f := rv.Elem().FieldByName(feature)
	if !f.IsValid() {
		return fmt.Errorf("assigning feature %q: type %s has no such field", feature, rv.Elem().Type())
	}
	switch op {
	case grammar.OpEnableIf:
		if f.Kind() != reflect.Bool {
			return fmt.Errorf("feature %q uses ?= but field is %s, not bool", feature, f.Type())
		}
		f.SetBool(true)
		return nil
	case grammar.OpAppend:
		return appendFeatureValue(f, feature, value, target)
	default:
		return setFeatureValue(f, feature, value, target)
	}
}

func setFeatureValue(f reflect.Value, feature string, value interface{}, container interface{}) error {
	if !f.CanSet() {
		return fmt.Errorf("feature %q: field is not settable", feature)
	}
	if value == nil {
		return nil
	}
	if f.CanInterface() {
		detachContainer(f.Interface())
	}
	rv := reflect.ValueOf(value)
	switch {
	case rv.Type().AssignableTo(f.Type()):
		f.Set(rv)
	case f.Kind() == reflect.Ptr && rv.Type().AssignableTo(f.Type().Elem()):
		ptr := reflect.New(f.Type().Elem())
		ptr.Elem().Set(rv)
		f.Set(ptr)
	case rv.Type().ConvertibleTo(f.Type()):
		f.Set(rv.Convert(f.Type()))
	default:
		return fmt.Errorf("feature %q: cannot assign %s into %s", feature, rv.Type(), f.Type())
	}
	if f.CanInterface() {
		linkContainer(f.Interface(), container)
	}
	return nil
}

func appendFeatureValue(f reflect.Value, feature string, value interface{}, container interface{}) error {
	if f.Kind() != reflect.Slice {
		return fmt.Errorf("feature %q uses += but field is %s, not a slice", feature, f.Type())
	}
	if value == nil {
		return nil
	}
	rv := reflect.ValueOf(value)
	elemType := f.Type().Elem()
	switch {
	case rv.Type().AssignableTo(elemType):
		f.Set(reflect.Append(f, rv))
	case rv.Type().ConvertibleTo(elemType):
		f.Set(reflect.Append(f, rv.Convert(elemType)))
	default:
		return fmt.Errorf("feature %q: cannot append %s onto []%s", feature, rv.Type(), elemType)
	}
	linkContainer(value, container)
	return nil
}
