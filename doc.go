/*
Package pegium is a combinator-style PEG (Parsing Expression Grammar) engine.

A grammar author declares rules as a tree of statically composed grammar
elements — literals, character ranges, sequences, choices, repetitions,
predicates, assignments, actions and rule references — and the engine
parses an input string against them, producing a Concrete Syntax Tree (CST)
and, for rules that declare a target type, an Abstract Syntax Tree (AST).
Package structure is as follows:

■ text: low-level UTF-8 scanning and ASCII character-range compilation.

■ cst: the chunked arena that stores CST nodes, with checkpoint/rewind.

■ skip: the composed hidden/ignored terminal skipper used between tokens.

■ grammar: the grammar element hierarchy (Literal, Group, OrderedChoice, …)
and the Rule kinds (TerminalRule, DataTypeRule, ParserRule).

■ state: ParseState and RecoverState, the two cursors driving rule() and
recover().

■ recovery: diagnostics emitted by the error-recovery layer.

■ ast: the materialization pass that turns a CST into a typed AST.

■ combinator: the user-facing DSL for composing grammars.

■ scope: a lexical scope tree usable as the resolver backing a grammar's
cross-references.

■ cmd/pegrepl: an interactive sandbox for parsing against a demo grammar.

The base package contains data types used throughout all the other packages.
*/
package pegium
