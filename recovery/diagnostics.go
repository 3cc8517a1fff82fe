/*
Package recovery defines the diagnostic vocabulary emitted by the
error-recovery layer (§4.9, §6 Diagnostics format). It has no dependency on
package grammar so that package state (which owns the diagnostic list) does
not need to import grammar either.
*/
package recovery

import "github.com/npillmayer/pegium-go"

// Kind categorizes one recovery edit.
type Kind uint8

const (
	Inserted Kind = iota
	Deleted
	Replaced
)

func (k Kind) String() string {
	switch k {
	case Inserted:
		return "Inserted"
	case Deleted:
		return "Deleted"
	case Replaced:
		return "Replaced"
	}
	return "?"
}

// Diagnostic is one recorded edit: its kind, the input offset at the time
// of the edit, and the grammar element involved, if known.
type Diagnostic struct {
	Kind    Kind
	Offset  pegium.TextOffset
	Element pegium.Element
}
