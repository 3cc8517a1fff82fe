package state

import (
	"github.com/npillmayer/pegium-go"
	"github.com/npillmayer/pegium-go/cst"
	"github.com/npillmayer/pegium-go/recovery"
	"github.com/npillmayer/pegium-go/text"
)

// DefaultMaxConsecutiveCodepointDeletes is the default cap on runs of
// single-codepoint deletes (§4.5, §6 Options).
const DefaultMaxConsecutiveCodepointDeletes = 8

// RecoverState has the same shape as ParseState plus the mutable recovery
// budget (§4.5).
type RecoverState struct {
	*ParseState

	AllowInsert   bool
	AllowDelete   bool
	TrackEditState bool

	hadEdits           bool
	consecutiveDeletes int
	maxConsecutive     int

	EditFloor   pegium.TextOffset
	EditCeiling pegium.TextOffset

	diagnostics []recovery.Diagnostic
}

// NewRecoverState wraps an existing ParseState with a recovery budget over
// [floor, ceiling] (both ends inclusive).
func NewRecoverState(ps *ParseState, allowInsert, allowDelete bool, floor, ceiling pegium.TextOffset) *RecoverState {
	return &RecoverState{
		ParseState:     ps,
		AllowInsert:    allowInsert,
		AllowDelete:    allowDelete,
		TrackEditState: true,
		maxConsecutive: DefaultMaxConsecutiveCodepointDeletes,
		EditFloor:      floor,
		EditCeiling:    ceiling,
	}
}

// SetMaxConsecutiveCodepointDeletes overrides the default cap.
func (r *RecoverState) SetMaxConsecutiveCodepointDeletes(n int) {
	if n > 0 {
		r.maxConsecutive = n
	}
}

// HadEdits reports whether any edit occurred so far.
func (r *RecoverState) HadEdits() bool { return r.hadEdits }

// Diagnostics returns the diagnostics recorded so far, in order.
func (r *RecoverState) Diagnostics() []recovery.Diagnostic {
	return r.diagnostics
}

// RecoverCheckpoint additionally snapshots the diagnostic vector length and
// the edit counters so that rewinding undoes edits (§4.5).
type RecoverCheckpoint struct {
	inner          Checkpoint
	diagLen        int
	hadEdits       bool
	consecutive    int
}

// Mark captures a recovery checkpoint.
func (r *RecoverState) Mark() RecoverCheckpoint {
	return RecoverCheckpoint{
		inner:       r.ParseState.Mark(),
		diagLen:     len(r.diagnostics),
		hadEdits:    r.hadEdits,
		consecutive: r.consecutiveDeletes,
	}
}

// Rewind restores cursor, builder and the recovery-specific counters.
func (r *RecoverState) Rewind(cp RecoverCheckpoint) {
	r.ParseState.Rewind(cp.inner)
	r.diagnostics = r.diagnostics[:cp.diagLen]
	r.hadEdits = cp.hadEdits
	r.consecutiveDeletes = cp.consecutive
}

// inWindow reports whether offset lies in [EditFloor, EditCeiling].
func (r *RecoverState) inWindow(offset pegium.TextOffset) bool {
	return offset >= r.EditFloor && offset <= r.EditCeiling
}

func (r *RecoverState) record(kind recovery.Kind, offset pegium.TextOffset, elem pegium.Element) {
	r.diagnostics = append(r.diagnostics, recovery.Diagnostic{Kind: kind, Offset: offset, Element: elem})
	r.hadEdits = true
}

// resetDeleteRun resets the consecutive-delete counter; called by any
// successful node boundary (Exit, non-zero-width Leaf — §4.9 edit budget
// rules).
func (r *RecoverState) resetDeleteRun() {
	r.consecutiveDeletes = 0
}

// Exit overrides ParseState.Exit to also reset the delete-run counter.
func (r *RecoverState) Exit(elem pegium.Element) {
	r.ParseState.Exit(elem)
	r.resetDeleteRun()
}

// Leaf overrides ParseState.Leaf to also reset the delete-run counter on
// non-zero-width leaves.
func (r *RecoverState) Leaf(begin pegium.TextOffset, elem pegium.Element, hidden bool) cst.NodeId {
	id := r.ParseState.Leaf(begin, elem, hidden)
	if r.Cursor > begin {
		r.resetDeleteRun()
	}
	return id
}

// CanInsert reports whether insertHidden is currently permitted.
func (r *RecoverState) CanInsert() bool {
	return r.AllowInsert && r.inWindow(r.Cursor)
}

// InsertHidden performs a zero-width hidden-leaf insertion of elem, subject
// to CanInsert().
func (r *RecoverState) InsertHidden(elem pegium.Element) bool {
	if !r.CanInsert() {
		return false
	}
	r.Builder.Leaf(r.Cursor, r.Cursor, elem, true, true)
	r.record(recovery.Inserted, r.Cursor, elem)
	return true
}

// CanForceInsert reports whether insertHiddenForced is currently permitted:
// governed by canForceInsertExpected, allowed only when AllowInsert=false
// and AllowDelete=true and the skipper policy approves (§4.5).
func (r *RecoverState) CanForceInsert(elem pegium.Element) bool {
	return !r.AllowInsert && r.AllowDelete && r.inWindow(r.Cursor) && r.Skipper.CanForceInsert(elem)
}

// InsertHiddenForced performs the force-insert variant.
func (r *RecoverState) InsertHiddenForced(elem pegium.Element) bool {
	if !r.CanForceInsert(elem) {
		return false
	}
	r.Builder.Leaf(r.Cursor, r.Cursor, elem, true, true)
	r.record(recovery.Inserted, r.Cursor, elem)
	return true
}

// DeleteOneCodepoint advances the cursor by one UTF-8 codepoint (lossy: an
// invalid lead byte advances by one byte), re-skips hidden tokens, and
// records a diagnostic. Requires AllowDelete, consecutiveDeletes < cap,
// cursor < end, and the cursor inside the edit window.
func (r *RecoverState) DeleteOneCodepoint() bool {
	if !r.AllowDelete || r.consecutiveDeletes >= r.maxConsecutive {
		return false
	}
	if r.Cursor >= r.End() || !r.inWindow(r.Cursor) {
		return false
	}
	n := text.CodepointLenAt(r.Input, int(r.Cursor))
	if n == 0 {
		return false
	}
	offset := r.Cursor
	r.Advance(r.Cursor + pegium.TextOffset(n))
	r.SkipHiddenNodes()
	r.consecutiveDeletes++
	r.record(recovery.Deleted, offset, nil)
	return true
}

// ReplaceLeaf consumes [cursor, end) as a recovered leaf tagged with elem —
// used by typo replacement (§4.1.1, §4.5).
func (r *RecoverState) ReplaceLeaf(end pegium.TextOffset, elem pegium.Element) {
	offset := r.Cursor
	r.Builder.Leaf(r.Cursor, end, elem, false, true)
	r.Advance(end)
	r.resetDeleteRun()
	r.record(recovery.Replaced, offset, elem)
}
