/*
Package text provides the low-level scanning primitives the grammar element
hierarchy is built on: UTF-8 boundary scanning, ASCII case folding,
word-class lookup and character-range table compilation. None of it
allocates on the matching hot path.
*/
package text

import (
	"github.com/npillmayer/pegium-go/trace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pegium.text'.
func tracer() tracing.Trace {
	return trace.For("text")
}

// leadByteLen maps a UTF-8 lead byte to the total length of the codepoint it
// introduces, or 0 if the byte cannot start a valid codepoint.
var leadByteLen = func() [256]uint8 {
	var t [256]uint8
	for b := 0; b < 0x80; b++ {
		t[b] = 1
	}
	for b := 0xC2; b <= 0xDF; b++ {
		t[b] = 2
	}
	for b := 0xE0; b <= 0xEF; b++ {
		t[b] = 3
	}
	for b := 0xF0; b <= 0xF4; b++ {
		t[b] = 4
	}
	return t
}()

// ScanCodepoint returns the byte length of the UTF-8 codepoint starting at
// s[i]. It returns 0 if s[i] is not a valid lead byte, or if the codepoint
// would run past the end of s (a truncated sequence) — both are treated as
// a failed match by AnyCharacter.terminal().
func ScanCodepoint(s string, i int) int {
	if i >= len(s) {
		return 0
	}
	n := int(leadByteLen[s[i]])
	if n == 0 || i+n > len(s) {
		return 0
	}
	for k := 1; k < n; k++ {
		if s[i+k]&0xC0 != 0x80 { // not a continuation byte
			return 0
		}
	}
	return n
}

// CodepointLenAt is like ScanCodepoint but only consults the lead byte,
// never checking continuation bytes; a sequence running past the end of s
// is clamped to the bytes that remain — used by recovery's
// lossy delete, which must always advance by at least one byte even on
// malformed input (see §9: "a delete advances by one byte on an invalid
// lead so that the parser cannot get stuck").
func CodepointLenAt(s string, i int) int {
	if i >= len(s) {
		return 0
	}
	n := int(leadByteLen[s[i]])
	if n == 0 {
		return 1
	}
	if i+n > len(s) {
		return len(s) - i
	}
	return n
}

// LowerASCII folds a single ASCII byte to lowercase; non-letters pass
// through unchanged. Never touches non-ASCII bytes.
func LowerASCII(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}

// EqualFoldASCII reports whether a and b are equal, case-folding ASCII
// letters only.
func EqualFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if LowerASCII(a[i]) != LowerASCII(b[i]) {
			return false
		}
	}
	return true
}

// IsWordByte reports whether b is a word-class character: [a-zA-Z0-9_].
// Used for Literal's word-boundary check (§4.1.1).
func IsWordByte(b byte) bool {
	return b == '_' ||
		(b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z')
}
