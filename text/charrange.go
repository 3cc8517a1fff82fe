package text

import "fmt"

// Table is a 256-bit ASCII membership table: table[b] is true iff byte b is
// a member. Non-ASCII bytes (b >= 0x80) are never members, and negation
// (§4.1.2) only flips ASCII slots — "negation does not include them either".
type Table [256]bool

// Test reports whether b is a member of the table.
func (t *Table) Test(b byte) bool {
	return t[b]
}

// CaseInsensitive returns a copy of t with the upper/lower-case slot of
// every ASCII letter OR'd together.
func (t Table) CaseInsensitive() Table {
	var out Table
	for b := 0; b < 256; b++ {
		out[b] = t[b]
	}
	for b := byte('a'); b <= 'z'; b++ {
		if t[b] || t[b-32] {
			out[b] = true
			out[b-32] = true
		}
	}
	return out
}

// CompileRange compiles a character-range DSL string, e.g. "a-zA-Z0-9_" or
// "^ \t\n" (leading '^' negates). '-' is a range operator unless it is the
// first or last character of the (post-'^') spec, in which case it is
// taken literally.
func CompileRange(dsl string) (Table, error) {
	var t Table
	if dsl == "" {
		return t, fmt.Errorf("empty character-range spec")
	}
	negate := false
	if dsl[0] == '^' {
		negate = true
		dsl = dsl[1:]
	}
	i := 0
	for i < len(dsl) {
		c := dsl[i]
		if i+2 < len(dsl) && dsl[i+1] == '-' {
			lo, hi := c, dsl[i+2]
			if hi < lo {
				return t, fmt.Errorf("invalid character range %q-%q", lo, hi)
			}
			for b := int(lo); b <= int(hi); b++ {
				t[b] = true
			}
			i += 3
			continue
		}
		t[c] = true
		i++
	}
	if negate {
		var out Table
		for b := 0; b < 128; b++ {
			out[b] = !t[b]
		}
		// non-ASCII bytes are never members, negated or not.
		t = out
	}
	return t, nil
}
