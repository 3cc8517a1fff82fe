/*
Package trace centralizes the schuko/tracing keys used across pegium-go, the
same way gorgo's sub-packages each expose a package-private tracer().
*/
package trace

import "github.com/npillmayer/schuko/tracing"

// Key is the tracing key namespace shared by every pegium-go package.
const Key = "pegium"

// For returns a trace selected under "pegium.<sub>", e.g. trace.For("cst").
func For(sub string) tracing.Trace {
	if sub == "" {
		return tracing.Select(Key)
	}
	return tracing.Select(Key + "." + sub)
}
