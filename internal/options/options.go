// Package options carries the translation configuration: the allowlist of
// macro paths whose invocations are folded back into opaque calls.
package options

import (
	"portast/internal/ident"
)

// DefaultInlineMacroCalls are the fixed-function-library macros folded when
// nothing else is configured.
var DefaultInlineMacroCalls = []string{
	"hacspec_lib::array::array",
	"hacspec_lib::array::public_bytes",
	"hacspec_lib::array::bytes",
	"hacspec_lib::math_integers::public_nat_mod",
	"hacspec_lib::math_integers::unsigned_public_integer",
}

// Options is the configuration value handed to a translation run.
type Options struct {
	InlineMacroCalls []Pattern
}

// Default returns the options with the default allowlist.
func Default() Options {
	pats := make([]Pattern, len(DefaultInlineMacroCalls))
	for i, text := range DefaultInlineMacroCalls {
		pats[i] = MustParsePattern(text)
	}
	return Options{InlineMacroCalls: pats}
}

// MatchesMacro reports whether some allowlisted pattern matches path.
func (o Options) MatchesMacro(path ident.Path) bool {
	for _, p := range o.InlineMacroCalls {
		if p.Match(path) {
			return true
		}
	}
	return false
}
