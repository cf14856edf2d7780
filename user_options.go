package argspec

import (
	"github.com/DavidGamba/go-argspec/internal/spec"
)

// ModifyFn - Function signature for functions that modify a spec at
// declaration time.
type ModifyFn func(parent *Parser, s *spec.Spec)

// Alias - Adds option strings to an optional spec.
func (p *Parser) Alias(alias ...string) ModifyFn {
	return func(parent *Parser, s *spec.Spec) {
		if s.IsPositional() {
			panic("a positional spec can't have option strings")
		}
		s.SetAlias(alias...)
		for _, a := range alias {
			parent.registry.addOptionString(a, s)
		}
	}
}

// Description - Adds a description to a spec for use in automated help.
func (p *Parser) Description(msg string) ModifyFn {
	return func(parent *Parser, s *spec.Spec) {
		s.SetDescription(msg)
	}
}

// Required - Makes Parse return an error when the spec received no explicit
// value. Optionally provide a custom error message.
func (p *Parser) Required(msg ...string) ModifyFn {
	var errTxt string
	if len(msg) >= 1 {
		errTxt = msg[0]
	}
	return func(parent *Parser, s *spec.Spec) {
		s.SetRequired(errTxt)
	}
}

// Default - Declares the value stored in the result namespace when the spec
// receives no explicit tokens. Defaults never count as explicit values for
// required checks or mutually exclusive groups.
func (p *Parser) Default(value interface{}) ModifyFn {
	return func(parent *Parser, s *spec.Spec) {
		s.SetDefault(value)
	}
}

// Choices - Restricts the converted values the spec accepts.
func (p *Parser) Choices(values ...interface{}) ModifyFn {
	return func(parent *Parser, s *spec.Spec) {
		s.SetChoices(values...)
	}
}

// MetaVar - Sets the display labels used in help output. Labels are opaque
// text: brackets, parentheses and commas are fine. Passing more than one
// label declares a per-position tuple for a multi value arity.
func (p *Parser) MetaVar(labels ...string) ModifyFn {
	return func(parent *Parser, s *spec.Spec) {
		s.SetMetaVars(labels...)
	}
}

// Convert - Sets the conversion collaborator that turns each raw token into
// the value stored in the result namespace. Defaults to the identity string
// conversion.
func (p *Parser) Convert(fn ConvertFn) ModifyFn {
	return func(parent *Parser, s *spec.Spec) {
		s.SetConvert(fn)
	}
}
