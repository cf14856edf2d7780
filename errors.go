// This file is part of go-argspec.
//
// Copyright (C) 2024-2025  David Gamba Rios
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package argspec

import "fmt"

// ErrorKind - Classifies a parse failure.
type ErrorKind int

// Parse error kinds
const (
	ErrUnknownOption ErrorKind = iota + 1
	ErrAmbiguousOption
	ErrMissingRequired
	ErrMissingRequiredGroup
	ErrExclusiveConflict
	ErrInvalidArity
	ErrInvalidChoice
	ErrConversionFailed
	ErrUnrecognizedArgs
)

// Error - Structured parse error. A parse either fully succeeds or returns
// one of these; there is no partial result.
type Error struct {
	Kind    ErrorKind
	Token   string   // Offending token, when applicable.
	Specs   []string // Related spec or option names, when applicable.
	message string
	reg     *registry // registry of the level that failed, for usage output
}

func (e *Error) Error() string {
	return e.message
}

// Is - Allows matching against the exported kind sentinels with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Kind sentinels for use with errors.Is.
var (
	ErrorUnknownOption        = &Error{Kind: ErrUnknownOption}
	ErrorAmbiguousOption      = &Error{Kind: ErrAmbiguousOption}
	ErrorMissingRequired      = &Error{Kind: ErrMissingRequired}
	ErrorMissingRequiredGroup = &Error{Kind: ErrMissingRequiredGroup}
	ErrorExclusiveConflict    = &Error{Kind: ErrExclusiveConflict}
	ErrorInvalidArity         = &Error{Kind: ErrInvalidArity}
	ErrorInvalidChoice        = &Error{Kind: ErrInvalidChoice}
	ErrorConversionFailed     = &Error{Kind: ErrConversionFailed}
	ErrorUnrecognizedArgs     = &Error{Kind: ErrUnrecognizedArgs}
)

func newError(kind ErrorKind, token string, specs []string, format string, a ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Token:   token,
		Specs:   specs,
		message: fmt.Sprintf(format, a...),
	}
}
