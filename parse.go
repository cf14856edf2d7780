// This file is part of go-argspec.
//
// Copyright (C) 2024-2025  David Gamba Rios
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package argspec

import (
	"errors"
	"strings"

	"github.com/DavidGamba/go-argspec/internal/spec"
	"github.com/DavidGamba/go-argspec/internal/token"
	"github.com/DavidGamba/go-argspec/text"
)

// binding - Accumulated value and provenance for one spec during a parse.
type binding struct {
	prov   spec.Provenance
	values []interface{}
}

// parseState - Transient state owned by exactly one Parse call. The
// registry is read only during parsing; all mutation happens here and is
// discarded when Parse returns.
type parseState struct {
	reg     *registry
	toks    []token.Token
	bind    map[*spec.Spec]*binding
	pending []*spec.Spec // positionals not yet matched, in order
	extras  []string
	child   *Namespace // result of a dispatched subparser
}

// Parse - Matches the token list against the built registry and returns the
// result namespace, or a structured *Error. Each call is synchronous and
// self contained.
//
//	ns, err := p.Parse(os.Args[1:])
func (p *Parser) Parse(args []string) (*Namespace, error) {
	// Ensure consistent behavior for empty and nil slices
	if args == nil {
		args = []string{}
	}
	if err := p.registry.validate(); err != nil {
		return nil, p.registry.tagError(err)
	}
	return p.registry.parse(args)
}

func (r *registry) parse(args []string) (*Namespace, error) {
	rules := token.Rules{NegativeNumberOptions: r.hasNegativeNumberOptions()}
	toks := []token.Token{}
	for _, t := range token.Classify(args, rules) {
		// The first -- is consumed here and never reaches any value.
		if t.Kind == token.Separator {
			continue
		}
		toks = append(toks, t)
	}
	return r.parseTokens(toks)
}

// parseTokens - Matches already classified tokens. Dispatched commands enter
/// here so that classification happens once over the whole line: tokens that
// followed the separator stay candidates inside the command too.
func (r *registry) parseTokens(toks []token.Token) (*Namespace, error) {
	Logger.Printf("tokens: %v\n", toks)

	st := &parseState{
		reg:  r,
		toks: toks,
		bind: map[*spec.Spec]*binding{},
	}
	for _, s := range r.specs {
		st.bind[s] = &binding{}
		if s.IsPositional() {
			st.pending = append(st.pending, s)
		}
	}

	if err := st.consumeAll(); err != nil {
		return nil, r.tagError(err)
	}
	if err := st.finalizePending(); err != nil {
		return nil, r.tagError(err)
	}
	if err := st.checkRequired(); err != nil {
		return nil, r.tagError(err)
	}
	if err := checkGroups(r.groups, st); err != nil {
		return nil, r.tagError(err)
	}
	if len(st.extras) > 0 {
		return nil, r.tagError(newError(ErrUnrecognizedArgs, st.extras[0], nil,
			text.ErrorUnrecognizedArguments, strings.Join(st.extras, " ")))
	}
	return st.namespace(), nil
}

// tagError - Associates the failing registry with the error so that output
// helpers render the usage line of the level that failed. An error raised
// inside a dispatched command keeps the command's registry.
func (r *registry) tagError(err error) error {
	var e *Error
	if errors.As(err, &e) && e.reg == nil {
		e.reg = r
	}
	return err
}

// consumeAll - Walks the classified token stream left to right, alternating
// between option invocations and runs of positional candidates.
func (st *parseState) consumeAll() error {
	i := 0
	for i < len(st.toks) {
		if st.toks[i].Kind == token.Option {
			next, err := st.consumeOption(i)
			if err != nil {
				return err
			}
			i = next
			continue
		}
		pendingLen := len(st.pending)
		next, err := st.consumePositionals(i)
		if err != nil {
			return err
		}
		if next == i && len(st.pending) == pendingLen {
			// No pending positional can take this candidate.
			st.extras = append(st.extras, st.toks[i].Raw)
			i++
			continue
		}
		i = next
	}
	return nil
}

// runLength - Number of consecutive candidate tokens starting at i.
func (st *parseState) runLength(i int) int {
	n := 0
	for i+n < len(st.toks) && st.toks[i+n].Kind == token.Candidate {
		n++
	}
	return n
}

func (st *parseState) hasOptionAfter(i int) bool {
	for ; i < len(st.toks); i++ {
		if st.toks[i].Kind == token.Option {
			return true
		}
	}
	return false
}

func (st *parseState) candidatesAfter(i int) int {
	n := 0
	for ; i < len(st.toks); i++ {
		if st.toks[i].Kind == token.Candidate {
			n++
		}
	}
	return n
}

// pendingMins - Sum of the minimum token counts all pending positionals
// still require.
func (st *parseState) pendingMins() int {
	sum := 0
	for _, s := range st.pending {
		min, _ := s.Bounds()
		sum += min
	}
	return sum
}

// consumePositionals - Assigns the run of candidate tokens starting at i to
// the pending positional specs and returns the index after the consumed
// tokens. Specs allocated zero tokens are satisfied with their default.
func (st *parseState) consumePositionals(i int) (int, error) {
	if len(st.pending) == 0 {
		return i, nil
	}
	switch st.pending[0].Arity.Kind {
	case spec.KindRemainder:
		return st.consumeRemainder(i)
	case spec.KindSubparser:
		return st.dispatch(i)
	}

	run := st.runLength(i)
	if run == 0 {
		return i, nil
	}

	// Remainder and subparser specs are handled on their own turn, they
	// only contribute their minimums as a reservation here.
	cut := len(st.pending)
	for idx, s := range st.pending {
		if s.Arity.Kind == spec.KindRemainder || s.Arity.Kind == spec.KindSubparser {
			cut = idx
			break
		}
	}
	bounds := []bound{}
	for _, s := range st.pending[:cut] {
		lo, hi := s.Bounds()
		bounds = append(bounds, bound{lo: lo, hi: hi})
	}
	reserved := 0
	for _, s := range st.pending[cut:] {
		lo, _ := s.Bounds()
		reserved += lo
	}

	// Zero allocations are deferred to a later run only when one can exist:
	// a pending remainder or subparser consumes the rest of the line, so
	// nothing before it ever gets another run.
	deferTrailingZero := cut == len(st.pending) && st.hasOptionAfter(i+run)
	counts := allocate(bounds, run, reserved, deferTrailingZero)

	j := i
	for idx, count := range counts {
		s := st.pending[idx]
		b := st.bind[s]
		if count == 0 {
			// Satisfied without tokens, the declared default applies.
			b.prov = spec.Default
			continue
		}
		for k := 0; k < count; k++ {
			v, err := st.convert(s, st.toks[j+k].Raw)
			if err != nil {
				return 0, err
			}
			b.values = append(b.values, v)
		}
		b.prov = spec.Explicit
		j += count
	}
	st.pending = st.pending[len(counts):]
	// Once every spec before it matched, a remainder or subparser takes over
	// in the same turn so the rest of the line, option shaped tokens
	// included, never reaches this level again.
	if len(counts) == cut && len(st.pending) > 0 {
		switch st.pending[0].Arity.Kind {
		case spec.KindRemainder:
			return st.consumeRemainder(j)
		case spec.KindSubparser:
			if j < len(st.toks) && st.toks[j].Kind == token.Candidate {
				return st.dispatch(j)
			}
		}
	}
	return j, nil
}

// consumeRemainder - The first pending positional captures every remaining
// token verbatim, option shaped or not.
func (st *parseState) consumeRemainder(i int) (int, error) {
	s := st.pending[0]
	b := st.bind[s]
	for ; i < len(st.toks); i++ {
		v, err := st.convert(s, st.toks[i].Raw)
		if err != nil {
			return 0, err
		}
		b.values = append(b.values, v)
	}
	if len(b.values) > 0 {
		b.prov = spec.Explicit
	} else {
		b.prov = spec.Default
	}
	st.pending = st.pending[1:]
	return len(st.toks), nil
}

// dispatch - The candidate token at i selects a named nested registry which
// consumes the remainder of the line. Tokens are never returned to the
// parent level.
func (st *parseState) dispatch(i int) (int, error) {
	s := st.pending[0]
	selector := st.toks[i].Raw
	cmd, ok := st.reg.commands[selector]
	if !ok {
		return 0, newError(ErrInvalidChoice, selector, []string{s.Name},
			text.ErrorUnknownCommand, selector, strings.Join(st.reg.commandNames(), ", "))
	}
	b := st.bind[s]
	b.values = append(b.values, selector)
	b.prov = spec.Explicit
	st.pending = st.pending[1:]

	if err := cmd.registry.validate(); err != nil {
		return 0, cmd.registry.tagError(err)
	}
	ns, err := cmd.registry.parseTokens(st.toks[i+1:])
	if err != nil {
		return 0, err
	}
	st.child = ns
	return len(st.toks), nil
}

// consumeOption - Resolves the option token at i and feeds it as many
// following candidate tokens as its arity demands. A variable arity option
// shares the run with the minimums still required by pending positionals
// that no later run can satisfy.
func (st *parseState) consumeOption(i int) (int, error) {
	res, rerr := st.reg.resolveOption(st.toks[i].Raw)
	if rerr != nil {
		return 0, rerr
	}
	s := res.spec
	b := st.bind[s]
	min, max := s.Bounds()
	Logger.Printf("option: %s, min: %d, max: %d\n", res.canonical, min, max)

	if res.hasAttached {
		if max == 0 {
			return 0, newError(ErrInvalidArity, st.toks[i].Raw, []string{s.Name},
				text.ErrorIgnoredAttachedArgument, displayName(s), res.attached)
		}
		if min > 1 {
			return 0, expectedArgsError(s, st.toks[i].Raw)
		}
		v, err := st.convert(s, res.attached)
		if err != nil {
			return 0, err
		}
		b.values = append(b.values, v)
		b.prov = spec.Explicit
		return i + 1, nil
	}

	avail := st.runLength(i + 1)
	if avail < min {
		return 0, expectedArgsError(s, st.toks[i].Raw)
	}
	take := 0
	if max < 0 {
		reserve := st.pendingMins() - st.candidatesAfter(i+1+avail)
		if reserve < 0 {
			reserve = 0
		}
		take = avail - reserve
		if take < min {
			take = min
		}
	} else {
		take = max
		if take > avail {
			take = avail
		}
	}
	for k := 0; k < take; k++ {
		v, err := st.convert(s, st.toks[i+1+k].Raw)
		if err != nil {
			return 0, err
		}
		b.values = append(b.values, v)
	}
	b.prov = spec.Explicit
	return i + 1 + take, nil
}

func expectedArgsError(s *spec.Spec, tok string) *Error {
	min, max := s.Bounds()
	name := displayName(s)
	switch {
	case max == 1:
		return newError(ErrMissingRequired, tok, []string{s.Name}, text.ErrorExpectedOneArgument, name)
	case max < 0:
		return newError(ErrMissingRequired, tok, []string{s.Name}, text.ErrorExpectedAtLeastOneArgument, name)
	default:
		return newError(ErrMissingRequired, tok, []string{s.Name}, text.ErrorExpectedNArguments, name, min)
	}
}

// convert - Runs the spec's conversion collaborator and classifies its
// failures.
func (st *parseState) convert(s *spec.Spec, raw string) (interface{}, error) {
	v, err := s.ConvertValue(raw)
	if err != nil {
		if errors.Is(err, spec.ErrorInvalidChoice) {
			return nil, newError(ErrInvalidChoice, raw, []string{s.Name}, "%s", err)
		}
		return nil, newError(ErrConversionFailed, raw, []string{s.Name}, "%s", err)
	}
	return v, nil
}

// finalizePending - Positionals still pending once the tokens ran out
// either settle on their defaults or fail as missing.
func (st *parseState) finalizePending() error {
	for _, s := range st.pending {
		b := st.bind[s]
		if s.Arity.Kind == spec.KindSubparser {
			if s.Required {
				return newError(ErrMissingRequired, "", []string{s.Name},
					text.ErrorMissingCommand, strings.Join(st.reg.commandNames(), ", "))
			}
			b.prov = spec.Default
			continue
		}
		min, _ := s.Bounds()
		if min > 0 {
			return newError(ErrMissingRequired, "", []string{s.Name},
				text.ErrorMissingRequiredArgument, s.Name)
		}
		b.prov = spec.Default
	}
	st.pending = nil
	return nil
}

// checkRequired - Options marked required must have explicit provenance. A
// default value, even one equal to an explicit value, never satisfies the
// requirement.
func (st *parseState) checkRequired() error {
	for _, s := range st.reg.specs {
		if !s.Required || s.IsPositional() {
			continue
		}
		if st.bind[s].prov != spec.Explicit {
			if s.RequiredErr != "" {
				return newError(ErrMissingRequired, "", []string{s.Name}, "%s", s.RequiredErr)
			}
			return newError(ErrMissingRequired, "", []string{s.Name},
				text.ErrorMissingRequiredOption, displayName(s))
		}
	}
	return nil
}

// namespace - Builds the result mapping. No reference back into the parse
// state survives.
func (st *parseState) namespace() *Namespace {
	ns := &Namespace{
		values:     map[string]interface{}{},
		provenance: map[string]spec.Provenance{},
	}
	for _, s := range st.reg.specs {
		b := st.bind[s]
		prov := b.prov
		if prov == spec.Unset {
			prov = spec.Default
		}
		ns.values[s.Name] = finalValue(s, prov, b.values)
		ns.provenance[s.Name] = prov
	}
	if st.child != nil {
		for k, v := range st.child.values {
			ns.values[k] = v
			ns.provenance[k] = st.child.provenance[k]
		}
	}
	return ns
}

// finalValue - Shapes the stored value: flags become booleans, single value
// arities store the last value, multi value arities store the accumulated
// slice.
func finalValue(s *spec.Spec, prov spec.Provenance, values []interface{}) interface{} {
	_, max := s.Bounds()
	multi := max < 0 || max > 1
	if prov != spec.Explicit {
		if s.HasDefault {
			return s.Default
		}
		if max == 0 {
			return false
		}
		return nil
	}
	if max == 0 {
		// An invoked flag flips its declared default.
		if def, ok := s.Default.(bool); s.HasDefault && ok {
			return !def
		}
		return true
	}
	// The subparser destination holds the selected command name.
	if multi && s.Arity.Kind != spec.KindSubparser {
		return values
	}
	if len(values) > 0 {
		return values[len(values)-1]
	}
	return nil
}

func (r *registry) commandNames() []string {
	names := append([]string{}, r.commandOrder...)
	return names
}
