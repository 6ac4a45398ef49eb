package argv

import (
	"strings"

	"github.com/dzonerzy/go-argv/internal/fuzzy"
	"github.com/dzonerzy/go-argv/internal/intern"
	"github.com/dzonerzy/go-argv/internal/pool"
)

// suggestionDistance bounds the edit distance of name suggestions attached
// to unknown-name errors.
const suggestionDistance = 2

// Parse runs one left-to-right pass of the engine over tokens. The spec
// must come from a successful Build; cfg may be nil for defaults. The
// token slice is never mutated, and no partial result escapes on failure.
func Parse(spec *CommandSpec, tokens []string, cfg *Config) (*Result, error) {
	p := &parser{cfg: cfg.runtime(), tokens: tokens}
	res, perr := p.parseLevel(spec, 0, nil, spec.name)
	if perr != nil {
		perr.Tokens = tokens
		return nil, perr
	}
	return res, nil
}

// parser carries the per-call state shared by every level of one parse.
type parser struct {
	cfg    *runtimeConfig
	tokens []string
}

// parseLevel classifies tokens for one command level until input is
// exhausted or a subcommand token delegates the remainder to a child.
func (p *parser) parseLevel(spec *CommandSpec, start int, parentPath []string, invoked string) (*Result, *ParseError) {
	path := make([]string, 0, len(parentPath)+1)
	path = append(path, parentPath...)
	path = append(path, spec.name)

	r := resolverFor(spec, p.cfg)
	scratch := pool.GetLevel()
	defer pool.PutLevel(scratch)

	opts := make(map[string]*optionState)
	positionalsSeen := false
	inTrailing := false
	latching := p.cfg.StrictOptionsBeforePositionals || spec.anyGreedyPositional()

	i := start
	for i < len(p.tokens) {
		tok := p.tokens[i]

		if inTrailing {
			scratch.Trailing = append(scratch.Trailing, tok)
			i++
			continue
		}
		if tok == p.cfg.TrailingSeparator {
			inTrailing = true
			i++
			continue
		}

		latched := latching && positionalsSeen

		if body, ok := strings.CutPrefix(tok, p.cfg.LongPrefix); ok && body != "" && !latched {
			next, perr := p.parseLong(r, opts, body, i)
			if perr != nil {
				return nil, p.at(perr, spec, path)
			}
			i = next
			continue
		}

		if body, ok := strings.CutPrefix(tok, p.cfg.ShortPrefix); ok && body != "" && !latched {
			numeric := p.cfg.AllowNegativeNumbers &&
				len(spec.positionals) > 0 &&
				p.cfg.matchesNegativeNumber(tok)
			if !numeric {
				next, perr := p.parseShortCluster(r, opts, body, i)
				if perr != nil {
					return nil, p.at(perr, spec, path)
				}
				i = next
				continue
			}
		}

		if m := r.resolveSubcommand(tok, p.cfg); m.found() || m.ambiguous() {
			if m.ambiguous() {
				return nil, p.at(&ParseError{
					Type:       ErrorTypeAmbiguousSubcommand,
					Index:      i,
					Option:     tok,
					Candidates: m.candidates,
				}, spec, path)
			}
			res, perr := p.finishLevel(spec, path, invoked, opts, scratch)
			if perr != nil {
				return nil, p.at(perr, spec, path)
			}
			child, cerr := p.parseLevel(m.cmd, i+1, path, tok)
			if cerr != nil {
				return nil, cerr
			}
			res.sub = child
			return res, nil
		}

		if len(spec.commands) > 0 && len(spec.positionals) == 0 {
			// A level that only routes to subcommands treats a stray
			// word as a misspelled subcommand, not a positional.
			return nil, p.at(&ParseError{
				Type:       ErrorTypeUnknownSubcommand,
				Index:      i,
				Option:     tok,
				Suggestion: fuzzy.Closest(tok, r.commandNames(), suggestionDistance),
			}, spec, path)
		}

		scratch.AddPositional(tok, i)
		positionalsSeen = true
		i++
	}

	res, perr := p.finishLevel(spec, path, invoked, opts, scratch)
	if perr != nil {
		return nil, p.at(perr, spec, path)
	}
	return res, nil
}

// parseLong handles one long-option token: --name, --name=value, or a
// negated or abbreviated form of either.
func (p *parser) parseLong(r *resolver, opts map[string]*optionState, body string, index int) (int, *ParseError) {
	name, inline, hasInline := strings.Cut(body, "=")

	m := r.resolveOption(name, p.cfg)
	if m.ambiguous() {
		return 0, &ParseError{
			Type:       ErrorTypeAmbiguousOption,
			Index:      index,
			Option:     name,
			Candidates: m.candidates,
		}
	}
	if !m.found() {
		return 0, &ParseError{
			Type:       ErrorTypeUnknownOption,
			Index:      index,
			Option:     name,
			Suggestion: fuzzy.Closest(name, r.optionNames(), suggestionDistance),
		}
	}

	opt := m.opt
	if opt.kind == OptionFlag {
		if hasInline {
			return 0, &ParseError{Type: ErrorTypeValueNotAllowed, Index: index, Option: opt.name}
		}
		if perr := p.recordOption(opts, opt, flagOccurrence(opt, m.negated), index, name, m.negated); perr != nil {
			return 0, perr
		}
		return index + 1, nil
	}

	return p.parseOptionValues(r, opts, opt, inline, hasInline, name, index)
}

// parseShortCluster handles one short-option token: -v, -vvv, -ofile, or
// a negation short. A value-taking option ends the cluster; anything
// attached after it is its inline value.
func (p *parser) parseShortCluster(r *resolver, opts map[string]*optionState, body string, index int) (int, *ParseError) {
	runes := []rune(body)
	for pos, rn := range runes {
		name := intern.Rune(rn)
		m := r.resolveOption(name, p.cfg)
		if m.ambiguous() {
			return 0, &ParseError{
				Type:       ErrorTypeAmbiguousOption,
				Index:      index,
				Option:     name,
				Candidates: m.candidates,
			}
		}
		if !m.found() {
			return 0, &ParseError{
				Type:       ErrorTypeUnknownOption,
				Index:      index,
				Option:     name,
				Suggestion: fuzzy.Closest(name, r.optionNames(), suggestionDistance),
			}
		}

		opt := m.opt
		if opt.kind == OptionFlag {
			if perr := p.recordOption(opts, opt, flagOccurrence(opt, m.negated), index, name, m.negated); perr != nil {
				return 0, perr
			}
			continue
		}

		inline := string(runes[pos+1:])
		return p.parseOptionValues(r, opts, opt, inline, inline != "", name, index)
	}
	return index + 1, nil
}

// parseOptionValues consumes and records the value run for a Value or
// Dict option occurrence at index.
func (p *parser) parseOptionValues(r *resolver, opts map[string]*optionState, opt *OptionSpec, inline string, hasInline bool, invokedAs string, index int) (int, *ParseError) {
	values, next, perr := p.consumeValues(r, opt, inline, hasInline, index+1)
	if perr != nil {
		perr.Option = opt.name
		return 0, perr
	}

	values = splitItems(values, opt.itemSeparator, opt.itemEscape)

	var occurrence Value
	if opt.kind == OptionDict {
		occurrence = dictRun(values, opt.keyValueSep())
	} else {
		occurrence = runValue(values, opt.arity)
	}
	if perr := p.recordOption(opts, opt, occurrence, index, invokedAs, false); perr != nil {
		return 0, perr
	}
	return next, nil
}

func (p *parser) recordOption(opts map[string]*optionState, opt *OptionSpec, incoming Value, index int, invokedAs string, negated bool) *ParseError {
	st, ok := opts[opt.name]
	if !ok {
		st = &optionState{spec: opt}
		opts[opt.name] = st
	}
	return st.record(incoming, index, invokedAs, negated)
}

// flagOccurrence shapes one flag occurrence: a truthiness count for Count
// mode, the scalar "true"/"false" otherwise.
func flagOccurrence(opt *OptionSpec, negated bool) Value {
	if opt.mode == AccumulateCount {
		if negated {
			return countValue(0)
		}
		return countValue(1)
	}
	if negated {
		return scalarValue("false")
	}
	return scalarValue("true")
}

// finishLevel freezes the level's accumulated state into an immutable
// result: positional grouping runs here, once per level.
func (p *parser) finishLevel(spec *CommandSpec, path []string, invoked string, opts map[string]*optionState, scratch *pool.Level) (*Result, *ParseError) {
	var positionals map[string]Value
	if len(spec.positionals) > 0 || len(scratch.Positionals) > 0 {
		var perr *ParseError
		positionals, perr = groupPositionals(
			spec.effectivePositionals(), scratch.Positionals, scratch.Indices, len(p.tokens))
		if perr != nil {
			return nil, perr
		}
	}

	options := make(map[string]Option, len(opts))
	for name, st := range opts {
		options[name] = Option{
			value:       st.value,
			occurrences: st.occurrences,
			invokedAs:   st.invokedAs,
			negated:     st.negated,
		}
	}

	return &Result{
		command:     spec.name,
		invoked:     invoked,
		path:        path,
		options:     options,
		positionals: positionals,
		trailing:    pool.CopyStrings(scratch.Trailing),
	}, nil
}

// at stamps a level's identity onto an error created while parsing it.
// Errors bubbling up from a child level already carry their own.
func (p *parser) at(perr *ParseError, spec *CommandSpec, path []string) *ParseError {
	if perr.Command == "" {
		perr.Command = spec.name
		perr.Path = path
	}
	return perr
}
