package argv

import (
	"sort"
	"strings"
	"sync"

	"github.com/dzonerzy/go-argv/internal/intern"
)

// resolver holds the derived lookup tables for one command level. Tables
// are built once per (spec, table-relevant config) pair, cached, and never
// mutated afterwards, so concurrent parses share them without locks.
type resolver struct {
	spec *CommandSpec

	optionFold  intern.Folding
	commandFold intern.Folding

	// Option tables. Keys are normalized names.
	options   map[string]*OptionSpec
	negShorts map[string]*OptionSpec
	negLongs  map[string]*OptionSpec
	longNames []string // sorted, for abbreviation scans

	// Subcommand tables.
	commands map[string]*CommandSpec
	cmdNames []string // sorted, for abbreviation scans
}

// resolverKey identifies a cached resolver: the spec by identity plus the
// config fields that shape the tables.
type resolverKey struct {
	spec         *CommandSpec
	optionFold   intern.Folding
	commandFold  intern.Folding
	negSeparator string
}

var resolverCache sync.Map // resolverKey -> *resolver

func resolverFor(spec *CommandSpec, rc *runtimeConfig) *resolver {
	k := resolverKey{
		spec:         spec,
		optionFold:   intern.Folding{Lower: !rc.CaseSensitiveOptions, Underscores: rc.ConvertUnderscores},
		commandFold:  intern.Folding{Lower: !rc.CaseSensitiveCommands, Underscores: rc.ConvertUnderscores},
		negSeparator: rc.NegationSeparator,
	}
	if cached, ok := resolverCache.Load(k); ok {
		return cached.(*resolver)
	}
	built := buildResolver(spec, k)
	actual, _ := resolverCache.LoadOrStore(k, built)
	return actual.(*resolver)
}

func buildResolver(spec *CommandSpec, k resolverKey) *resolver {
	r := &resolver{
		spec:        spec,
		optionFold:  k.optionFold,
		commandFold: k.commandFold,
		options:     make(map[string]*OptionSpec),
		negShorts:   make(map[string]*OptionSpec),
		negLongs:    make(map[string]*OptionSpec),
		commands:    make(map[string]*CommandSpec),
	}

	for _, opt := range spec.options {
		for _, long := range opt.longs {
			name := intern.Normalize(long, r.optionFold)
			r.options[name] = opt
			r.longNames = append(r.longNames, name)
		}
		for _, short := range opt.shorts {
			r.options[intern.Normalize(intern.Rune(short), r.optionFold)] = opt
		}
		for _, short := range opt.negationShorts {
			r.negShorts[intern.Normalize(intern.Rune(short), r.optionFold)] = opt
		}
		for _, prefix := range opt.negationPrefixes {
			for _, long := range opt.longs {
				negated := prefix + k.negSeparator + long
				r.negLongs[intern.Normalize(negated, r.optionFold)] = opt
			}
		}
	}
	sort.Strings(r.longNames)

	for _, child := range spec.commands {
		r.commands[intern.Normalize(child.name, r.commandFold)] = child
		for _, alias := range child.aliases {
			r.commands[intern.Normalize(alias, r.commandFold)] = child
		}
	}
	r.cmdNames = make([]string, 0, len(r.commands))
	for name := range r.commands {
		r.cmdNames = append(r.cmdNames, name)
	}
	sort.Strings(r.cmdNames)

	return r
}

// optionMatch is the outcome of one option-name lookup.
type optionMatch struct {
	opt        *OptionSpec
	negated    bool
	candidates []string // set only for ambiguous abbreviations
}

func (m optionMatch) found() bool     { return m.opt != nil }
func (m optionMatch) ambiguous() bool { return len(m.candidates) > 0 }

// resolveOption resolves a raw option name (without prefix) in strict
// precedence: exact match, negation match, abbreviation match.
func (r *resolver) resolveOption(raw string, rc *runtimeConfig) optionMatch {
	name := intern.Normalize(raw, r.optionFold)

	if opt, ok := r.options[name]; ok {
		return optionMatch{opt: opt}
	}

	if opt, ok := r.negShorts[name]; ok {
		return optionMatch{opt: opt, negated: true}
	}
	if opt, ok := r.negLongs[name]; ok {
		return optionMatch{opt: opt, negated: true}
	}

	if rc.AllowAbbreviatedOptions && len(name) >= rc.MinAbbreviationLength {
		candidates := prefixMatches(name, r.longNames)
		switch len(candidates) {
		case 0:
		case 1:
			return optionMatch{opt: r.options[candidates[0]]}
		default:
			return optionMatch{candidates: candidates}
		}
	}

	return optionMatch{}
}

// commandMatch is the outcome of one subcommand lookup. A miss is not an
// error; the caller falls back to positional classification.
type commandMatch struct {
	cmd        *CommandSpec
	candidates []string
}

func (m commandMatch) found() bool     { return m.cmd != nil }
func (m commandMatch) ambiguous() bool { return len(m.candidates) > 0 }

// resolveSubcommand mirrors resolveOption minus the negation step.
func (r *resolver) resolveSubcommand(raw string, rc *runtimeConfig) commandMatch {
	name := intern.Normalize(raw, r.commandFold)

	if cmd, ok := r.commands[name]; ok {
		return commandMatch{cmd: cmd}
	}

	if rc.AllowAbbreviatedSubcommands && len(name) >= rc.MinAbbreviationLength {
		candidates := prefixMatches(name, r.cmdNames)
		switch len(candidates) {
		case 0:
		case 1:
			return commandMatch{cmd: r.commands[candidates[0]]}
		default:
			return commandMatch{candidates: candidates}
		}
	}

	return commandMatch{}
}

// knownOptionToken reports whether tok would be classified as a known
// option at this level: the value consumer's stop condition.
func (r *resolver) knownOptionToken(tok string, rc *runtimeConfig) bool {
	if long, ok := strings.CutPrefix(tok, rc.LongPrefix); ok && long != "" {
		name, _, _ := strings.Cut(long, "=")
		m := r.resolveOption(name, rc)
		return m.found() || m.ambiguous()
	}
	if short, ok := strings.CutPrefix(tok, rc.ShortPrefix); ok && short != "" {
		first := []rune(short)[0]
		m := r.resolveOption(intern.Rune(first), rc)
		return m.found()
	}
	return false
}

// knownSubcommandToken reports whether tok names a child command.
func (r *resolver) knownSubcommandToken(tok string, rc *runtimeConfig) bool {
	m := r.resolveSubcommand(tok, rc)
	return m.found() || m.ambiguous()
}

// prefixMatches collects every sorted name with the given prefix. names is
// sorted, so matches are contiguous.
func prefixMatches(prefix string, names []string) []string {
	lo := sort.SearchStrings(names, prefix)
	hi := lo
	for hi < len(names) && strings.HasPrefix(names[hi], prefix) {
		hi++
	}
	if lo == hi {
		return nil
	}
	return names[lo:hi]
}

// optionNames returns every resolvable long name, sorted.
func (r *resolver) optionNames() []string { return r.longNames }

// commandNames returns every resolvable subcommand name and alias.
func (r *resolver) commandNames() []string { return r.cmdNames }
