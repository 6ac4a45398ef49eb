package argv

import (
	"strings"
	"unicode/utf8"
)

// CommandBuilder assembles a command specification with a fluent API.
// Builders are mutable and not safe for concurrent use; Build validates
// the whole tree once and returns the immutable root spec.
type CommandBuilder struct {
	parent *CommandBuilder
	spec   *CommandSpec
}

// NewCommand starts a specification for the command with the given name.
func NewCommand(name string) *CommandBuilder {
	return &CommandBuilder{spec: &CommandSpec{name: name}}
}

// Alias adds aliases for the command.
func (b *CommandBuilder) Alias(names ...string) *CommandBuilder {
	b.spec.aliases = append(b.spec.aliases, names...)
	return b
}

// Flag adds a boolean option. A canonical name of a single rune is
// registered as a short name, otherwise as a long name.
func (b *CommandBuilder) Flag(name string) *FlagBuilder {
	opt := newOption(name, OptionFlag)
	b.spec.options = append(b.spec.options, opt)
	return &FlagBuilder{opt: opt, cmd: b}
}

// Value adds an option that consumes a run of string values. The default
// arity is exactly one value.
func (b *CommandBuilder) Value(name string) *ValueBuilder {
	opt := newOption(name, OptionValue)
	opt.arity = Exactly(1)
	b.spec.options = append(b.spec.options, opt)
	return &ValueBuilder{opt: opt, cmd: b}
}

// Dict adds an option whose values are key=value entries. The default
// arity is exactly one entry per occurrence and the default accumulation
// is Merge with the Shallow strategy.
func (b *CommandBuilder) Dict(name string) *DictBuilder {
	opt := newOption(name, OptionDict)
	opt.arity = Exactly(1)
	opt.mode = AccumulateMerge
	b.spec.options = append(b.spec.options, opt)
	return &DictBuilder{opt: opt, cmd: b}
}

// Positional adds a positional parameter with scalar arity (1,1).
func (b *CommandBuilder) Positional(name string) *PositionalBuilder {
	pos := &PositionalSpec{name: name, arity: Exactly(1)}
	b.spec.positionals = append(b.spec.positionals, pos)
	return &PositionalBuilder{pos: pos, cmd: b}
}

// Command adds a child command and descends into its builder. Parent
// climbs back up.
func (b *CommandBuilder) Command(name string) *CommandBuilder {
	child := &CommandBuilder{parent: b, spec: &CommandSpec{name: name}}
	b.spec.commands = append(b.spec.commands, child.spec)
	return child
}

// Parent returns the enclosing command builder, or the receiver at the root.
func (b *CommandBuilder) Parent() *CommandBuilder {
	if b.parent == nil {
		return b
	}
	return b.parent
}

// Build validates the whole specification tree and returns the immutable
// root command spec. It may be called from any nesting depth.
func (b *CommandBuilder) Build() (*CommandSpec, error) {
	root := b
	for root.parent != nil {
		root = root.parent
	}
	if err := validateCommand(root.spec); err != nil {
		return nil, err
	}
	return root.spec, nil
}

func newOption(name string, kind OptionKind) *OptionSpec {
	opt := &OptionSpec{name: name, kind: kind}
	if utf8.RuneCountInString(name) == 1 {
		opt.shorts = append(opt.shorts, []rune(name)[0])
	} else if name != "" {
		opt.longs = append(opt.longs, name)
	}
	return opt
}

// FlagBuilder configures a Flag option.
type FlagBuilder struct {
	opt *OptionSpec
	cmd *CommandBuilder
}

// Long adds long names for the flag.
func (f *FlagBuilder) Long(names ...string) *FlagBuilder {
	f.opt.longs = append(f.opt.longs, names...)
	return f
}

// Short adds single-rune short names for the flag.
func (f *FlagBuilder) Short(rs ...rune) *FlagBuilder {
	f.opt.shorts = append(f.opt.shorts, rs...)
	return f
}

// Negation adds negation prefix words; "no" pairs --verbose with
// --no-verbose (the separator comes from the config).
func (f *FlagBuilder) Negation(prefixes ...string) *FlagBuilder {
	f.opt.negationPrefixes = append(f.opt.negationPrefixes, prefixes...)
	return f
}

// NegationShort adds dedicated short names that set the flag false.
func (f *FlagBuilder) NegationShort(rs ...rune) *FlagBuilder {
	f.opt.negationShorts = append(f.opt.negationShorts, rs...)
	return f
}

// First keeps the first occurrence on repeats.
func (f *FlagBuilder) First() *FlagBuilder {
	f.opt.mode = AccumulateFirst
	return f
}

// Last replaces on repeats. This is the default.
func (f *FlagBuilder) Last() *FlagBuilder {
	f.opt.mode = AccumulateLast
	return f
}

// Count accumulates the number of truthy occurrences; a negated
// occurrence contributes zero.
func (f *FlagBuilder) Count() *FlagBuilder {
	f.opt.mode = AccumulateCount
	return f
}

// ErrorOnRepeat makes a second occurrence a parse error.
func (f *FlagBuilder) ErrorOnRepeat() *FlagBuilder {
	f.opt.mode = AccumulateError
	return f
}

// Back returns to the command builder.
func (f *FlagBuilder) Back() *CommandBuilder { return f.cmd }

// ValueBuilder configures a Value option.
type ValueBuilder struct {
	opt *OptionSpec
	cmd *CommandBuilder
}

// Long adds long names for the option.
func (v *ValueBuilder) Long(names ...string) *ValueBuilder {
	v.opt.longs = append(v.opt.longs, names...)
	return v
}

// Short adds single-rune short names for the option.
func (v *ValueBuilder) Short(rs ...rune) *ValueBuilder {
	v.opt.shorts = append(v.opt.shorts, rs...)
	return v
}

// Arity bounds the number of values one occurrence consumes.
func (v *ValueBuilder) Arity(a Arity) *ValueBuilder {
	v.opt.arity = a
	return v
}

// Greedy makes each occurrence consume every remaining token through the
// end of input or the trailing separator, regardless of shape.
func (v *ValueBuilder) Greedy() *ValueBuilder {
	v.opt.greedy = true
	return v
}

// ItemSeparator splits each collected value on sep after the run is
// consumed; escape prefixes a literal separator.
func (v *ValueBuilder) ItemSeparator(sep string, escape rune) *ValueBuilder {
	v.opt.itemSeparator = sep
	v.opt.itemEscape = escape
	return v
}

// NegativeNumbers overrides the global negative-number setting for this
// option; pattern overrides the global pattern when non-empty.
func (v *ValueBuilder) NegativeNumbers(allowed bool, pattern string) *ValueBuilder {
	v.opt.negativeNumbers = &allowed
	v.opt.negativePattern = pattern
	return v
}

// First keeps the first occurrence on repeats.
func (v *ValueBuilder) First() *ValueBuilder {
	v.opt.mode = AccumulateFirst
	return v
}

// Last replaces on repeats. This is the default.
func (v *ValueBuilder) Last() *ValueBuilder {
	v.opt.mode = AccumulateLast
	return v
}

// Append nests each occurrence: two runs (1,2) and (3,4) become
// ((1,2),(3,4)).
func (v *ValueBuilder) Append() *ValueBuilder {
	v.opt.mode = AccumulateAppend
	return v
}

// Extend flattens occurrences into one sequence: (1,2,3,4).
func (v *ValueBuilder) Extend() *ValueBuilder {
	v.opt.mode = AccumulateExtend
	return v
}

// ErrorOnRepeat makes a second occurrence a parse error.
func (v *ValueBuilder) ErrorOnRepeat() *ValueBuilder {
	v.opt.mode = AccumulateError
	return v
}

// Back returns to the command builder.
func (v *ValueBuilder) Back() *CommandBuilder { return v.cmd }

// DictBuilder configures a Dict option.
type DictBuilder struct {
	opt *OptionSpec
	cmd *CommandBuilder
}

// Long adds long names for the option.
func (d *DictBuilder) Long(names ...string) *DictBuilder {
	d.opt.longs = append(d.opt.longs, names...)
	return d
}

// Short adds single-rune short names for the option.
func (d *DictBuilder) Short(rs ...rune) *DictBuilder {
	d.opt.shorts = append(d.opt.shorts, rs...)
	return d
}

// Arity bounds the number of entries one occurrence consumes.
func (d *DictBuilder) Arity(a Arity) *DictBuilder {
	d.opt.arity = a
	return d
}

// Merge combines occurrences per the given strategy. This is the default
// mode, with the Shallow strategy.
func (d *DictBuilder) Merge(strategy MergeStrategy) *DictBuilder {
	d.opt.mode = AccumulateMerge
	d.opt.merge = strategy
	return d
}

// First keeps the first occurrence on repeats.
func (d *DictBuilder) First() *DictBuilder {
	d.opt.mode = AccumulateFirst
	return d
}

// Last replaces on repeats.
func (d *DictBuilder) Last() *DictBuilder {
	d.opt.mode = AccumulateLast
	return d
}

// Append nests occurrences as a sequence of dicts.
func (d *DictBuilder) Append() *DictBuilder {
	d.opt.mode = AccumulateAppend
	return d
}

// ErrorOnRepeat makes a second occurrence a parse error.
func (d *DictBuilder) ErrorOnRepeat() *DictBuilder {
	d.opt.mode = AccumulateError
	return d
}

// ItemSeparator splits each collected token on sep before the key/value
// split, so one token can carry several entries.
func (d *DictBuilder) ItemSeparator(sep string, escape rune) *DictBuilder {
	d.opt.itemSeparator = sep
	d.opt.itemEscape = escape
	return d
}

// Separators overrides the key/value and nesting separators. Nested key
// structure is carried for the dict sub-parser extension point; this core
// splits only the top-level key.
func (d *DictBuilder) Separators(keyValue, nesting string) *DictBuilder {
	d.opt.keyValueSeparator = keyValue
	d.opt.nestingSeparator = nesting
	return d
}

// Back returns to the command builder.
func (d *DictBuilder) Back() *CommandBuilder { return d.cmd }

// PositionalBuilder configures a positional parameter.
type PositionalBuilder struct {
	pos *PositionalSpec
	cmd *CommandBuilder
}

// Arity bounds how many tokens the positional receives.
func (p *PositionalBuilder) Arity(a Arity) *PositionalBuilder {
	p.pos.arity = a
	return p
}

// Greedy latches the level into positional-only classification once
// positional collection starts, so option-shaped tokens are absorbed too.
func (p *PositionalBuilder) Greedy() *PositionalBuilder {
	p.pos.greedy = true
	return p
}

// Back returns to the command builder.
func (p *PositionalBuilder) Back() *CommandBuilder { return p.cmd }

// Validation. Runs once at Build; a built spec is never re-validated.

func validateCommand(spec *CommandSpec) error {
	if spec.name == "" {
		return &SpecError{Type: SpecErrorInvalidName, Detail: "command name is empty"}
	}
	seen := map[string]bool{}
	claim := func(name string, thing string) *SpecError {
		if name == "" {
			return &SpecError{Type: SpecErrorInvalidName, Command: spec.name, Detail: thing + " name is empty"}
		}
		if seen[name] {
			return &SpecError{Type: SpecErrorDuplicateName, Command: spec.name, Name: name}
		}
		seen[name] = true
		return nil
	}

	for _, opt := range spec.options {
		if err := claim(opt.name, "option"); err != nil {
			return err
		}
		if err := validateOption(spec.name, opt, seen); err != nil {
			return err
		}
	}

	for _, pos := range spec.positionals {
		if err := claim(pos.name, "positional"); err != nil {
			return err
		}
		if !pos.arity.valid() {
			return &SpecError{Type: SpecErrorInvalidArity, Command: spec.name, Name: pos.name}
		}
	}

	for _, child := range spec.commands {
		if err := claim(child.name, "command"); err != nil {
			return err
		}
		for _, alias := range child.aliases {
			if err := claim(alias, "alias"); err != nil {
				return err
			}
		}
		if err := validateCommand(child); err != nil {
			return err
		}
	}
	return nil
}

func validateOption(command string, opt *OptionSpec, seen map[string]bool) error {
	for _, long := range opt.longs {
		if utf8.RuneCountInString(long) < 2 || strings.HasPrefix(long, "-") || strings.ContainsAny(long, " \t=") {
			return &SpecError{Type: SpecErrorInvalidName, Command: command, Name: long,
				Detail: "long names are at least two runes, stored without prefix"}
		}
		if long != opt.name {
			if seen[long] {
				return &SpecError{Type: SpecErrorDuplicateName, Command: command, Name: long}
			}
			seen[long] = true
		}
	}
	shortSeen := map[rune]bool{}
	for _, r := range opt.shorts {
		key := string(r)
		if key != opt.name && seen[key] || shortSeen[r] {
			return &SpecError{Type: SpecErrorDuplicateName, Command: command, Name: key}
		}
		seen[key] = true
		shortSeen[r] = true
	}

	switch opt.kind {
	case OptionFlag:
		if !validFlagMode(opt.mode) {
			return &SpecError{Type: SpecErrorInvalidMode, Command: command, Name: opt.name,
				Detail: "flag accumulation must be First, Last, Count or Error"}
		}
		for _, prefix := range opt.negationPrefixes {
			if prefix == "" || strings.ContainsAny(prefix, " \t=") {
				return &SpecError{Type: SpecErrorInvalidNegation, Command: command, Name: opt.name,
					Detail: "negation prefixes must be non-empty words"}
			}
		}
		for _, r := range opt.negationShorts {
			key := string(r)
			if seen[key] || shortSeen[r] {
				return &SpecError{Type: SpecErrorDuplicateName, Command: command, Name: key}
			}
			seen[key] = true
			shortSeen[r] = true
		}
	case OptionValue:
		if !opt.arity.valid() {
			return &SpecError{Type: SpecErrorInvalidArity, Command: command, Name: opt.name}
		}
		if !validValueMode(opt.mode) {
			return &SpecError{Type: SpecErrorInvalidMode, Command: command, Name: opt.name,
				Detail: "value accumulation must be First, Last, Append, Extend or Error"}
		}
		if len(opt.negationPrefixes) > 0 || len(opt.negationShorts) > 0 {
			return &SpecError{Type: SpecErrorInvalidNegation, Command: command, Name: opt.name,
				Detail: "negation applies to flags only"}
		}
	case OptionDict:
		if !opt.arity.valid() {
			return &SpecError{Type: SpecErrorInvalidArity, Command: command, Name: opt.name}
		}
		if !validDictMode(opt.mode) {
			return &SpecError{Type: SpecErrorInvalidMode, Command: command, Name: opt.name,
				Detail: "dict accumulation must be Merge, First, Last, Append or Error"}
		}
	}
	return nil
}

func validFlagMode(m Accumulation) bool {
	switch m {
	case AccumulateFirst, AccumulateLast, AccumulateCount, AccumulateError:
		return true
	}
	return false
}

func validValueMode(m Accumulation) bool {
	switch m {
	case AccumulateFirst, AccumulateLast, AccumulateAppend, AccumulateExtend, AccumulateError:
		return true
	}
	return false
}

func validDictMode(m Accumulation) bool {
	switch m {
	case AccumulateMerge, AccumulateFirst, AccumulateLast, AccumulateAppend, AccumulateError:
		return true
	}
	return false
}
