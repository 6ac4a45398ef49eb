package argv

// OptionKind discriminates the three option variants.
type OptionKind int

const (
	OptionFlag  OptionKind = iota // boolean switch, no values
	OptionValue                   // consumes a run of string values
	OptionDict                    // consumes key=value entries
)

// Accumulation selects how repeated occurrences of the same parameter
// combine. The set is closed; validity per option kind is checked once at
// Build time.
type Accumulation int

const (
	AccumulateLast   Accumulation = iota // replace (default for Flag and Value)
	AccumulateFirst                      // keep the first occurrence
	AccumulateCount                      // count truthy occurrences (Flag only)
	AccumulateAppend                     // nest runs: (old, new)
	AccumulateExtend                     // flatten runs into one sequence
	AccumulateError                      // second occurrence is an error
	AccumulateMerge                      // merge dict entries (Dict only; default)
)

// MergeStrategy selects how Merge-mode dict occurrences combine.
type MergeStrategy int

const (
	MergeShallow MergeStrategy = iota // top-level keys replace
	MergeDeep                         // dict values merge recursively, others replace
)

// OptionSpec describes one named option. Immutable once its command spec
// is built.
type OptionSpec struct {
	name   string
	kind   OptionKind
	longs  []string
	shorts []rune
	mode   Accumulation

	// Flag negation.
	negationPrefixes []string
	negationShorts   []rune

	// Value consumption.
	arity  Arity
	greedy bool

	// Per-option overrides; zero values defer to the config.
	itemSeparator   string
	itemEscape      rune
	negativeNumbers *bool
	negativePattern string

	// Dict structure. Values past the top-level key/value split stay
	// opaque strings; nestingSeparator is carried for the dict sub-parser
	// extension point.
	merge             MergeStrategy
	keyValueSeparator string
	nestingSeparator  string
}

// Name returns the canonical name of the option.
func (o *OptionSpec) Name() string { return o.name }

// Kind returns the option variant.
func (o *OptionSpec) Kind() OptionKind { return o.kind }

// Longs returns the long names (without prefix).
func (o *OptionSpec) Longs() []string { return o.longs }

// Shorts returns the single-rune short names.
func (o *OptionSpec) Shorts() []rune { return o.shorts }

// Arity returns the value arity. Flags have arity (0,0).
func (o *OptionSpec) Arity() Arity { return o.arity }

// Greedy reports whether the option consumes every remaining token.
func (o *OptionSpec) Greedy() bool { return o.greedy }

// Accumulation returns the configured accumulation mode.
func (o *OptionSpec) Accumulation() Accumulation { return o.mode }

func (o *OptionSpec) keyValueSep() string {
	if o.keyValueSeparator == "" {
		return "="
	}
	return o.keyValueSeparator
}

// negativeAllowed resolves the per-option negative-number override against
// the global configuration.
func (o *OptionSpec) negativeAllowed(rc *runtimeConfig) bool {
	if o.negativeNumbers != nil {
		return *o.negativeNumbers
	}
	return rc.AllowNegativeNumbers
}

func (o *OptionSpec) negativeMatcher(rc *runtimeConfig) func(string) bool {
	if o.negativePattern != "" {
		re := compilePattern(o.negativePattern)
		return func(tok string) bool { return re != nil && re.MatchString(tok) }
	}
	return rc.matchesNegativeNumber
}

// PositionalSpec describes one positional parameter.
type PositionalSpec struct {
	name   string
	arity  Arity
	greedy bool
}

// Name returns the positional parameter name.
func (p *PositionalSpec) Name() string { return p.name }

// Arity returns the positional arity.
func (p *PositionalSpec) Arity() Arity { return p.arity }

// Greedy reports whether the positional absorbs every remaining token,
// including option-shaped ones, once positional collection has started.
func (p *PositionalSpec) Greedy() bool { return p.greedy }

// implicitPositional is synthesized when a command declares no positionals:
// a catch-all named "args" with arity (0, Unbounded).
func implicitPositional() *PositionalSpec {
	return &PositionalSpec{name: "args", arity: Arity{Min: 0, Max: Unbounded}}
}

// CommandSpec is the immutable description of one command level: its
// options, positionals and child commands. Each level is a self-contained
// namespace; nothing is inherited across levels. A built spec is safe to
// share across arbitrarily many concurrent parses.
type CommandSpec struct {
	name        string
	aliases     []string
	options     []*OptionSpec
	positionals []*PositionalSpec
	commands    []*CommandSpec
}

// Name returns the canonical command name.
func (c *CommandSpec) Name() string { return c.name }

// Aliases returns the command aliases.
func (c *CommandSpec) Aliases() []string { return c.aliases }

// Options returns the option specs in declaration order.
func (c *CommandSpec) Options() []*OptionSpec { return c.options }

// Positionals returns the positional specs in declaration order.
func (c *CommandSpec) Positionals() []*PositionalSpec { return c.positionals }

// Commands returns the child command specs in declaration order.
func (c *CommandSpec) Commands() []*CommandSpec { return c.commands }

// Parse runs the engine over tokens with the default configuration.
func (c *CommandSpec) Parse(tokens []string) (*Result, error) {
	return Parse(c, tokens, nil)
}

// effectivePositionals returns the declared positionals or the implicit
// catch-all.
func (c *CommandSpec) effectivePositionals() []*PositionalSpec {
	if len(c.positionals) == 0 {
		return []*PositionalSpec{implicitPositional()}
	}
	return c.positionals
}

// anyGreedyPositional reports whether any positional latches the level
// into positional-only classification once collection starts.
func (c *CommandSpec) anyGreedyPositional() bool {
	for _, p := range c.positionals {
		if p.greedy {
			return true
		}
	}
	return false
}
