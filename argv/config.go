package argv

import (
	"regexp"
	"sync"
)

// Config tunes name resolution and value consumption for a single parse.
// The zero value of a string or numeric field means "use the built-in
// default"; boolean fields are taken as-is, so start from DefaultConfig
// when you want to flip just one of them. Per-option settings on a spec
// take precedence over the config, which takes precedence over defaults.
type Config struct {
	// Name resolution.
	CaseSensitiveOptions        bool
	CaseSensitiveCommands       bool
	AllowAbbreviatedOptions     bool
	AllowAbbreviatedSubcommands bool
	MinAbbreviationLength       int
	ConvertUnderscores          bool

	// Classification.
	AllowNegativeNumbers  bool
	NegativeNumberPattern string
	// StrictOptionsBeforePositionals latches option parsing off for the
	// rest of a command level once the first positional is seen.
	StrictOptionsBeforePositionals bool

	// Token shapes.
	LongPrefix        string
	ShortPrefix       string
	TrailingSeparator string
	NegationSeparator string
}

// Built-in defaults.
const (
	defaultLongPrefix        = "--"
	defaultShortPrefix       = "-"
	defaultTrailingSeparator = "--"
	defaultNegationSeparator = "-"
	defaultMinAbbreviation   = 2
	defaultNegativePattern   = `^-[0-9]+(\.[0-9]+)?$`
)

// DefaultConfig returns the built-in configuration: case-sensitive exact
// matching, no abbreviations, negative numbers recognized, relaxed option
// ordering.
func DefaultConfig() *Config {
	return &Config{
		CaseSensitiveOptions:  true,
		CaseSensitiveCommands: true,
		MinAbbreviationLength: defaultMinAbbreviation,
		AllowNegativeNumbers:  true,
		NegativeNumberPattern: defaultNegativePattern,
		LongPrefix:            defaultLongPrefix,
		ShortPrefix:           defaultShortPrefix,
		TrailingSeparator:     defaultTrailingSeparator,
		NegationSeparator:     defaultNegationSeparator,
	}
}

// runtimeConfig is the fully resolved form consumed by the engine: every
// field populated and the negative-number pattern compiled.
type runtimeConfig struct {
	Config
	negNumber *regexp.Regexp
}

func (c *Config) runtime() *runtimeConfig {
	rc := &runtimeConfig{}
	if c != nil {
		rc.Config = *c
	} else {
		rc.Config = *DefaultConfig()
	}
	if rc.LongPrefix == "" {
		rc.LongPrefix = defaultLongPrefix
	}
	if rc.ShortPrefix == "" {
		rc.ShortPrefix = defaultShortPrefix
	}
	if rc.TrailingSeparator == "" {
		rc.TrailingSeparator = defaultTrailingSeparator
	}
	if rc.NegationSeparator == "" {
		rc.NegationSeparator = defaultNegationSeparator
	}
	if rc.MinAbbreviationLength < 1 {
		rc.MinAbbreviationLength = defaultMinAbbreviation
	}
	if rc.NegativeNumberPattern == "" {
		rc.NegativeNumberPattern = defaultNegativePattern
	}
	rc.negNumber = compilePattern(rc.NegativeNumberPattern)
	return rc
}

// patternCache holds compiled negative-number patterns keyed by source so
// repeated parses never recompile. Append-only, safe for concurrent readers.
var patternCache sync.Map // string -> *regexp.Regexp

func compilePattern(src string) *regexp.Regexp {
	if cached, ok := patternCache.Load(src); ok {
		return cached.(*regexp.Regexp)
	}
	re, err := regexp.Compile(src)
	if err != nil {
		// A broken pattern disables negative-number recognition rather
		// than failing the parse; the pattern is caller-supplied config,
		// not user input.
		re = nil
	}
	actual, _ := patternCache.LoadOrStore(src, re)
	return actual.(*regexp.Regexp)
}

// matchesNegativeNumber reports whether tok matches the configured pattern.
func (rc *runtimeConfig) matchesNegativeNumber(tok string) bool {
	return rc.negNumber != nil && rc.negNumber.MatchString(tok)
}
